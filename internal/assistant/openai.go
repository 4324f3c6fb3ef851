package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// systemInstruction sets the assistant's persona and formatting rules.
const systemInstruction = "Welcome to HomeFinder. You are a superstar real estate agent for this " +
	"property search platform. You assist users by answering questions about available " +
	"property listings, managing their favourites cart, and scheduling viewings. " +
	"The currency is KES and should precede the numerical price. Format prices with commas " +
	"to delineate thousands, e.g. KES 1,000,000. Include property name, price and agent info " +
	"in responses, and for agent searches include both the agent name and the agency. " +
	"When no results are found, suggest alternatives. Users may write in Swahili; use the " +
	"translate tool and still search for what they asked. When scheduling viewings, verify " +
	"the property exists, check the available days and times, suggest alternatives when the " +
	"requested slot is unavailable, and confirm successful bookings with the agent's contact. " +
	"Users refer to properties by name, not ID. When helping with negotiations, be polite and " +
	"professional, support suggestions with market data, suggest reasonable ranges (typically " +
	"5-15% below asking), include both percentage and absolute price differences, and never " +
	"guarantee outcomes."

// OpenAISession is a ChatSession backed by the OpenAI chat completions API.
// It owns the conversation history; nothing is persisted across restarts.
type OpenAISession struct {
	client   openai.Client
	model    shared.ChatModel
	messages []openai.ChatCompletionMessageParamUnion
	tools    []openai.ChatCompletionToolParam
}

// NewOpenAISession creates a chat session with the fixed HomeFinder tool set.
func NewOpenAISession(apiKey, model string) (*OpenAISession, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	tools := make([]openai.ChatCompletionToolParam, 0, len(Declarations()))
	for _, d := range Declarations() {
		fn := shared.FunctionDefinitionParam{
			Name:        d.Name,
			Description: openai.String(d.Description),
		}
		if d.Parameters != nil {
			fn.Parameters = d.Parameters
		}
		tools = append(tools, openai.ChatCompletionToolParam{Function: fn})
	}

	return &OpenAISession{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  shared.ChatModel(model),
		messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
		},
		tools: tools,
	}, nil
}

// SendUser appends a user turn and requests the next model response.
func (s *OpenAISession) SendUser(ctx context.Context, text string) (*ModelTurn, error) {
	s.messages = append(s.messages, openai.UserMessage(text))
	return s.complete(ctx)
}

// SendToolResults appends one tool message per result and requests the next
// model response.
func (s *OpenAISession) SendToolResults(ctx context.Context, results []ToolResult) (*ModelTurn, error) {
	for _, r := range results {
		payload, err := json.Marshal(r.Result)
		if err != nil {
			return nil, fmt.Errorf("marshaling result for %s: %w", r.Name, err)
		}
		s.messages = append(s.messages, openai.ToolMessage(string(payload), r.CallID))
	}
	return s.complete(ctx)
}

func (s *OpenAISession) complete(ctx context.Context) (*ModelTurn, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: s.messages,
		Tools:    s.tools,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	msg := resp.Choices[0].Message
	s.messages = append(s.messages, msg.ToParam())

	turn := &ModelTurn{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		turn.Calls = append(turn.Calls, ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: json.RawMessage(tc.Function.Arguments),
		})
	}
	return turn, nil
}
