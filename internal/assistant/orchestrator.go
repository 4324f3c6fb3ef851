// Package assistant runs the conversational agent: it forwards user turns to
// a hosted model, executes the tool calls the model requests against local
// catalog and session state, and loops until the model produces text.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/homefinder-ke/homefinder/internal/catalog"
	"github.com/homefinder-ke/homefinder/internal/session"
)

// ChatSession is the remote conversational model. Implementations own the
// message history; the orchestrator only sees one turn at a time.
type ChatSession interface {
	// SendUser submits a user turn.
	SendUser(ctx context.Context, text string) (*ModelTurn, error)
	// SendToolResults submits the results for every tool call of the
	// previous turn.
	SendToolResults(ctx context.Context, results []ToolResult) (*ModelTurn, error)
}

// Translator converts text between languages. Best-effort: the orchestrator
// falls back to the original text when it fails.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// maxToolRounds bounds the dispatch loop against a model that never stops
// requesting tools.
const maxToolRounds = 8

// apologyMessage is shown when the remote model fails mid-turn.
const apologyMessage = "Sorry, something went wrong while handling your request. Please try again."

// Outcome is the tagged result of dispatching one tool call. Unhandled
// outcomes carry an error payload so the model learns the tool is missing
// instead of the call being dropped silently.
type Outcome struct {
	Handled bool
	Result  any
}

// Orchestrator drives one conversation. It serializes turns: a second
// AskAgent call blocks until the current turn's dispatch loop finishes, so
// cart and schedule state cannot interleave across turns.
type Orchestrator struct {
	chat       ChatSession
	store      *catalog.Store
	session    *session.Session
	translator Translator
	log        *slog.Logger

	mu sync.Mutex
}

// New creates an orchestrator over the given chat session and local state.
func New(chat ChatSession, store *catalog.Store, sess *session.Session, translator Translator, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		chat:       chat,
		store:      store,
		session:    sess,
		translator: translator,
		log:        log,
	}
}

// Session returns the session state this orchestrator mutates.
func (o *Orchestrator) Session() *session.Session {
	return o.session
}

// AskAgent runs one full user turn: send the text, execute every requested
// tool call, feed results back, and repeat until the model answers in plain
// text. Remote failures never propagate; the caller gets an apology message
// and the cause is logged.
func (o *Orchestrator) AskAgent(ctx context.Context, text string) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	turn, err := o.chat.SendUser(ctx, text)
	if err != nil {
		o.log.Error("model call failed", "session", o.session.ID, "error", err)
		return apologyMessage
	}

	for round := 0; len(turn.Calls) > 0; round++ {
		if round >= maxToolRounds {
			o.log.Warn("tool round limit reached", "session", o.session.ID, "rounds", round)
			return apologyMessage
		}

		results := make([]ToolResult, 0, len(turn.Calls))
		for _, call := range turn.Calls {
			outcome := o.dispatch(ctx, call)
			if !outcome.Handled {
				o.log.Warn("model requested unsupported tool",
					"session", o.session.ID, "tool", call.Name)
			}
			results = append(results, ToolResult{
				CallID: call.ID,
				Name:   call.Name,
				Result: outcome.Result,
			})
		}

		turn, err = o.chat.SendToolResults(ctx, results)
		if err != nil {
			o.log.Error("model call failed", "session", o.session.ID, "error", err)
			return apologyMessage
		}
	}

	return turn.Text
}

// dispatch executes one tool call against local state. Every supported tool
// returns Handled=true, including validation failures, which are reported as
// structured messages for the model to relay. Unknown tool names return
// Handled=false with an error payload.
func (o *Orchestrator) dispatch(ctx context.Context, call ToolCall) Outcome {
	switch call.Name {
	case toolCountProperties:
		return handled(map[string]any{"count": o.store.Count()})

	case toolListProperties:
		return handled(map[string]any{"properties": summarize(o.store.All())})

	case toolViewCart:
		return handled(map[string]any{
			"cart":  summarize(o.session.Cart()),
			"total": o.session.CartTotal(),
			"count": o.session.CartCount(),
		})

	case toolAddToCart:
		var args struct {
			PropertyIDs []int64 `json:"propertyIds"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		added := 0
		var unknown []int64
		for _, id := range args.PropertyIDs {
			p := o.store.ByID(id)
			if p == nil {
				unknown = append(unknown, id)
				continue
			}
			o.session.AddToCart(*p)
			added++
		}
		result := map[string]any{"added": added}
		if len(unknown) > 0 {
			result["unknownIds"] = unknown
		}
		return handled(result)

	case toolRemoveFromCart:
		var args struct {
			PropertyID int64 `json:"propertyId"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"removed": o.session.RemoveOneFromCart(args.PropertyID)})

	case toolClearCart:
		return handled(map[string]any{"itemsRemoved": o.session.ClearCart()})

	case toolSortByPrice:
		var args struct {
			Ascending bool `json:"ascending"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"properties": summarize(o.store.SortByPrice(args.Ascending))})

	case toolPriceRange:
		var args struct {
			MinPrice float64 `json:"minPrice"`
			MaxPrice float64 `json:"maxPrice"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"properties": summarize(o.store.FilterByPriceRange(args.MinPrice, args.MaxPrice))})

	case toolComparePrices:
		var args struct {
			PropertyNames []string `json:"propertyNames"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"comparison": o.store.CompareByNames(args.PropertyNames)})

	case toolFindByAgent:
		var args struct {
			Query string `json:"query"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"properties": summarize(o.store.FindByAgentOrAgency(args.Query))})

	case toolFindByAmenities:
		var args struct {
			Amenities []string `json:"amenities"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"properties": summarize(o.store.FindByAmenities(args.Amenities))})

	case toolPriceExtremes:
		cheapest, mostExpensive := o.store.CheapestAndMostExpensive()
		result := map[string]any{}
		if cheapest != nil {
			result["cheapest"] = summarizeOne(*cheapest)
		}
		if mostExpensive != nil {
			result["mostExpensive"] = summarizeOne(*mostExpensive)
		}
		return handled(result)

	case toolAveragePrice:
		return handled(map[string]any{"averagePrice": o.store.AveragePrice()})

	case toolSimilar:
		var args struct {
			PropertyID int64 `json:"propertyId"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"properties": summarize(o.store.FindSimilar(args.PropertyID))})

	case toolSearch:
		var args catalog.Filters
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"properties": summarize(o.store.Search(args))})

	case toolRecentlyListed:
		var args struct {
			Limit int `json:"limit"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		return handled(map[string]any{"properties": summarize(o.store.RecentlyListed(args.Limit))})

	case toolListViewings:
		return handled(map[string]any{"viewings": o.session.Viewings()})

	case toolSchedule:
		var args struct {
			PropertyName string `json:"propertyName"`
			Day          string `json:"day"`
			Time         string `json:"time"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		conf, err := o.session.ScheduleViewing(args.PropertyName, args.Day, args.Time)
		if err != nil {
			// Validation failures carry user-facing messages listing the
			// valid alternatives; the model relays them.
			return handled(map[string]any{"scheduled": false, "error": err.Error()})
		}
		return handled(map[string]any{
			"scheduled": true,
			"viewing":   conf.Viewing,
			"message":   conf.Message,
		})

	case toolClearViewings:
		return handled(map[string]any{"viewingsRemoved": o.session.ClearSchedule()})

	case toolTranslate:
		var args struct {
			Text   string `json:"text"`
			Source string `json:"source"`
			Target string `json:"target"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		if args.Source == "" {
			args.Source = "sw"
		}
		if args.Target == "" {
			args.Target = "en"
		}
		if o.translator == nil {
			return handled(map[string]any{"translatedText": args.Text})
		}
		translated, err := o.translator.Translate(ctx, args.Text, args.Source, args.Target)
		if err != nil {
			// Best-effort side channel: fall back to the original text.
			o.log.Warn("translation failed", "session", o.session.ID, "error", err)
			translated = args.Text
		}
		return handled(map[string]any{"translatedText": translated})

	case toolNegotiate:
		var args struct {
			PropertyName string   `json:"propertyName"`
			TargetPrice  *float64 `json:"targetPrice"`
		}
		if out, ok := decodeArgs(call, &args); !ok {
			return out
		}
		advice, err := o.store.Negotiate(args.PropertyName, args.TargetPrice)
		if err != nil {
			return handled(map[string]any{"error": err.Error()})
		}
		return handled(advice)

	default:
		return Outcome{
			Handled: false,
			Result:  map[string]any{"error": fmt.Sprintf("no handler for tool %q", call.Name)},
		}
	}
}

func handled(result any) Outcome {
	return Outcome{Handled: true, Result: result}
}

// decodeArgs unmarshals a tool call's arguments into dst. On failure it
// returns a handled outcome describing the problem, so the model can
// correct itself on the next round.
func decodeArgs(call ToolCall, dst any) (Outcome, bool) {
	if len(call.Args) == 0 {
		return Outcome{}, true
	}
	if err := json.Unmarshal(call.Args, dst); err != nil {
		return handled(map[string]any{
			"error": fmt.Sprintf("invalid arguments for %s: %v", call.Name, err),
		}), false
	}
	return Outcome{}, true
}

// PropertySummary is the compact projection sent to the model in tool
// results. Full records would blow up the context for no gain.
type PropertySummary struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Type      string   `json:"type"`
	City      string   `json:"city"`
	Subcounty string   `json:"subcounty"`
	Rooms     []string `json:"rooms,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	Agent     string   `json:"agent"`
	Agency    string   `json:"agency"`
	Contact   string   `json:"contact"`
}

func summarizeOne(p catalog.Property) PropertySummary {
	return PropertySummary{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Type:      p.Type,
		City:      p.City,
		Subcounty: p.Subcounty,
		Rooms:     p.Rooms,
		Amenities: p.Amenities,
		Agent:     p.Agent.Name,
		Agency:    p.Agent.Agency,
		Contact:   p.Agent.Contact,
	}
}

func summarize(properties []catalog.Property) []PropertySummary {
	out := make([]PropertySummary, 0, len(properties))
	for _, p := range properties {
		out = append(out, summarizeOne(p))
	}
	return out
}
