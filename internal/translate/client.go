// Package translate calls a LibreTranslate-compatible translation endpoint.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "https://libretranslate.com/translate"

// Client sends translation requests. The endpoint is overridable for tests
// and for self-hosted instances.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New creates a translation client. An empty endpoint selects the public
// LibreTranslate instance.
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   endpoint,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate converts text from the source language to the target language.
// Language arguments are ISO 639-1 codes, e.g. "sw" and "en". The service is
// best-effort; callers are expected to fall back to the original text on
// error.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close body: %v)", err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if result.TranslatedText == "" {
		return "", fmt.Errorf("empty translation for %q", text)
	}

	return result.TranslatedText, nil
}
