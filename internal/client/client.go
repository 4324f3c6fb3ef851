// Package client provides an HTTP client for the homefinder JSON API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/homefinder-ke/homefinder/internal/catalog"
	"github.com/homefinder-ke/homefinder/internal/session"
)

// Client is an HTTP client for the homefinder API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListProperties returns all properties. sort may be "asc", "desc" or empty.
func (c *Client) ListProperties(sort string) ([]catalog.Property, error) {
	path := "/api/properties"
	if sort != "" {
		path += "?sort=" + url.QueryEscape(sort)
	}

	var props []catalog.Property
	if err := c.get(path, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns a single property by ID.
func (c *Client) GetProperty(id int64) (*catalog.Property, error) {
	var p catalog.Property
	if err := c.get(fmt.Sprintf("/api/properties/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Similar returns properties comparable to the given one.
func (c *Client) Similar(id int64) ([]catalog.Property, error) {
	var props []catalog.Property
	if err := c.get(fmt.Sprintf("/api/properties/%d/similar", id), &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Negotiate returns negotiation advice. target may be nil.
func (c *Client) Negotiate(id int64, target *float64) (*catalog.NegotiationAdvice, error) {
	path := fmt.Sprintf("/api/properties/%d/negotiate", id)
	if target != nil {
		path += "?target=" + strconv.FormatFloat(*target, 'f', -1, 64)
	}

	var advice catalog.NegotiationAdvice
	if err := c.get(path, &advice); err != nil {
		return nil, err
	}
	return &advice, nil
}

// SearchResult is the response from GET /api/search.
type SearchResult struct {
	Count      int                `json:"count"`
	Properties []catalog.Property `json:"properties"`
}

// Search filters properties by the given criteria.
func (c *Client) Search(filters catalog.Filters) (*SearchResult, error) {
	q := url.Values{}
	if filters.Location != "" {
		q.Set("location", filters.Location)
	}
	if filters.Bedrooms != nil {
		q.Set("bedrooms", strconv.Itoa(*filters.Bedrooms))
	}
	if filters.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*filters.MaxPrice, 'f', -1, 64))
	}
	if len(filters.Amenities) > 0 {
		q.Set("amenities", strings.Join(filters.Amenities, ","))
	}

	path := "/api/search"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result SearchResult
	if err := c.get(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats is the response from GET /api/stats.
type Stats struct {
	Count         int               `json:"count"`
	AveragePrice  float64           `json:"averagePrice"`
	Cheapest      *catalog.Property `json:"cheapest"`
	MostExpensive *catalog.Property `json:"mostExpensive"`
}

// GetStats returns catalog aggregates.
func (c *Client) GetStats() (*Stats, error) {
	var stats Stats
	if err := c.get("/api/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CartState is the response from GET /api/cart.
type CartState struct {
	Properties []catalog.Property `json:"properties"`
	Total      float64            `json:"total"`
	Count      int                `json:"count"`
}

// GetCart returns the current cart contents.
func (c *Client) GetCart() (*CartState, error) {
	var cart CartState
	if err := c.get("/api/cart", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds a property to the cart.
func (c *Client) AddToCart(id int64) error {
	return c.post("/api/cart", map[string]int64{"propertyId": id}, nil)
}

// RemoveFromCart removes one cart entry for the property.
func (c *Client) RemoveFromCart(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/cart/%d", id))
}

// ClearCart empties the cart.
func (c *Client) ClearCart() error {
	return c.doDelete("/api/cart")
}

// ListViewings returns the scheduled viewings.
func (c *Client) ListViewings() ([]session.Viewing, error) {
	var viewings []session.Viewing
	if err := c.get("/api/viewings", &viewings); err != nil {
		return nil, err
	}
	return viewings, nil
}

// ScheduleViewing books a viewing for the named property.
func (c *Client) ScheduleViewing(propertyName, day, time string) (*session.Confirmation, error) {
	body := map[string]string{
		"propertyName": propertyName,
		"day":          day,
		"time":         time,
	}
	var conf session.Confirmation
	if err := c.post("/api/viewings", body, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ClearViewings cancels all scheduled viewings.
func (c *Client) ClearViewings() error {
	return c.doDelete("/api/viewings")
}

// Chat sends one message to the assistant and returns its reply.
func (c *Client) Chat(message string) (string, error) {
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.post("/api/chat", map[string]string{"message": message}, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and handles error responses.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
