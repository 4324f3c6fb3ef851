package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homefinder-ke/homefinder/internal/assistant"
	"github.com/homefinder-ke/homefinder/internal/catalog"
	"github.com/homefinder-ke/homefinder/internal/session"
)

func testStore() *catalog.Store {
	return catalog.NewStore([]catalog.Property{
		{
			ID: 1, Name: "Greenview Villa", Price: 50000, Type: "villa",
			City: "Thika", Subcounty: "Thika Town",
			Rooms: []string{"3 bedrooms", "2 bathrooms"},
			Listing: catalog.Listing{Type: "rent", DateListed: "2025-08-01"},
			ViewingWindows: []catalog.ViewingWindow{
				{Days: []string{"monday"}, Times: []string{"10:00"}},
			},
			Agent: catalog.Agent{Name: "Wanjiru Kamau", Agency: "Skyline Realty", Contact: "+254 712 345 678"},
		},
		{
			ID: 2, Name: "Acacia Heights", Price: 30000, Type: "apartment",
			City: "Nairobi", Subcounty: "Westlands",
			Amenities: []string{"wifi", "pool"},
			Rooms:     []string{"2 bedrooms", "1 bathroom"},
			Listing:   catalog.Listing{Type: "rent", DateListed: "2025-07-01"},
			Agent:     catalog.Agent{Name: "Brian Otieno", Agency: "Haven Homes", Contact: "+254 722 901 234"},
		},
	})
}

func newTestServer(orchestrator *assistant.Orchestrator) *Server {
	store := testStore()
	return NewServer(store, session.New(store), orchestrator)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(nil), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListProperties(t *testing.T) {
	rec := doRequest(t, newTestServer(nil), http.MethodGet, "/api/properties", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []catalog.Property
	decodeBody(t, rec, &got)
	if len(got) != 2 {
		t.Errorf("got %d properties, want 2", len(got))
	}
}

func TestListPropertiesSorted(t *testing.T) {
	rec := doRequest(t, newTestServer(nil), http.MethodGet, "/api/properties?sort=asc", "")
	var got []catalog.Property
	decodeBody(t, rec, &got)
	if len(got) != 2 || got[0].ID != 2 {
		t.Errorf("ascending order wrong: %+v", got)
	}

	rec = doRequest(t, newTestServer(nil), http.MethodGet, "/api/properties?sort=sideways", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad sort", rec.Code)
	}
}

func TestListPropertiesRecent(t *testing.T) {
	rec := doRequest(t, newTestServer(nil), http.MethodGet, "/api/properties?recent=1", "")
	var got []catalog.Property
	decodeBody(t, rec, &got)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("recent = %+v, want newest listing only", got)
	}
}

func TestGetProperty(t *testing.T) {
	s := newTestServer(nil)

	rec := doRequest(t, s, http.MethodGet, "/api/properties/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got catalog.Property
	decodeBody(t, rec, &got)
	if got.Name != "Greenview Villa" {
		t.Errorf("name = %q", got.Name)
	}

	if rec := doRequest(t, s, http.MethodGet, "/api/properties/99", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d for missing property", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodGet, "/api/properties/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad ID", rec.Code)
	}
}

func TestSimilarProperties(t *testing.T) {
	s := newTestServer(nil)

	rec := doRequest(t, s, http.MethodGet, "/api/properties/1/similar", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodGet, "/api/properties/99/similar", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d for missing property", rec.Code)
	}
}

func TestNegotiate(t *testing.T) {
	s := newTestServer(nil)

	rec := doRequest(t, s, http.MethodGet, "/api/properties/1/negotiate?target=45000", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var advice catalog.NegotiationAdvice
	decodeBody(t, rec, &advice)
	if advice.PriceDifference == nil || *advice.PriceDifference != 5000 {
		t.Errorf("price difference = %v", advice.PriceDifference)
	}

	if rec := doRequest(t, s, http.MethodGet, "/api/properties/1/negotiate?target=cheap", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad target", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	s := newTestServer(nil)

	rec := doRequest(t, s, http.MethodGet, "/api/search?location=westlands&amenities=wifi,pool", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Count      int                `json:"count"`
		Properties []catalog.Property `json:"properties"`
	}
	decodeBody(t, rec, &got)
	if got.Count != 1 || got.Properties[0].ID != 2 {
		t.Errorf("search = %+v", got)
	}

	if rec := doRequest(t, s, http.MethodGet, "/api/search?bedrooms=two", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad bedrooms", rec.Code)
	}
}

func TestStats(t *testing.T) {
	rec := doRequest(t, newTestServer(nil), http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Count         int               `json:"count"`
		AveragePrice  float64           `json:"averagePrice"`
		Cheapest      *catalog.Property `json:"cheapest"`
		MostExpensive *catalog.Property `json:"mostExpensive"`
	}
	decodeBody(t, rec, &got)
	if got.Count != 2 || got.AveragePrice != 40000 {
		t.Errorf("stats = %+v", got)
	}
	if got.Cheapest == nil || got.Cheapest.ID != 2 {
		t.Errorf("cheapest = %+v", got.Cheapest)
	}
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(nil)

	rec := doRequest(t, s, http.MethodPost, "/api/cart", `{"propertyId":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/cart", "")
	var cart struct {
		Properties []catalog.Property `json:"properties"`
		Total      float64            `json:"total"`
		Count      int                `json:"count"`
	}
	decodeBody(t, rec, &cart)
	if cart.Count != 1 || cart.Total != 50000 {
		t.Errorf("cart = %+v", cart)
	}

	if rec := doRequest(t, s, http.MethodPost, "/api/cart", `{"propertyId":99}`); rec.Code != http.StatusNotFound {
		t.Errorf("add unknown status = %d", rec.Code)
	}

	if rec := doRequest(t, s, http.MethodDelete, "/api/cart/1", ""); rec.Code != http.StatusOK {
		t.Errorf("remove status = %d", rec.Code)
	}
	if rec := doRequest(t, s, http.MethodDelete, "/api/cart/1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("remove absent status = %d", rec.Code)
	}

	doRequest(t, s, http.MethodPost, "/api/cart", `{"propertyId":2}`)
	rec = doRequest(t, s, http.MethodDelete, "/api/cart", "")
	var cleared struct {
		ItemsRemoved bool `json:"itemsRemoved"`
	}
	decodeBody(t, rec, &cleared)
	if !cleared.ItemsRemoved {
		t.Error("expected itemsRemoved = true")
	}
}

func TestScheduleViewing(t *testing.T) {
	s := newTestServer(nil)

	rec := doRequest(t, s, http.MethodPost, "/api/viewings",
		`{"propertyName":"Greenview Villa","day":"Monday","time":"10:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var conf session.Confirmation
	decodeBody(t, rec, &conf)
	if conf.Viewing.PropertyID != 1 || conf.Viewing.Status != session.ViewingPending {
		t.Errorf("confirmation = %+v", conf)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/viewings", "")
	var viewings []session.Viewing
	decodeBody(t, rec, &viewings)
	if len(viewings) != 1 {
		t.Errorf("viewings = %+v", viewings)
	}
}

func TestScheduleViewingValidation(t *testing.T) {
	s := newTestServer(nil)

	rec := doRequest(t, s, http.MethodPost, "/api/viewings",
		`{"propertyName":"Greenview Villa","day":"Friday","time":"10:00"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("day validation status = %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	if !strings.Contains(resp.Error, "monday") {
		t.Errorf("error = %q, want valid days listed", resp.Error)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/viewings",
		`{"propertyName":"Imaginary Manor","day":"Monday","time":"10:00"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown property status = %d", rec.Code)
	}
}

func TestClearViewings(t *testing.T) {
	s := newTestServer(nil)
	doRequest(t, s, http.MethodPost, "/api/viewings",
		`{"propertyName":"Greenview Villa","day":"Monday","time":"10:00"}`)

	rec := doRequest(t, s, http.MethodDelete, "/api/viewings", "")
	var resp struct {
		ViewingsRemoved bool `json:"viewingsRemoved"`
	}
	decodeBody(t, rec, &resp)
	if !resp.ViewingsRemoved {
		t.Error("expected viewingsRemoved = true")
	}
}

// staticChat answers every turn with the same text and no tool calls.
type staticChat struct {
	reply string
}

func (c staticChat) SendUser(_ context.Context, _ string) (*assistant.ModelTurn, error) {
	return &assistant.ModelTurn{Text: c.reply}, nil
}

func (c staticChat) SendToolResults(_ context.Context, _ []assistant.ToolResult) (*assistant.ModelTurn, error) {
	return &assistant.ModelTurn{Text: c.reply}, nil
}

func TestChat(t *testing.T) {
	store := testStore()
	sess := session.New(store)
	orch := assistant.New(staticChat{reply: "Karibu!"}, store, sess, nil, nil)
	s := NewServer(store, sess, orch)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	decodeBody(t, rec, &resp)
	if resp.Reply != "Karibu!" {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestChatUnconfigured(t *testing.T) {
	rec := doRequest(t, newTestServer(nil), http.MethodPost, "/api/chat", `{"message":"hello"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	store := testStore()
	sess := session.New(store)
	orch := assistant.New(staticChat{reply: "hi"}, store, sess, nil, nil)
	s := NewServer(store, sess, orch)

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{"message":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
