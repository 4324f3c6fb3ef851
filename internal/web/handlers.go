package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/homefinder-ke/homefinder/internal/catalog"
	"github.com/homefinder-ke/homefinder/internal/session"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleProperties lists the catalog. ?sort=asc|desc orders by price,
// ?recent=N returns the N most recently listed.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if v := r.URL.Query().Get("recent"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			apiError(w, "invalid recent limit", http.StatusBadRequest)
			return
		}
		apiJSON(w, s.store.RecentlyListed(limit), http.StatusOK)
		return
	}

	switch r.URL.Query().Get("sort") {
	case "":
		apiJSON(w, s.store.All(), http.StatusOK)
	case "asc":
		apiJSON(w, s.store.SortByPrice(true), http.StatusOK)
	case "desc":
		apiJSON(w, s.store.SortByPrice(false), http.StatusOK)
	default:
		apiError(w, "invalid sort order", http.StatusBadRequest)
	}
}

// handlePropertyRoute routes /api/properties/{id} and its subresources.
func (s *Server) handlePropertyRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/properties/")

	if idStr, ok := strings.CutSuffix(path, "/similar"); ok {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			apiError(w, "invalid property ID", http.StatusBadRequest)
			return
		}
		if s.store.ByID(id) == nil {
			apiError(w, "property not found", http.StatusNotFound)
			return
		}
		apiJSON(w, s.store.FindSimilar(id), http.StatusOK)
		return
	}

	if idStr, ok := strings.CutSuffix(path, "/negotiate"); ok {
		s.apiNegotiate(w, r, idStr)
		return
	}

	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}
	p := s.store.ByID(id)
	if p == nil {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

// apiNegotiate serves negotiation advice. ?target= sets the buyer's target
// price in KES.
func (s *Server) apiNegotiate(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}
	p := s.store.ByID(id)
	if p == nil {
		apiError(w, "property not found", http.StatusNotFound)
		return
	}

	var target *float64
	if v := r.URL.Query().Get("target"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			apiError(w, "invalid target price", http.StatusBadRequest)
			return
		}
		target = &t
	}

	advice, err := s.store.Negotiate(p.Name, target)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiJSON(w, advice, http.StatusOK)
}

// handleSearch filters the catalog by query parameters: location, bedrooms,
// minPrice, maxPrice, amenities (comma-separated).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filters := catalog.Filters{Location: q.Get("location")}

	if v := q.Get("bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apiError(w, "invalid bedrooms", http.StatusBadRequest)
			return
		}
		filters.Bedrooms = &n
	}
	if v := q.Get("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			apiError(w, "invalid minPrice", http.StatusBadRequest)
			return
		}
		filters.MinPrice = &f
	}
	if v := q.Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			apiError(w, "invalid maxPrice", http.StatusBadRequest)
			return
		}
		filters.MaxPrice = &f
	}
	if v := q.Get("amenities"); v != "" {
		filters.Amenities = strings.Split(v, ",")
	}

	results := s.store.Search(filters)
	apiJSON(w, map[string]any{
		"count":      len(results),
		"properties": results,
	}, http.StatusOK)
}

// handleStats serves catalog aggregates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cheapest, mostExpensive := s.store.CheapestAndMostExpensive()
	apiJSON(w, map[string]any{
		"count":         s.store.Count(),
		"averagePrice":  s.store.AveragePrice(),
		"cheapest":      cheapest,
		"mostExpensive": mostExpensive,
	}, http.StatusOK)
}

// handleCart serves and mutates the session cart.
func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		apiJSON(w, map[string]any{
			"properties": s.session.Cart(),
			"total":      s.session.CartTotal(),
			"count":      s.session.CartCount(),
		}, http.StatusOK)

	case http.MethodPost:
		var req struct {
			PropertyID int64 `json:"propertyId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		p := s.store.ByID(req.PropertyID)
		if p == nil {
			apiError(w, "property not found", http.StatusNotFound)
			return
		}
		s.session.AddToCart(*p)
		apiJSON(w, map[string]any{"count": s.session.CartCount()}, http.StatusCreated)

	case http.MethodDelete:
		apiJSON(w, map[string]any{"itemsRemoved": s.session.ClearCart()}, http.StatusOK)

	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCartItem removes one cart entry: DELETE /api/cart/{id}.
func (s *Server) handleCartItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/cart/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}

	if !s.session.RemoveOneFromCart(id) {
		apiError(w, "property not in cart", http.StatusNotFound)
		return
	}
	apiJSON(w, map[string]any{"count": s.session.CartCount()}, http.StatusOK)
}

// handleViewings serves and mutates the viewing schedule.
func (s *Server) handleViewings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		apiJSON(w, s.session.Viewings(), http.StatusOK)

	case http.MethodPost:
		var req struct {
			PropertyName string `json:"propertyName"`
			Day          string `json:"day"`
			Time         string `json:"time"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		conf, err := s.session.ScheduleViewing(req.PropertyName, req.Day, req.Time)
		if err != nil {
			var nf *catalog.NotFoundError
			if errors.As(err, &nf) {
				apiError(w, err.Error(), http.StatusNotFound)
				return
			}
			var dayErr *session.DayUnavailableError
			var timeErr *session.TimeUnavailableError
			if errors.As(err, &dayErr) || errors.As(err, &timeErr) {
				apiError(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			apiError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		apiJSON(w, conf, http.StatusCreated)

	case http.MethodDelete:
		apiJSON(w, map[string]any{"viewingsRemoved": s.session.ClearSchedule()}, http.StatusOK)

	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleChat forwards one user message to the assistant.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.orchestrator == nil {
		apiError(w, "chat is not configured: set an OpenAI API key", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		apiError(w, "message is required", http.StatusBadRequest)
		return
	}

	reply := s.orchestrator.AskAgent(r.Context(), req.Message)
	apiJSON(w, map[string]string{"reply": reply}, http.StatusOK)
}
