// Package session owns the mutable per-session state: the property cart and
// the scheduled viewings. The catalog itself is read-only and lives in the
// catalog package.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/homefinder-ke/homefinder/internal/catalog"
)

// ViewingStatus tracks where a scheduled viewing is in its lifecycle.
type ViewingStatus string

const (
	ViewingPending   ViewingStatus = "pending"
	ViewingConfirmed ViewingStatus = "confirmed"
	ViewingCancelled ViewingStatus = "cancelled"
)

// Viewing is a scheduled property viewing. Day and time are stored
// lower-cased. The property ID is the only link back to the catalog.
type Viewing struct {
	PropertyID   int64         `json:"property_id"`
	PropertyName string        `json:"property_name"`
	Day          string        `json:"day"`
	Time         string        `json:"time"`
	Status       ViewingStatus `json:"status"`
}

// Confirmation is returned by ScheduleViewing on success.
type Confirmation struct {
	Viewing Viewing `json:"viewing"`
	Message string  `json:"message"`
}

// Session holds one user's cart and viewing schedule. All state lives in
// memory for the lifetime of the session; nothing is persisted. Methods are
// safe for concurrent use, so an in-flight assistant turn cannot interleave
// destructively with another caller.
type Session struct {
	ID    string
	store *catalog.Store

	mu       sync.Mutex
	cart     []catalog.Property
	viewings []Viewing
}

// New creates an empty session over the given catalog.
func New(store *catalog.Store) *Session {
	return &Session{
		ID:    uuid.NewString(),
		store: store,
	}
}

// AddToCart appends a copy of the property to the cart. Duplicates are
// allowed; adding the same property twice yields two entries.
func (s *Session) AddToCart(p catalog.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append(s.cart, p)
}

// RemoveOneFromCart removes the first cart entry with the given property ID.
// It reports whether anything was removed; an absent ID is a no-op.
func (s *Session) RemoveOneFromCart(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.cart {
		if p.ID == id {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCart empties the cart. It returns false when the cart was already
// empty, true otherwise; the final state is empty either way.
func (s *Session) ClearCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return false
	}
	s.cart = nil
	return true
}

// Cart returns a copy of the cart contents in insertion order.
func (s *Session) Cart() []catalog.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Property, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal returns the summed price of everything in the cart. Computed on
// demand; nothing is cached.
func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, p := range s.cart {
		total += p.Price
	}
	return total
}

// CartCount returns the number of entries in the cart.
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart)
}

// ScheduleViewing books a viewing for the named property. The name lookup is
// case-insensitive. The requested day must appear in one of the property's
// viewing windows and, when that window restricts times, the requested time
// must be one of them. On success a pending viewing is appended with
// lower-cased day and time, and the confirmation message includes the
// listing agent's contact.
func (s *Session) ScheduleViewing(propertyName, day, time string) (*Confirmation, error) {
	property, err := s.store.ByName(propertyName)
	if err != nil {
		return nil, err
	}

	window := matchWindow(property.ViewingWindows, day)
	if window == nil {
		return nil, &DayUnavailableError{Day: day, ValidDays: allDays(property.ViewingWindows)}
	}

	if len(window.Times) > 0 && !containsFold(window.Times, time) {
		return nil, &TimeUnavailableError{Time: time, ValidTimes: window.Times}
	}

	v := Viewing{
		PropertyID:   property.ID,
		PropertyName: property.Name,
		Day:          strings.ToLower(day),
		Time:         strings.ToLower(time),
		Status:       ViewingPending,
	}

	s.mu.Lock()
	s.viewings = append(s.viewings, v)
	s.mu.Unlock()

	return &Confirmation{
		Viewing: v,
		Message: fmt.Sprintf("Viewing scheduled for %s on %s at %s. Agent %s (%s) will confirm.",
			property.Name, day, time, property.Agent.Name, property.Agent.Contact),
	}, nil
}

// Viewings returns a copy of the scheduled viewings in creation order.
func (s *Session) Viewings() []Viewing {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Viewing, len(s.viewings))
	copy(out, s.viewings)
	return out
}

// ClearSchedule deletes all scheduled viewings. Same contract as ClearCart:
// false when already empty, true otherwise.
func (s *Session) ClearSchedule() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.viewings) == 0 {
		return false
	}
	s.viewings = nil
	return true
}

// PendingViewingCount returns the number of viewings still pending.
func (s *Session) PendingViewingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, v := range s.viewings {
		if v.Status == ViewingPending {
			count++
		}
	}
	return count
}

// matchWindow returns the first viewing window listing the given day,
// case-insensitively, or nil.
func matchWindow(windows []catalog.ViewingWindow, day string) *catalog.ViewingWindow {
	for i := range windows {
		if containsFold(windows[i].Days, day) {
			return &windows[i]
		}
	}
	return nil
}

// allDays returns the union of days across all viewing windows, in order of
// first appearance.
func allDays(windows []catalog.ViewingWindow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range windows {
		for _, d := range w.Days {
			key := strings.ToLower(d)
			if !seen[key] {
				seen[key] = true
				out = append(out, d)
			}
		}
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
