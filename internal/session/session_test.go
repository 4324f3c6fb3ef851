package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/homefinder-ke/homefinder/internal/catalog"
)

func testSession() *Session {
	store := catalog.NewStore([]catalog.Property{
		{
			ID: 1, Name: "Greenview Villa", Price: 50000,
			ViewingWindows: []catalog.ViewingWindow{
				{Days: []string{"monday"}, Times: []string{"10:00"}},
			},
			Agent: catalog.Agent{Name: "Wanjiru Kamau", Agency: "Skyline Realty", Contact: "+254 712 345 678"},
		},
		{
			ID: 2, Name: "Open House Flat", Price: 30000,
			ViewingWindows: []catalog.ViewingWindow{
				{Days: []string{"saturday", "sunday"}, Times: nil},
			},
			Agent: catalog.Agent{Name: "Brian Otieno", Agency: "Haven Homes", Contact: "+254 722 901 234"},
		},
	})
	return New(store)
}

func TestAddToCartAndRoundTrip(t *testing.T) {
	s := testSession()
	p := catalog.Property{ID: 1, Name: "Greenview Villa", Price: 50000}

	s.AddToCart(p)

	cart := s.Cart()
	if len(cart) != 1 {
		t.Fatalf("cart len = %d, want 1", len(cart))
	}
	if cart[0].ID != p.ID || cart[0].Name != p.Name || cart[0].Price != p.Price {
		t.Errorf("cart[0] = %+v, want value-equal copy of %+v", cart[0], p)
	}
}

func TestAddToCartAllowsDuplicates(t *testing.T) {
	s := testSession()
	p := catalog.Property{ID: 1, Name: "Greenview Villa", Price: 50000}

	s.AddToCart(p)
	s.AddToCart(p)

	if got := s.CartCount(); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	if got := s.CartTotal(); got != 100000 {
		t.Errorf("total = %v, want 100000", got)
	}
}

func TestRemoveOneFromCart(t *testing.T) {
	s := testSession()
	p := catalog.Property{ID: 1, Name: "Greenview Villa", Price: 50000}

	// With duplicates, remove takes exactly one entry.
	s.AddToCart(p)
	s.AddToCart(p)

	if !s.RemoveOneFromCart(1) {
		t.Fatal("expected removal to succeed")
	}
	if got := s.CartCount(); got != 1 {
		t.Errorf("count after first remove = %d, want 1", got)
	}

	if !s.RemoveOneFromCart(1) {
		t.Fatal("expected second removal to succeed")
	}
	for _, entry := range s.Cart() {
		if entry.ID == 1 {
			t.Errorf("cart still contains id 1: %+v", entry)
		}
	}
}

func TestRemoveOneFromCartAbsent(t *testing.T) {
	s := testSession()

	if s.RemoveOneFromCart(42) {
		t.Error("expected no-op removal to report false")
	}
	if got := s.CartCount(); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}

func TestClearCartContract(t *testing.T) {
	s := testSession()

	// Empty cart: returns false, stays empty.
	if s.ClearCart() {
		t.Error("clearing an empty cart should return false")
	}
	if got := s.CartCount(); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}

	s.AddToCart(catalog.Property{ID: 1, Price: 10})
	if !s.ClearCart() {
		t.Error("clearing a non-empty cart should return true")
	}
	if got := s.CartCount(); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}

func TestScheduleViewingSuccess(t *testing.T) {
	s := testSession()

	conf, err := s.ScheduleViewing("Greenview Villa", "Monday", "10:00")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if conf.Viewing.PropertyID != 1 {
		t.Errorf("property id = %d, want 1", conf.Viewing.PropertyID)
	}
	if conf.Viewing.Status != ViewingPending {
		t.Errorf("status = %q, want %q", conf.Viewing.Status, ViewingPending)
	}
	// Day and time are normalized to lower case before storage.
	if conf.Viewing.Day != "monday" || conf.Viewing.Time != "10:00" {
		t.Errorf("stored day/time = %q/%q, want monday/10:00", conf.Viewing.Day, conf.Viewing.Time)
	}
	if !strings.Contains(conf.Message, "+254 712 345 678") {
		t.Errorf("confirmation missing agent contact: %q", conf.Message)
	}

	viewings := s.Viewings()
	if len(viewings) != 1 {
		t.Fatalf("viewings len = %d, want 1", len(viewings))
	}
}

func TestScheduleViewingCaseInsensitiveName(t *testing.T) {
	s := testSession()

	conf, err := s.ScheduleViewing("greenview villa", "MONDAY", "10:00")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if conf.Viewing.PropertyName != "Greenview Villa" {
		t.Errorf("property name = %q, want canonical name", conf.Viewing.PropertyName)
	}
}

func TestScheduleViewingNotFound(t *testing.T) {
	s := testSession()

	_, err := s.ScheduleViewing("Nonexistent Manor", "monday", "10:00")
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *catalog.NotFoundError", err)
	}
}

func TestScheduleViewingDayUnavailable(t *testing.T) {
	s := testSession()

	_, err := s.ScheduleViewing("Greenview Villa", "tuesday", "10:00")
	var du *DayUnavailableError
	if !errors.As(err, &du) {
		t.Fatalf("err = %v, want *DayUnavailableError", err)
	}
	if len(du.ValidDays) != 1 || du.ValidDays[0] != "monday" {
		t.Errorf("valid days = %v, want [monday]", du.ValidDays)
	}
	if !strings.Contains(err.Error(), "monday") {
		t.Errorf("message should list valid days: %q", err.Error())
	}

	if got := len(s.Viewings()); got != 0 {
		t.Errorf("viewings = %d, want 0 after failure", got)
	}
}

func TestScheduleViewingTimeUnavailable(t *testing.T) {
	s := testSession()

	_, err := s.ScheduleViewing("Greenview Villa", "monday", "16:00")
	var tu *TimeUnavailableError
	if !errors.As(err, &tu) {
		t.Fatalf("err = %v, want *TimeUnavailableError", err)
	}
	if !strings.Contains(err.Error(), "10:00") {
		t.Errorf("message should list valid times: %q", err.Error())
	}
}

func TestScheduleViewingEmptyTimeListAcceptsAnyTime(t *testing.T) {
	s := testSession()

	conf, err := s.ScheduleViewing("Open House Flat", "saturday", "18:45")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if conf.Viewing.Time != "18:45" {
		t.Errorf("time = %q, want 18:45", conf.Viewing.Time)
	}
}

func TestClearScheduleContract(t *testing.T) {
	s := testSession()

	if s.ClearSchedule() {
		t.Error("clearing an empty schedule should return false")
	}

	if _, err := s.ScheduleViewing("Greenview Villa", "monday", "10:00"); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got := s.PendingViewingCount(); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}

	if !s.ClearSchedule() {
		t.Error("clearing a non-empty schedule should return true")
	}
	if got := len(s.Viewings()); got != 0 {
		t.Errorf("viewings = %d, want 0", got)
	}
}
