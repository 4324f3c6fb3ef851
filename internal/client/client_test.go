package client

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homefinder-ke/homefinder/internal/catalog"
	"github.com/homefinder-ke/homefinder/internal/session"
	"github.com/homefinder-ke/homefinder/internal/web"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	store := catalog.NewStore([]catalog.Property{
		{
			ID: 1, Name: "Greenview Villa", Price: 50000, Type: "villa",
			City: "Thika", Subcounty: "Thika Town",
			ViewingWindows: []catalog.ViewingWindow{
				{Days: []string{"monday"}, Times: []string{"10:00"}},
			},
			Agent: catalog.Agent{Name: "Wanjiru Kamau", Agency: "Skyline Realty", Contact: "+254 712 345 678"},
		},
		{
			ID: 2, Name: "Acacia Heights", Price: 30000, Type: "apartment",
			City: "Nairobi", Subcounty: "Westlands",
			Amenities: []string{"wifi", "pool"},
			Agent:     catalog.Agent{Name: "Brian Otieno", Agency: "Haven Homes", Contact: "+254 722 901 234"},
		},
	})

	srv := httptest.NewServer(web.NewServer(store, session.New(store), nil))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestListProperties(t *testing.T) {
	c := newTestClient(t)

	props, err := c.ListProperties("")
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 2 {
		t.Errorf("got %d properties, want 2", len(props))
	}

	sorted, err := c.ListProperties("asc")
	if err != nil {
		t.Fatalf("ListProperties asc: %v", err)
	}
	if sorted[0].ID != 2 {
		t.Errorf("ascending order wrong: %+v", sorted)
	}
}

func TestGetProperty(t *testing.T) {
	c := newTestClient(t)

	p, err := c.GetProperty(1)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if p.Name != "Greenview Villa" {
		t.Errorf("name = %q", p.Name)
	}

	if _, err := c.GetProperty(99); err == nil {
		t.Error("expected error for missing property")
	}
}

func TestSearch(t *testing.T) {
	c := newTestClient(t)

	result, err := c.Search(catalog.Filters{Location: "westlands", Amenities: []string{"wifi"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Count != 1 || result.Properties[0].ID != 2 {
		t.Errorf("search = %+v", result)
	}
}

func TestGetStats(t *testing.T) {
	c := newTestClient(t)

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Count != 2 || stats.AveragePrice != 40000 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCartRoundTrip(t *testing.T) {
	c := newTestClient(t)

	if err := c.AddToCart(1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	cart, err := c.GetCart()
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.Count != 1 || cart.Total != 50000 {
		t.Errorf("cart = %+v", cart)
	}

	if err := c.RemoveFromCart(1); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if err := c.RemoveFromCart(1); err == nil {
		t.Error("expected error removing absent property")
	}
	if err := c.ClearCart(); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
}

func TestScheduleViewing(t *testing.T) {
	c := newTestClient(t)

	conf, err := c.ScheduleViewing("Greenview Villa", "Monday", "10:00")
	if err != nil {
		t.Fatalf("ScheduleViewing: %v", err)
	}
	if conf.Viewing.PropertyID != 1 {
		t.Errorf("confirmation = %+v", conf)
	}

	viewings, err := c.ListViewings()
	if err != nil {
		t.Fatalf("ListViewings: %v", err)
	}
	if len(viewings) != 1 {
		t.Errorf("viewings = %+v", viewings)
	}

	// The server relays the validation message listing the valid days.
	_, err = c.ScheduleViewing("Greenview Villa", "Friday", "10:00")
	if err == nil || !strings.Contains(err.Error(), "monday") {
		t.Errorf("err = %v, want day validation message", err)
	}

	if err := c.ClearViewings(); err != nil {
		t.Fatalf("ClearViewings: %v", err)
	}
}

func TestChatUnconfigured(t *testing.T) {
	c := newTestClient(t)

	if _, err := c.Chat("hello"); err == nil {
		t.Error("expected error when chat is not configured")
	}
}
