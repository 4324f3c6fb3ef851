package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SortByPrice returns the catalog sorted by price. The sort is stable, so
// properties with equal prices keep their load order.
func (s *Store) SortByPrice(ascending bool) []Property {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out
}

// FilterByPriceRange returns properties priced within [min, max] inclusive.
func (s *Store) FilterByPriceRange(min, max float64) []Property {
	var out []Property
	for _, p := range s.properties {
		if p.Price >= min && p.Price <= max {
			out = append(out, p)
		}
	}
	return out
}

// PriceComparison is a name/price projection used when comparing listings.
type PriceComparison struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CompareByNames returns a {name, price} projection for every catalog entry
// whose name appears in names. Unmatched names are omitted silently.
func (s *Store) CompareByNames(names []string) []PriceComparison {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []PriceComparison
	for _, p := range s.properties {
		if wanted[p.Name] {
			out = append(out, PriceComparison{Name: p.Name, Price: p.Price})
		}
	}
	return out
}

// CheapestAndMostExpensive returns the price extremes of the catalog.
// Both results are nil when the catalog is empty.
func (s *Store) CheapestAndMostExpensive() (cheapest, mostExpensive *Property) {
	if len(s.properties) == 0 {
		return nil, nil
	}
	sorted := s.SortByPrice(true)
	return &sorted[0], &sorted[len(sorted)-1]
}

// AveragePrice returns the arithmetic mean price rounded to 2 decimal
// places, or 0 for an empty catalog.
func (s *Store) AveragePrice() float64 {
	if len(s.properties) == 0 {
		return 0
	}
	var total float64
	for _, p := range s.properties {
		total += p.Price
	}
	return math.Round(total/float64(len(s.properties))*100) / 100
}

// FindByAgentOrAgency returns properties whose agent name or agency contains
// text (case-insensitive). An empty query returns nothing, not everything.
func (s *Store) FindByAgentOrAgency(text string) []Property {
	if text == "" {
		return nil
	}

	var out []Property
	for _, p := range s.properties {
		if containsFold(p.Agent.Name, text) || containsFold(p.Agent.Agency, text) {
			out = append(out, p)
		}
	}
	return out
}

// maxSimilar caps the number of results returned by FindSimilar.
const maxSimilar = 5

// FindSimilar returns properties comparable to the one with the given ID:
// same type, same agency, and at least one shared room descriptor. The
// reference property itself is excluded, results are ordered by price
// proximity to it, and at most maxSimilar are returned.
func (s *Store) FindSimilar(id int64) []Property {
	ref := s.ByID(id)
	if ref == nil {
		return nil
	}

	var out []Property
	for _, p := range s.properties {
		if p.ID == ref.ID {
			continue
		}
		if p.Type != ref.Type || p.Agent.Agency != ref.Agent.Agency {
			continue
		}
		if !sharesRoomDescriptor(p.Rooms, ref.Rooms) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Price-ref.Price) < math.Abs(out[j].Price-ref.Price)
	})
	if len(out) > maxSimilar {
		out = out[:maxSimilar]
	}
	return out
}

// sharesRoomDescriptor reports whether the two room lists have at least one
// descriptor in common, ignoring case.
func sharesRoomDescriptor(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				return true
			}
		}
	}
	return false
}

// FindByAmenities returns properties whose amenity list covers every entry
// in amenities (AND semantics, case-insensitive substring match).
func (s *Store) FindByAmenities(amenities []string) []Property {
	var out []Property
	for _, p := range s.properties {
		if hasAllAmenities(p.Amenities, nil, amenities) {
			out = append(out, p)
		}
	}
	return out
}

// defaultRecentLimit is used when RecentlyListed gets a non-positive limit.
const defaultRecentLimit = 5

// RecentlyListed returns up to limit properties with a parseable listing
// date, newest first.
func (s *Store) RecentlyListed(limit int) []Property {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	type dated struct {
		p Property
		t time.Time
	}
	var withDates []dated
	for _, p := range s.properties {
		t, ok := parseListingDate(p.Listing.DateListed)
		if !ok {
			continue
		}
		withDates = append(withDates, dated{p: p, t: t})
	}

	sort.SliceStable(withDates, func(i, j int) bool {
		return withDates[i].t.After(withDates[j].t)
	})

	if len(withDates) > limit {
		withDates = withDates[:limit]
	}
	out := make([]Property, 0, len(withDates))
	for _, d := range withDates {
		out = append(out, d.p)
	}
	return out
}

// Filters describes a composite property search. Location is matched as a
// substring of city or subcounty; the remaining fields are optional and
// combined with AND semantics.
type Filters struct {
	Location  string   `json:"location"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// Search returns properties matching all the given filters.
func (s *Store) Search(f Filters) []Property {
	var out []Property
	for _, p := range s.properties {
		if matchesFilters(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilters(p Property, f Filters) bool {
	if !containsFold(p.City, f.Location) && !containsFold(p.Subcounty, f.Location) {
		return false
	}

	if f.Bedrooms != nil {
		want := strconv.Itoa(*f.Bedrooms) + " bedroom"
		found := false
		for _, room := range p.Rooms {
			if strings.Contains(strings.ToLower(room), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}

	if len(f.Amenities) > 0 && !hasAllAmenities(p.Amenities, p.Value, f.Amenities) {
		return false
	}

	return true
}

// hasAllAmenities reports whether every wanted amenity appears as a
// case-insensitive substring of some tag in primary or secondary.
func hasAllAmenities(primary, secondary, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, tag := range primary {
			if containsFold(tag, w) {
				found = true
				break
			}
		}
		if !found {
			for _, tag := range secondary {
				if containsFold(tag, w) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// parseListingDate accepts the dataset's plain date format and RFC 3339.
func parseListingDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
