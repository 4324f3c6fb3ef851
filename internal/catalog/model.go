// Package catalog provides the property catalog and its query operations.
package catalog

// Listing holds listing metadata for a property.
type Listing struct {
	Type       string `json:"type"`
	DateListed string `json:"dateListed"` // ISO date, e.g. 2025-06-14
}

// ViewingWindow is a set of days and times a property can be viewed.
// An empty Times list means any time on the listed days.
type ViewingWindow struct {
	Days  []string `json:"day"`
	Times []string `json:"time"`
}

// Location groups the address fields of a property.
type Location struct {
	City      string   `json:"city"`
	Subcounty string   `json:"subcounty"`
	Address   string   `json:"address"`
	Rooms     []string `json:"rooms"`
}

// Agent is the listing agent for a property.
type Agent struct {
	Name    string `json:"name"`
	Agency  string `json:"agency"`
	Contact string `json:"contact"`
}

// Property represents a single listing. Records are immutable once loaded;
// the ID is the sole foreign key used by cart and schedule entries.
type Property struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	Photo          string          `json:"photo,omitempty"`
	Price          float64         `json:"price"` // KES
	AvailableUnits string          `json:"availableUnits,omitempty"`
	Wifi           bool            `json:"wifi"`
	Laundry        bool            `json:"laundry"`
	Amenities      []string        `json:"nearbyAmenities"`
	Nearby         []string        `json:"nearby,omitempty"`
	Address        string          `json:"address"`
	Subcounty      string          `json:"subcounty"`
	Rooms          []string        `json:"rooms"` // descriptors like "3 bedroom"
	Type           string          `json:"type"`
	Value          []string        `json:"value,omitempty"`
	Listing        Listing         `json:"listing"`
	ViewingWindows []ViewingWindow `json:"viewingDays"`
	Location       Location        `json:"location"`
	Agent          Agent           `json:"agent"`
}
