package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// comparablePriceBand is the fraction of the asking price within which
// another listing of the same type counts as a comparable.
const comparablePriceBand = 0.3

// staleListingDays is the days-on-market threshold after which a seller is
// flagged as possibly motivated.
const staleListingDays = 30

// NegotiationAdvice summarizes market data and talking points for making an
// offer on a property.
type NegotiationAdvice struct {
	Property             Property   `json:"property"`
	Comparables          []Property `json:"comparableProperties"`
	AveragePrice         float64    `json:"averagePrice"`
	PriceDifference      *float64   `json:"priceDifference,omitempty"`
	PercentageDifference *float64   `json:"percentageDifference,omitempty"`
	Tips                 []string   `json:"negotiationTips"`
}

// Negotiate builds negotiation advice for the named property. Comparables
// are listings of the same type priced within ±30% of the asking price.
// targetPrice is optional; when given, absolute and percentage deltas
// against the asking price are included.
func (s *Store) Negotiate(propertyName string, targetPrice *float64) (*NegotiationAdvice, error) {
	return s.negotiate(propertyName, targetPrice, time.Now())
}

func (s *Store) negotiate(propertyName string, targetPrice *float64, now time.Time) (*NegotiationAdvice, error) {
	property, err := s.ByName(propertyName)
	if err != nil {
		return nil, err
	}

	var comparables []Property
	for _, p := range s.properties {
		if p.ID == property.ID || p.Type != property.Type {
			continue
		}
		if math.Abs(p.Price-property.Price) <= property.Price*comparablePriceBand {
			comparables = append(comparables, p)
		}
	}

	average := property.Price
	if len(comparables) > 0 {
		var total float64
		for _, p := range comparables {
			total += p.Price
		}
		average = total / float64(len(comparables))
	}

	advice := &NegotiationAdvice{
		Property:     *property,
		Comparables:  comparables,
		AveragePrice: average,
	}

	if targetPrice != nil {
		diff := property.Price - *targetPrice
		pct := diff / property.Price * 100
		advice.PriceDifference = &diff
		advice.PercentageDifference = &pct
	}

	advice.Tips = negotiationTips(*property, comparables, targetPrice, now)

	return advice, nil
}

// negotiationTips derives human-readable talking points from the asking
// price, comparables, time on market, and the buyer's target price.
func negotiationTips(property Property, comparables []Property, targetPrice *float64, now time.Time) []string {
	var tips []string

	tips = append(tips, fmt.Sprintf("The asking price is KES %s", formatKES(property.Price)))

	if len(comparables) > 0 {
		var total float64
		cheapest := comparables[0]
		for _, p := range comparables {
			total += p.Price
			if p.Price < cheapest.Price {
				cheapest = p
			}
		}
		tips = append(tips, fmt.Sprintf("Similar properties average KES %s", formatKES(total/float64(len(comparables)))))
		tips = append(tips, fmt.Sprintf("The cheapest comparable is %s at KES %s", cheapest.Name, formatKES(cheapest.Price)))
	}

	if listed, ok := parseListingDate(property.Listing.DateListed); ok {
		days := int(now.Sub(listed).Hours() / 24)
		if days > staleListingDays {
			tips = append(tips, fmt.Sprintf("This property has been listed for %d days - the seller may be more motivated", days))
		}
	}

	if targetPrice != nil {
		ratio := *targetPrice / property.Price
		if ratio < 0.9 {
			tips = append(tips, fmt.Sprintf(
				"Your target price (KES %s) is %d%% below asking - consider a more moderate initial offer",
				formatKES(*targetPrice), int(math.Round(100-ratio*100))))
		} else {
			tips = append(tips, fmt.Sprintf(
				"Your target price seems reasonable at %d%% of asking price",
				int(math.Round(ratio*100))))
		}
	}

	tips = append(tips,
		"Consider asking about: any needed repairs, recent price reductions, or seller motivation",
		"Remember to be polite and flexible - negotiation is a conversation",
	)

	return tips
}

// formatKES formats an amount with commas separating thousands. Fractional
// cents are dropped; listing prices are whole shillings.
func formatKES(amount float64) string {
	s := fmt.Sprintf("%d", int64(math.Round(amount)))

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}

	if neg {
		return "-" + s
	}
	return s
}
