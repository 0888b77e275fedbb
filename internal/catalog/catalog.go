// Package catalog holds the park's static product and map data.
package catalog

import (
	"sort"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const (
	DefaultFeaturedLimit = 6
	MaxFeaturedLimit     = 10
)

var ticketTypes = []domain.TicketType{
	{
		ID:          "day-pass",
		Name:        "Day Pass",
		Description: "Full-day access to every zone and attraction.",
		Price:       99,
		Color:       "#0891B2",
		Features:    []string{"All attractions", "All 5 themed zones", "Live shows"},
	},
	{
		ID:          "express-pass",
		Name:        "Express Pass",
		Description: "Day access plus priority queue on major rides.",
		Price:       189,
		Color:       "#F59E0B",
		Features:    []string{"Everything in Day Pass", "Priority queue on 10+ rides", "1 re-ride per attraction"},
	},
	{
		ID:          "family-pack",
		Name:        "Family Pack",
		Description: "Day access for 2 adults and 2 children.",
		Price:       329,
		Color:       "#9333EA",
		Features:    []string{"4 admissions", "Kids Paradise meet & greet", "Family photo package"},
	},
	{
		ID:          "season-pass",
		Name:        "Season Pass",
		Description: "Unlimited visits for 12 months.",
		Price:       499,
		Color:       "#DC2626",
		Features:    []string{"Unlimited visits", "Free parking", "Member discounts"},
	},
}

var zones = []domain.Zone{
	{ID: "fantasy-kingdom", Name: "Fantasy Kingdom", Description: "Enchanted castles, mythical creatures and fairy-tale adventures for all ages.", Color: "#9333EA", Attractions: 4, Dining: 3, Shops: 2, Features: []string{"Castle Tours", "Dragon Shows", "Magic Performances"}},
	{ID: "future-world", Name: "Future World", Description: "Cutting-edge technology, space exploration and futuristic thrills.", Color: "#0891B2", Attractions: 3, Dining: 2, Shops: 2, Features: []string{"VR Experiences", "Robot Encounters", "Space Simulator"}},
	{ID: "aqua-zone", Name: "Aqua Zone", Description: "Water rides, splash zones and marine-themed attractions.", Color: "#0284C7", Attractions: 3, Dining: 2, Shops: 1, Features: []string{"Wave Pool", "Lazy River", "Water Slides"}},
	{ID: "kids-paradise", Name: "Kids Paradise", Description: "Gentle rides, play areas and character meet-ups for little ones.", Color: "#F59E0B", Attractions: 3, Dining: 2, Shops: 3, Features: []string{"Playground", "Mini Coasters", "Character Meet & Greet"}},
	{ID: "adventure-valley", Name: "Adventure Valley", Description: "Heart-pounding roller coasters and extreme adventures.", Color: "#DC2626", Attractions: 4, Dining: 3, Shops: 2, Features: []string{"Extreme Coasters", "Zip Lines", "Rock Climbing"}},
}

var attractions = []domain.Attraction{
	{ID: "1", Name: "Dragon Coaster", ZoneID: "adventure-valley", Type: "roller_coaster", WaitMinutes: 25, HeightReqCM: 120, ThrillLevel: 5, Status: domain.AttractionOpen, Rating: 4.8},
	{ID: "2", Name: "Space Launch", ZoneID: "future-world", Type: "roller_coaster", WaitMinutes: 30, HeightReqCM: 140, ThrillLevel: 5, Status: domain.AttractionOpen, Rating: 4.9},
	{ID: "3", Name: "Thunder Mountain", ZoneID: "adventure-valley", Type: "roller_coaster", WaitMinutes: 20, HeightReqCM: 110, ThrillLevel: 4, Status: domain.AttractionOpen, Rating: 4.7},
	{ID: "4", Name: "Enchanted Castle", ZoneID: "fantasy-kingdom", Type: "dark_ride", WaitMinutes: 15, ThrillLevel: 2, Status: domain.AttractionOpen, Rating: 4.5},
	{ID: "5", Name: "Magic Carousel", ZoneID: "fantasy-kingdom", Type: "family", WaitMinutes: 10, ThrillLevel: 1, Status: domain.AttractionOpen, Rating: 4.3},
	{ID: "6", Name: "River Rapids", ZoneID: "aqua-zone", Type: "water_ride", WaitMinutes: 20, HeightReqCM: 100, ThrillLevel: 3, Status: domain.AttractionOpen, Rating: 4.6},
	{ID: "7", Name: "Wave Pool", ZoneID: "aqua-zone", Type: "water_ride", ThrillLevel: 2, Status: domain.AttractionOpen, Rating: 4.4},
	{ID: "8", Name: "Kiddie Cars", ZoneID: "kids-paradise", Type: "family", WaitMinutes: 5, ThrillLevel: 1, Status: domain.AttractionOpen, Rating: 4.2},
	{ID: "9", Name: "Mini Train", ZoneID: "kids-paradise", Type: "family", WaitMinutes: 10, ThrillLevel: 1, Status: domain.AttractionOpen, Rating: 4.4},
	{ID: "10", Name: "Robot Arena", ZoneID: "future-world", Type: "interactive", WaitMinutes: 15, ThrillLevel: 2, Status: domain.AttractionMaintenance, Rating: 4.7},
}

// Catalog is a read-only view over the park's products and map.
type Catalog struct {
	tickets     []domain.TicketType
	ticketIndex map[string]domain.TicketType
	zones       []domain.Zone
	attractions []domain.Attraction
}

// New returns the built-in park catalog.
func New() *Catalog {
	return NewWith(ticketTypes, zones, attractions)
}

// NewWith builds a catalog from explicit data.
func NewWith(tickets []domain.TicketType, zs []domain.Zone, as []domain.Attraction) *Catalog {
	idx := make(map[string]domain.TicketType, len(tickets))
	for _, t := range tickets {
		idx[t.ID] = t
	}
	return &Catalog{
		tickets:     append([]domain.TicketType(nil), tickets...),
		ticketIndex: idx,
		zones:       append([]domain.Zone(nil), zs...),
		attractions: append([]domain.Attraction(nil), as...),
	}
}

func (c *Catalog) TicketTypes() []domain.TicketType {
	return append([]domain.TicketType(nil), c.tickets...)
}

// TicketType looks up a ticket type by id.
func (c *Catalog) TicketType(id string) (domain.TicketType, error) {
	t, ok := c.ticketIndex[id]
	if !ok {
		return domain.TicketType{}, domain.ErrTicketTypeNotFound
	}
	return t, nil
}

func (c *Catalog) Zones() []domain.Zone {
	return append([]domain.Zone(nil), c.zones...)
}

// AttractionFilter narrows Attractions. Empty or "all" fields match everything.
type AttractionFilter struct {
	ZoneID string
	Type   string
}

func (c *Catalog) Attractions(f AttractionFilter) []domain.Attraction {
	out := make([]domain.Attraction, 0, len(c.attractions))
	for _, a := range c.attractions {
		if !matches(f.ZoneID, a.ZoneID) || !matches(f.Type, a.Type) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || want == "all" || want == got
}

// FeaturedAttractions returns the best-rated attractions. Non-positive
// limits use the default; limits above the maximum are capped.
func (c *Catalog) FeaturedAttractions(limit int) []domain.Attraction {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	if limit > MaxFeaturedLimit {
		limit = MaxFeaturedLimit
	}
	out := append([]domain.Attraction(nil), c.attractions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
