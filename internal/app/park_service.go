package app

import (
	"github.com/curiousguyinhis30s/themepark-website/internal/catalog"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// ParkService answers the read-only park information endpoints.
type ParkService struct {
	catalog *catalog.Catalog
	clock   clock.Clock
}

func NewParkService(c *catalog.Catalog, clk clock.Clock) *ParkService {
	return &ParkService{catalog: c, clock: clk}
}

func (s *ParkService) Status() domain.ParkStatus {
	return catalog.Status(s.clock.Now())
}

func (s *ParkService) Zones() []domain.Zone {
	return s.catalog.Zones()
}

func (s *ParkService) Attractions(f catalog.AttractionFilter) []domain.Attraction {
	return s.catalog.Attractions(f)
}

func (s *ParkService) FeaturedAttractions(limit int) []domain.Attraction {
	return s.catalog.FeaturedAttractions(limit)
}

func (s *ParkService) TicketTypes() []domain.TicketType {
	return s.catalog.TicketTypes()
}
