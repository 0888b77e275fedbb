package domain

type AttractionStatus string

const (
	AttractionOpen        AttractionStatus = "open"
	AttractionClosed      AttractionStatus = "closed"
	AttractionMaintenance AttractionStatus = "maintenance"
)

// Attraction is a single ride or show.
type Attraction struct {
	ID          string
	Name        string
	ZoneID      string
	Type        string
	WaitMinutes int
	// HeightReqCM of zero means no minimum.
	HeightReqCM int
	ThrillLevel int
	Status      AttractionStatus
	Rating      float64
}
