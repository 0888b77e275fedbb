package catalog

import (
	"fmt"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// ParkLocation is Kuala Lumpur time. A fixed zone avoids depending on tzdata.
var ParkLocation = time.FixedZone("MYT", 8*60*60)

const (
	openHour  = 10
	closeHour = 22
)

// Status reports whether the park is open at now, along with the opening
// window of the current park-local day.
func Status(now time.Time) domain.ParkStatus {
	local := now.In(ParkLocation)
	y, m, d := local.Date()
	opens := time.Date(y, m, d, openHour, 0, 0, 0, ParkLocation)
	closes := time.Date(y, m, d, closeHour, 0, 0, 0, ParkLocation)

	if !local.Before(opens) && local.Before(closes) {
		return domain.ParkStatus{
			Status:   domain.ParkOpen,
			OpensAt:  opens,
			ClosesAt: closes,
			Message:  fmt.Sprintf("Open today until %s", closes.Format("3:04 PM")),
		}
	}

	if !local.Before(closes) {
		opens = opens.AddDate(0, 0, 1)
		closes = closes.AddDate(0, 0, 1)
	}
	return domain.ParkStatus{
		Status:   domain.ParkClosed,
		OpensAt:  opens,
		ClosesAt: closes,
		Message:  fmt.Sprintf("Closed. Opens %s at %s", opens.Format("Mon"), opens.Format("3:04 PM")),
	}
}
