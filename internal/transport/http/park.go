package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/catalog"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// ParkInfo is the minimal interface needed for the park information endpoints.
type ParkInfo interface {
	Status() domain.ParkStatus
	Zones() []domain.Zone
	Attractions(f catalog.AttractionFilter) []domain.Attraction
	FeaturedAttractions(limit int) []domain.Attraction
	TicketTypes() []domain.TicketType
}

type parkStatusResponse struct {
	Status parkStatusBody `json:"status"`
}

type parkStatusBody struct {
	IsOpen    bool      `json:"isOpen"`
	OpenTime  string    `json:"openTime"`
	CloseTime string    `json:"closeTime"`
	OpensAt   time.Time `json:"opensAt"`
	ClosesAt  time.Time `json:"closesAt"`
	Message   string    `json:"message"`
}

type zoneResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Color           string   `json:"color"`
	AttractionCount int      `json:"attractionCount"`
	DiningCount     int      `json:"diningCount"`
	ShopCount       int      `json:"shopCount"`
	Features        []string `json:"features"`
}

type attractionResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ZoneID      string  `json:"zoneId"`
	ZoneName    string  `json:"zoneName"`
	Type        string  `json:"type"`
	WaitTime    int     `json:"waitTime"`
	HeightReqCM int     `json:"heightRequirement,omitempty"`
	ThrillLevel int     `json:"thrillLevel"`
	Status      string  `json:"status"`
	Rating      float64 `json:"rating"`
}

type ticketTypeResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Color       string   `json:"color"`
	Features    []string `json:"features"`
}

// HandleParkStatus returns an HTTP handler reporting the opening window.
func HandleParkStatus(svc ParkInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := svc.Status()
		writeJSON(w, http.StatusOK, parkStatusResponse{Status: parkStatusBody{
			IsOpen:    st.Status == domain.ParkOpen,
			OpenTime:  st.OpensAt.Format("15:04"),
			CloseTime: st.ClosesAt.Format("15:04"),
			OpensAt:   st.OpensAt,
			ClosesAt:  st.ClosesAt,
			Message:   st.Message,
		}})
	}
}

func HandleZones(svc ParkInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zones := svc.Zones()
		resp := make([]zoneResponse, 0, len(zones))
		for _, z := range zones {
			resp = append(resp, zoneResponse{
				ID:              z.ID,
				Name:            z.Name,
				Description:     z.Description,
				Color:           z.Color,
				AttractionCount: z.Attractions,
				DiningCount:     z.Dining,
				ShopCount:       z.Shops,
				Features:        z.Features,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"zones": resp})
	}
}

// HandleAttractions lists attractions, optionally filtered by ?zone= and ?type=.
func HandleAttractions(svc ParkInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list := svc.Attractions(catalog.AttractionFilter{ZoneID: q.Get("zone"), Type: q.Get("type")})
		writeJSON(w, http.StatusOK, map[string]any{"attractions": toAttractionResponses(list, zoneNames(svc))})
	}
}

// HandleFeaturedAttractions lists the best-rated attractions, honoring ?limit=.
func HandleFeaturedAttractions(svc ParkInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "limit must be a non-negative integer")
				return
			}
			limit = n
		}
		list := svc.FeaturedAttractions(limit)
		writeJSON(w, http.StatusOK, map[string]any{"attractions": toAttractionResponses(list, zoneNames(svc))})
	}
}

func HandleTicketTypes(svc ParkInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types := svc.TicketTypes()
		resp := make([]ticketTypeResponse, 0, len(types))
		for _, t := range types {
			resp = append(resp, ticketTypeResponse{
				ID:          t.ID,
				Name:        t.Name,
				Description: t.Description,
				Price:       t.Price,
				Color:       t.Color,
				Features:    t.Features,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"ticketTypes": resp})
	}
}

func zoneNames(svc ParkInfo) map[string]string {
	names := make(map[string]string)
	for _, z := range svc.Zones() {
		names[z.ID] = z.Name
	}
	return names
}

func toAttractionResponses(list []domain.Attraction, zones map[string]string) []attractionResponse {
	resp := make([]attractionResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, attractionResponse{
			ID:          a.ID,
			Name:        a.Name,
			ZoneID:      a.ZoneID,
			ZoneName:    zones[a.ZoneID],
			Type:        a.Type,
			WaitTime:    a.WaitMinutes,
			HeightReqCM: a.HeightReqCM,
			ThrillLevel: a.ThrillLevel,
			Status:      string(a.Status),
			Rating:      a.Rating,
		})
	}
	return resp
}
