package handlers

import (
	"log"
	"net/http"
	"time"

	"biobank-backend/internal/monitoring"
	"biobank-backend/internal/services"

	"github.com/gorilla/websocket"
)

// liveInterval is how often the live dashboard socket pushes a fresh snapshot.
const liveInterval = 5 * time.Second

type DashboardHandler struct {
	Samples *services.SampleService
	Zones   *services.ZoneService

	upgrader websocket.Upgrader
}

func NewDashboardHandler(samples *services.SampleService, zones *services.ZoneService) *DashboardHandler {
	return &DashboardHandler{
		Samples: samples,
		Zones:   zones,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type dashboardSnapshot struct {
	StateCounts map[string]int         `json:"state_counts"`
	Zones       interface{}            `json:"zones"`
	System      monitoring.SystemStats `json:"system"`
	GeneratedAt time.Time              `json:"generated_at"`
}

func (h *DashboardHandler) snapshot(r *http.Request) (*dashboardSnapshot, error) {
	counts, err := h.Samples.StateCounts(r.Context())
	if err != nil {
		return nil, err
	}
	zones, err := h.Zones.CapacityOverview(r.Context())
	if err != nil {
		return nil, err
	}
	return &dashboardSnapshot{
		StateCounts: counts,
		Zones:       zones,
		System:      monitoring.Collect(),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Live upgrades to a websocket and pushes a dashboard snapshot every few
// seconds until the client disconnects.
func (h *DashboardHandler) Live(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Dashboard] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// drain reads so close frames are noticed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(liveInterval)
	defer ticker.Stop()

	for {
		snap, err := h.snapshot(r)
		if err != nil {
			log.Printf("[Dashboard] snapshot failed: %v", err)
			return
		}
		if err := conn.WriteJSON(snap); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
