package app

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/headpose_relay/internal/orientation"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// PoseUpdate is what the websocket stream sends for every pose. Delta is
// the change from the previous pose, zero for the first one.
type PoseUpdate struct {
	Pose  orientation.Pose `json:"pose"`
	Delta orientation.Pose `json:"delta"`
}

// poseHub keeps the latest pose for the HTTP API and fans updates out to
// websocket clients. Slow clients miss updates instead of stalling the
// receive loop.
type poseHub struct {
	mu       sync.RWMutex
	lastPose orientation.Pose
	havePose bool
	clients  map[chan PoseUpdate]struct{}
}

func newPoseHub() *poseHub {
	return &poseHub{clients: make(map[chan PoseUpdate]struct{})}
}

func (h *poseHub) publish(p orientation.Pose) {
	h.mu.Lock()
	defer h.mu.Unlock()

	u := PoseUpdate{Pose: p}
	if h.havePose {
		u.Delta = p.Sub(h.lastPose)
	}
	h.lastPose = p
	h.havePose = true

	for c := range h.clients {
		select {
		case c <- u:
		default:
		}
	}
}

func (h *poseHub) subscribe() chan PoseUpdate {
	c := make(chan PoseUpdate, 16)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *poseHub) unsubscribe(c chan PoseUpdate) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *poseHub) latest() (orientation.Pose, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastPose, h.havePose
}

func newWebMux(h *poseHub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orientation", h.handleOrientation)
	mux.HandleFunc("/ws", h.handleWS)
	return mux
}

// handleOrientation serves the latest pose as JSON.
func (h *poseHub) handleOrientation(w http.ResponseWriter, r *http.Request) {
	pose, ok := h.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(pose); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

// handleWS streams PoseUpdates until the client goes away.
func (h *poseHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	updates := h.subscribe()
	defer h.unsubscribe(updates)

	// The client never sends anything we use; reading only notices close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("web: websocket error: %v", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case u := <-updates:
			conn.SetWriteDeadline(time.Now().Add(time.Second))
			if err := conn.WriteJSON(u); err != nil {
				log.Printf("web: websocket write error: %v", err)
				return
			}
		}
	}
}
