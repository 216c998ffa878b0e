package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/infra/http/middleware"
	"github.com/leadloop/crm-backend/internal/usecase"
)

// trackingPixel is a 1x1 transparent GIF.
var trackingPixel = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// TrackingHandler serves the unauthenticated inbound-activity endpoints
// (email click, open pixel). These must never 500 to the browser: business
// misses come back as a structured body, and the pixel always renders.
type TrackingHandler struct {
	Engine      *usecase.LifecycleEngine
	rateLimiter *RateLimiter
}

func NewTrackingHandler(engine *usecase.LifecycleEngine) *TrackingHandler {
	return &TrackingHandler{
		Engine:      engine,
		rateLimiter: NewRateLimiter(30, time.Minute), // 30 req/min per IP
	}
}

func (h *TrackingHandler) Activity(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error": "too many requests, please try again later",
		})
		return
	}

	result, err := h.Engine.ProcessLeadActivity(r.Context(), usecase.LeadActivityInput{
		ContactID: chi.URLParam(r, "contactID"),
		Token:     r.URL.Query().Get("token"),
	})
	if err != nil {
		// Infrastructure failure; still answer 200 with a soft result so the
		// landing page script never breaks.
		writeJSON(w, http.StatusOK, usecase.LeadActivityResult{Converted: false, Reason: "temporarily unavailable"})
		return
	}

	if result.Converted {
		middleware.RecordTransition(string(entity.StatusLead), string(entity.StatusMQL), "system")
	}
	writeJSON(w, http.StatusOK, result)
}

// Pixel handles email-open tracking. Same engine path as Activity, but the
// response is always the GIF regardless of outcome.
func (h *TrackingHandler) Pixel(w http.ResponseWriter, r *http.Request) {
	if h.rateLimiter.Allow(getClientIP(r)) {
		result, err := h.Engine.ProcessLeadActivity(r.Context(), usecase.LeadActivityInput{
			ContactID: chi.URLParam(r, "contactID"),
			Token:     chi.URLParam(r, "token"),
		})
		if err == nil && result.Converted {
			middleware.RecordTransition(string(entity.StatusLead), string(entity.StatusMQL), "system")
		}
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(trackingPixel)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
