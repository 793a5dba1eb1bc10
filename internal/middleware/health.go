package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker caches the outcome of the database ping for cacheDuration.
type HealthChecker struct {
	mu            sync.Mutex
	db            Pinger
	version       string
	startTime     time.Time
	cacheDuration time.Duration
	last          *HealthStatus
}

func NewHealthChecker(db Pinger, version string) *HealthChecker {
	return &HealthChecker{
		db:            db,
		version:       version,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
	}
}

func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := h.check(c.Request.Context())
		code := http.StatusOK
		if status.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

func (h *HealthChecker) check(ctx context.Context) HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.last != nil && time.Since(h.last.LastChecked) < h.cacheDuration {
		cached := *h.last
		cached.Uptime = time.Since(h.startTime).Round(time.Second).String()
		return cached
	}

	status := HealthStatus{
		Status:      "ok",
		Database:    "ok",
		LastChecked: time.Now(),
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Version:     h.version,
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
	}

	h.last = &status
	return status
}
