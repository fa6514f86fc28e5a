package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Pinger is implemented by the document store backends.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Redis     *bool     `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy is true when every checked dependency answered.
func (h HealthStatus) Healthy() bool {
	return h.Store && (h.Redis == nil || *h.Redis)
}

// HealthMonitor keeps the latest health snapshot of the store and, when the
// in-process scheduler is enabled, its Redis broker.
type HealthMonitor struct {
	store  Pinger
	redis  *redis.Client
	logger *zap.Logger

	mu      sync.RWMutex
	current HealthStatus
}

// NewHealthMonitor creates a monitor; redisClient may be nil.
func NewHealthMonitor(store Pinger, redisClient *redis.Client, logger *zap.Logger) *HealthMonitor {
	return &HealthMonitor{store: store, redis: redisClient, logger: logger}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{CheckedAt: time.Now().UTC()}

	if err := m.store.Ping(ctx); err != nil {
		m.logger.Warn("Store health check failed", zap.Error(err))
	} else {
		status.Store = true
	}

	if m.redis != nil {
		ok := true
		if err := m.redis.Ping(ctx).Err(); err != nil {
			m.logger.Warn("Redis connection lost", zap.Error(err))
			ok = false
		}
		status.Redis = &ok
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	go func() {
		m.Check(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
