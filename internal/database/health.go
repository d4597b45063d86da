package database

import (
	"context"
	"time"
)

// HealthCheckTimeout bounds a single Check.
const HealthCheckTimeout = 5 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health is the result of probing the database.
type Health struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Environment  string    `json:"environment"`
	ResponseTime string    `json:"response_time"`
	Error        string    `json:"error,omitempty"`
}

func (h Health) Healthy() bool {
	return h.Status == "healthy"
}

// Check pings the database and reports how long the round trip took.
func (db *Database) Check(ctx context.Context, env string) Health {
	return check(ctx, db.Pool, env, time.Now)
}

func check(ctx context.Context, p Pinger, env string, now func() time.Time) Health {
	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	start := now()
	h := Health{Status: "healthy", Timestamp: start.UTC(), Environment: env}

	err := p.Ping(ctx)
	h.ResponseTime = now().Sub(start).String()
	if err != nil {
		h.Status = "unhealthy"
		h.Error = err.Error()
	}
	return h
}
