package usecase

import (
	"context"

	"portfolio-contact-api/internal/domain"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthProbe reports whether an optional dependency is reachable.
type HealthProbe func(ctx context.Context) error

type healthUsecase struct {
	relay domain.EmailRelay
	redis HealthProbe
}

// NewHealthUsecase builds the health report. redis may be nil when no store is configured.
func NewHealthUsecase(relay domain.EmailRelay, redis HealthProbe) HealthUsecase {
	return &healthUsecase{relay: relay, redis: redis}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"relay":  "configured",
		"redis":  "disabled",
	}

	if u.relay == nil || !u.relay.IsConfigured() {
		status["relay"] = "not_configured"
		status["status"] = "degraded"
	}

	if u.redis != nil {
		if err := u.redis(ctx); err != nil {
			// rate limiting falls back to memory, so this does not degrade the service
			status["redis"] = "unavailable"
		} else {
			status["redis"] = "ok"
		}
	}

	return status
}
