package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out calls to the model API.
type Pacer interface {
	Wait(ctx context.Context) error
}

type ratePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer allows one call per interval with the given burst. A
// non-positive interval disables pacing.
func NewRatePacer(interval time.Duration, burst int) Pacer {
	if interval <= 0 {
		return NoPacer()
	}
	if burst <= 0 {
		burst = 1
	}
	return &ratePacer{limiter: rate.NewLimiter(rate.Every(interval), burst)}
}

func (p *ratePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noPacer struct{}

func NoPacer() Pacer {
	return noPacer{}
}

func (noPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
