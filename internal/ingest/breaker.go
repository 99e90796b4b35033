package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"github.com/lox/barocast/internal/models"
)

var ErrSourceUnavailable = errors.New("source circuit open")

type fetchResult struct {
	reading *models.Reading
	raw     []byte
}

// BreakerSource stops calling a failing source for a cool-down period so a
// dead upstream is not hammered on every cycle.
type BreakerSource struct {
	Source
	cb *gobreaker.CircuitBreaker
}

// WithCircuitBreaker wraps src. The circuit opens after failures consecutive
// failed fetches and half-opens after timeout.
func WithCircuitBreaker(src Source, failures uint32, timeout time.Duration) *BreakerSource {
	name := src.Name()
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("breaker: %s %s -> %s", name, from, to)
		},
	})
	return &BreakerSource{Source: src, cb: cb}
}

func (b *BreakerSource) Fetch(ctx context.Context) (*models.Reading, []byte, error) {
	var raw []byte
	result, err := b.cb.Execute(func() (interface{}, error) {
		r, body, err := b.Source.Fetch(ctx)
		raw = body
		if err != nil {
			return nil, err
		}
		return fetchResult{reading: r, raw: body}, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if err != nil {
		return nil, raw, err
	}
	fr := result.(fetchResult)
	return fr.reading, fr.raw, nil
}

func (b *BreakerSource) State() string {
	return b.cb.State().String()
}
