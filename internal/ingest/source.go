package ingest

import (
	"context"

	"github.com/lox/barocast/internal/models"
)

// Source provides the current reading for one station. Raw is the response
// body as received, for auditing, and may be set even when err is not nil.
type Source interface {
	Name() string
	Endpoint() string
	StationID() string
	Fetch(ctx context.Context) (reading *models.Reading, raw []byte, err error)
}
