package server

import (
	"context"

	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
)

// Poller defines the poller behavior needed by the server and admin endpoint.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	Refresh(ctx context.Context) (poller.Cycle, error)
}
