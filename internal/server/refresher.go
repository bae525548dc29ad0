package server

import (
	"context"

	"github.com/ahump20/blaze-data-gateway/internal/refresher"
)

// Refresher abstracts the background warm loop for testing.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() refresher.Status
}

// noopRefresher satisfies Refresher when background refresh is disabled.
type noopRefresher struct{}

func (noopRefresher) Start(context.Context)      {}
func (noopRefresher) Stop(context.Context) error { return nil }
func (noopRefresher) Status() refresher.Status   { return refresher.Status{} }
