package gateway

import (
	"context"

	"go.uber.org/zap"

	"plan2read/internal/api"
	"plan2read/internal/plan"
)

// Transport carries one envelope to the backend and returns its answer.
// A non-nil error means the call did not produce an envelope.
type Transport interface {
	Call(ctx context.Context, req api.Request) (api.Response, error)
}

// EmbeddedTransport calls a dispatcher linked into the same process.
type EmbeddedTransport struct {
	Dispatcher *api.Dispatcher
}

func (t *EmbeddedTransport) Call(ctx context.Context, req api.Request) (api.Response, error) {
	if err := ctx.Err(); err != nil {
		return api.Response{}, err
	}
	return t.Dispatcher.Handle(ctx, req), nil
}

// MemoryTransport is the self-contained simulation of the backend used for
// local development and tests.
type MemoryTransport struct {
	EmbeddedTransport
	Store *plan.MemoryStore
	log   *zap.Logger
}

func NewMemoryTransport(log *zap.Logger) *MemoryTransport {
	if log == nil {
		log = zap.NewNop()
	}
	store := plan.NewMemoryStore()
	return &MemoryTransport{
		EmbeddedTransport: EmbeddedTransport{
			Dispatcher: &api.Dispatcher{Store: store, Log: log},
		},
		Store: store,
		log:   log,
	}
}

func (t *MemoryTransport) Call(ctx context.Context, req api.Request) (api.Response, error) {
	t.log.Debug("memory backend call", zap.String("action", req.Action))
	return t.EmbeddedTransport.Call(ctx, req)
}
