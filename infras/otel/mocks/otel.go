package mocks

import (
	"context"
	"staysync/infras/otel"
	"sync"
)

// Otel hands out recording scopes and keeps them by span name.
type Otel struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

func NewOtel() *Otel {
	return &Otel{scopes: map[string]*Scope{}}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &Scope{Attributes: map[string]any{}}

	o.mu.Lock()
	o.scopes[spanName] = scope
	o.mu.Unlock()

	return ctx, scope
}

// Scope returns the last scope opened under spanName, or nil.
func (o *Otel) Scope(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[spanName]
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}
