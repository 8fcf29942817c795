package mocks

import (
	"maps"
	"staysync/infras/otel"
	"sync"
)

// Scope records what the code under test traced. It is safe for concurrent use.
type Scope struct {
	mu         sync.Mutex
	Attributes map[string]any
	Errors     []error
	Events     []string
	Ended      bool
}

func NewScope() otel.Scope {
	return &Scope{Attributes: map[string]any{}}
}

func (s *Scope) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Ended = true
}

func (s *Scope) TraceError(err error) {
	if err == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Errors = append(s.Errors, err)
}

func (s *Scope) TraceIfError(err error) {
	s.TraceError(err)
}

func (s *Scope) AddEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Events = append(s.Events, name)
}

func (s *Scope) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attributes[key] = value
}

func (s *Scope) SetAttributes(attributes map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.Attributes, attributes)
}
