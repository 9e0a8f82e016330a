// Package permtest provides a scripted permission host for tests.
package permtest

import (
	"context"
	"sync"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

var _ ports.PermissionHost = (*Host)(nil)

// Host answers requests from a fixed script. Descriptors are looked up by
// their rendered flag first, then by kind, then fall back to the default
// state. Unknown kinds are rejected with *entities.InvalidNameError, as a
// real host would.
type Host struct {
	mu          sync.Mutex
	byFlag      map[string]entities.PermissionState
	byKind      map[entities.Kind]entities.PermissionState
	errs        map[entities.Kind]error
	fallback    entities.PermissionState
	requests    []entities.Descriptor
	inFlight    int
	maxInFlight int
}

// Option configures a Host.
type Option func(*Host)

// WithDefault sets the state for descriptors with no scripted answer.
// The default is granted.
func WithDefault(state entities.PermissionState) Option {
	return func(h *Host) {
		h.fallback = state
	}
}

// WithState scripts the answer for one exact descriptor.
func WithState(d entities.Descriptor, state entities.PermissionState) Option {
	return func(h *Host) {
		h.byFlag[flags.Render(d)] = state
	}
}

// WithKindState scripts the answer for every descriptor of kind.
func WithKindState(kind entities.Kind, state entities.PermissionState) Option {
	return func(h *Host) {
		h.byKind[kind] = state
	}
}

// WithError makes every request for kind fail with err.
func WithError(kind entities.Kind, err error) Option {
	return func(h *Host) {
		h.errs[kind] = err
	}
}

// NewHost creates a scripted host.
func NewHost(opts ...Option) *Host {
	h := &Host{
		byFlag:   make(map[string]entities.PermissionState),
		byKind:   make(map[entities.Kind]entities.PermissionState),
		errs:     make(map[entities.Kind]error),
		fallback: entities.StateGranted,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Query returns the scripted state without recording a request.
func (h *Host) Query(_ context.Context, d entities.Descriptor) (entities.PermissionStatus, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.answer(d)
}

// Request records d and returns the scripted state.
func (h *Host) Request(ctx context.Context, d entities.Descriptor) (entities.PermissionStatus, error) {
	h.mu.Lock()
	h.requests = append(h.requests, d)
	h.inFlight++
	if h.inFlight > h.maxInFlight {
		h.maxInFlight = h.inFlight
	}
	status, err := h.answer(d)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inFlight--
		h.mu.Unlock()
	}()

	if err == nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return entities.PermissionStatus{}, ctxErr
		}
	}
	return status, err
}

func (h *Host) answer(d entities.Descriptor) (entities.PermissionStatus, error) {
	if err := d.Name().Validate(); err != nil {
		return entities.PermissionStatus{}, err
	}
	if err, ok := h.errs[d.Name()]; ok {
		return entities.PermissionStatus{}, err
	}
	if state, ok := h.byFlag[flags.Render(d)]; ok {
		return entities.Status(state), nil
	}
	if state, ok := h.byKind[d.Name()]; ok {
		return entities.Status(state), nil
	}
	return entities.Status(h.fallback), nil
}

// Requests returns every descriptor passed to Request, in call order.
func (h *Host) Requests() []entities.Descriptor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]entities.Descriptor(nil), h.requests...)
}

// MaxInFlight reports the largest number of overlapping Request calls seen.
func (h *Host) MaxInFlight() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxInFlight
}

// Descriptor is a descriptor with an arbitrary kind, for exercising host
// validation of names that the typed constructors cannot produce.
type Descriptor struct {
	Kind  string
	Value string
}

func (d Descriptor) Name() entities.Kind { return entities.Kind(d.Kind) }
func (d Descriptor) Scope() string       { return d.Value }
