// Package host provides an in-process permission host backed by a grant
// table, a policy and an optional prompter.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/flags"
	"github.com/reglet-dev/reglet-permissions/domain/policy"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

var _ ports.PermissionHost = (*PolicyHost)(nil)

// PromptMode controls when the host asks the operator.
type PromptMode string

const (
	// PromptAuto prompts only when the prompter reports an interactive session.
	PromptAuto PromptMode = "auto"
	// PromptAlways prompts regardless of terminal detection.
	PromptAlways PromptMode = "always"
	// PromptNever answers every undecided request with denied.
	PromptNever PromptMode = "never"
)

// hostConfig holds configuration for the PolicyHost.
type hostConfig struct {
	grants   *entities.GrantSet
	policy   ports.Policy
	prompter ports.Prompter
	mode     PromptMode
	logger   *slog.Logger
}

func defaultHostConfig() hostConfig {
	return hostConfig{
		grants: &entities.GrantSet{},
		mode:   PromptAuto,
	}
}

// Option configures a PolicyHost.
type Option func(*hostConfig)

// WithGrants sets the initial grant table. The host keeps its own copy.
func WithGrants(grants *entities.GrantSet) Option {
	return func(c *hostConfig) {
		c.grants = grants.Clone()
	}
}

// WithPolicy sets the policy used to match descriptors against grants.
func WithPolicy(p ports.Policy) Option {
	return func(c *hostConfig) {
		c.policy = p
	}
}

// WithPrompter sets the prompter for undecided requests.
func WithPrompter(p ports.Prompter) Option {
	return func(c *hostConfig) {
		c.prompter = p
	}
}

// WithPromptMode sets when the prompter is used.
func WithPromptMode(mode PromptMode) Option {
	return func(c *hostConfig) {
		c.mode = mode
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *hostConfig) {
		c.logger = logger
	}
}

// PolicyHost answers permission requests from an in-memory grant table.
// Prompt answers are remembered for the life of the value and never written
// anywhere.
type PolicyHost struct {
	config hostConfig

	mu       sync.Mutex
	grants   *entities.GrantSet                  // guarded by mu
	answered map[string]entities.PermissionState // keyed by rendered flag; guarded by mu

	promptMu sync.Mutex // one prompt on screen at a time
}

// New creates a PolicyHost.
func New(opts ...Option) *PolicyHost {
	cfg := defaultHostConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.grants == nil {
		cfg.grants = &entities.GrantSet{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.policy == nil {
		cfg.policy = policy.NewPolicy(policy.WithDenialHandler(&policy.NopDenialHandler{}))
	}
	return &PolicyHost{
		config:   cfg,
		grants:   cfg.grants,
		answered: make(map[string]entities.PermissionState),
	}
}

// Query reports the state of d without prompting.
func (h *PolicyHost) Query(ctx context.Context, d entities.Descriptor) (entities.PermissionStatus, error) {
	if err := d.Name().Validate(); err != nil {
		return entities.PermissionStatus{}, err
	}
	if err := ctx.Err(); err != nil {
		return entities.PermissionStatus{}, err
	}

	state := h.current(d)
	h.config.logger.Debug("permission query",
		"kind", d.Name().String(), "scope", d.Scope(), "state", state.String())
	return entities.Status(state), nil
}

// Request reports the state of d, prompting when it is undecided.
func (h *PolicyHost) Request(ctx context.Context, d entities.Descriptor) (entities.PermissionStatus, error) {
	if err := d.Name().Validate(); err != nil {
		return entities.PermissionStatus{}, err
	}
	if err := ctx.Err(); err != nil {
		return entities.PermissionStatus{}, err
	}

	state := h.current(d)
	if state == entities.StatePrompt {
		var err error
		state, err = h.prompt(ctx, d)
		if err != nil {
			return entities.PermissionStatus{}, err
		}
	}

	h.config.logger.Debug("permission request",
		"kind", d.Name().String(), "scope", d.Scope(), "state", state.String())
	return entities.Status(state), nil
}

// Grants returns a copy of the current grant table, including prompt grants.
func (h *PolicyHost) Grants() *entities.GrantSet {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grants.Clone()
}

func (h *PolicyHost) current(d entities.Descriptor) entities.PermissionState {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.config.policy.Check(d, h.grants) {
		return entities.StateGranted
	}
	if state, ok := h.answered[flags.Render(d)]; ok {
		return state
	}
	if !h.canPrompt() {
		return entities.StateDenied
	}
	return entities.StatePrompt
}

func (h *PolicyHost) canPrompt() bool {
	if h.config.prompter == nil {
		return false
	}
	switch h.config.mode {
	case PromptNever:
		return false
	case PromptAlways:
		return true
	default:
		return h.config.prompter.IsInteractive()
	}
}

func (h *PolicyHost) prompt(ctx context.Context, d entities.Descriptor) (entities.PermissionState, error) {
	h.promptMu.Lock()
	defer h.promptMu.Unlock()

	// Another caller may have answered while we waited for the prompt.
	if state := h.current(d); state != entities.StatePrompt {
		return state, nil
	}

	flag := flags.Render(d)
	h.config.logger.Info("prompting for permission", "flag", flag)
	granted, err := h.config.prompter.PromptForDescriptor(ctx, d)
	if err != nil {
		return "", fmt.Errorf("failed to prompt for %s: %w", flag, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if granted {
		// Compiled patterns are cached per grant set, so swap rather than mutate.
		next := h.grants.Clone()
		next.Allow(d)
		h.config.policy.Forget(h.grants)
		h.grants = next
		h.answered[flag] = entities.StateGranted
		return entities.StateGranted, nil
	}
	h.answered[flag] = entities.StateDenied
	return entities.StateDenied, nil
}
