package policy

import (
	"net"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
)

// policyConfig holds configuration for the Policy engine.
type policyConfig struct {
	cwd             string              // Working directory for relative path resolution
	resolveSymlinks bool                // Whether to resolve symlinks (security feature)
	denialHandler   ports.DenialHandler // Handler invoked on policy denials
}

func defaultPolicyConfig() policyConfig {
	return policyConfig{
		cwd:             "",
		resolveSymlinks: true, // Secure default
		denialHandler:   NewLogDenialHandler(nil),
	}
}

// PolicyOption configures the Policy.
type PolicyOption func(*policyConfig)

// WithWorkingDirectory sets the working directory for relative path resolution.
func WithWorkingDirectory(cwd string) PolicyOption {
	return func(c *policyConfig) {
		c.cwd = cwd
	}
}

// WithSymlinkResolution enables/disables symlink resolution.
// Default is true (secure). Disable only for testing.
func WithSymlinkResolution(enabled bool) PolicyOption {
	return func(c *policyConfig) {
		c.resolveSymlinks = enabled
	}
}

// WithDenialHandler sets the denial handler.
func WithDenialHandler(h ports.DenialHandler) PolicyOption {
	return func(c *policyConfig) {
		c.denialHandler = h
	}
}

// Policy implements ports.Policy with stateless enforcement.
type Policy struct {
	config policyConfig
	cache  sync.Map // key: *entities.GrantSet, value: *compiledGrantSet
}

// compiledGrantSet holds the valid patterns per kind and whether the kind is
// granted without scope.
type compiledGrantSet struct {
	patterns map[entities.Kind][]string
	all      map[entities.Kind]bool
}

// NewPolicy creates a new Policy.
func NewPolicy(opts ...PolicyOption) ports.Policy {
	cfg := defaultPolicyConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Policy{config: cfg}
}

func (p *Policy) getCompiled(grants *entities.GrantSet) *compiledGrantSet {
	if grants == nil {
		return nil
	}
	if v, ok := p.cache.Load(grants); ok {
		return v.(*compiledGrantSet)
	}

	c := &compiledGrantSet{
		patterns: make(map[entities.Kind][]string),
		all:      make(map[entities.Kind]bool),
	}
	for _, kind := range entities.Kinds() {
		for _, pattern := range grants.Patterns(kind) {
			if pattern == entities.AllScopes {
				c.all[kind] = true
				continue
			}
			if !entities.IsPathKind(kind) {
				if doublestar.ValidatePattern(pattern) {
					c.patterns[kind] = append(c.patterns[kind], pattern)
				}
				continue
			}
			for _, path := range p.pathPatterns(pattern) {
				if doublestar.ValidatePattern(path) {
					c.patterns[kind] = append(c.patterns[kind], path)
				}
			}
		}
	}

	p.cache.Store(grants, c)
	return c
}

// Check reports whether grants cover d. An unscoped descriptor is covered
// only when the whole kind is granted.
func (p *Policy) Check(d entities.Descriptor, grants *entities.GrantSet) bool {
	c := p.getCompiled(grants)
	if c == nil {
		p.config.denialHandler.OnDenial(d, "no grants")
		return false
	}

	kind := d.Name()
	if c.all[kind] {
		return true
	}

	scope := d.Scope()
	if scope == "" {
		p.config.denialHandler.OnDenial(d, "kind not granted without scope")
		return false
	}

	var allowed bool
	switch kind {
	case entities.KindRead, entities.KindWrite, entities.KindFFI:
		allowed = p.checkPath(scope, c.patterns[kind])
	case entities.KindNet, entities.KindImport:
		allowed = checkHost(scope, c.patterns[kind])
	case entities.KindRun:
		allowed = checkCommand(scope, c.patterns[kind])
	default:
		allowed = matchAny(c.patterns[kind], scope)
	}

	if !allowed {
		p.config.denialHandler.OnDenial(d, kind.String()+" scope not allowed")
	}
	return allowed
}

// Forget drops the compiled form of grants from the cache.
func (p *Policy) Forget(grants *entities.GrantSet) {
	if grants != nil {
		p.cache.Delete(grants)
	}
}

// pathPatterns returns the absolute form of a path pattern and, when symlink
// resolution is on, the form with its literal base directory resolved.
// Requests are resolved before matching, so a grant naming a symlink must be
// compared in resolved form too.
func (p *Policy) pathPatterns(pattern string) []string {
	abs := p.absPath(pattern)
	if abs == "" {
		return nil
	}
	out := []string{abs}
	if !p.config.resolveSymlinks {
		return out
	}

	base, rest := abs, ""
	if strings.ContainsAny(abs, "*?[{") {
		base, rest = doublestar.SplitPattern(abs)
	}
	resolved, err := filepath.EvalSymlinks(base)
	if err != nil || resolved == base {
		return out
	}
	return append(out, filepath.Join(resolved, rest))
}

// absPath cleans a path and resolves it against the working directory.
// Returns "" for a relative path when no working directory is set.
func (p *Policy) absPath(path string) string {
	path = filepath.Clean(path)
	if !filepath.IsAbs(path) {
		if p.config.cwd == "" {
			return ""
		}
		path = filepath.Join(p.config.cwd, path)
	}
	return path
}

func (p *Policy) checkPath(scope string, patterns []string) bool {
	path := p.absPath(scope)
	if path == "" {
		return false // Deny relative paths without cwd
	}

	// Resolve symlinks to prevent traversal attacks
	if p.config.resolveSymlinks {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			path = resolved
		}
	}

	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
		// A plain directory grant covers everything beneath it.
		if path == pattern || strings.HasPrefix(path, strings.TrimSuffix(pattern, "/")+"/") {
			return true
		}
	}
	return false
}

// checkHost matches "host" or "host:port" scopes. A pattern without a port
// allows every port on matching hosts.
func checkHost(scope string, patterns []string) bool {
	hostOnly := scope
	if h, _, err := net.SplitHostPort(scope); err == nil {
		hostOnly = h
	}

	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, scope); matched {
			return true
		}
		if _, _, err := net.SplitHostPort(pattern); err != nil {
			if matched, _ := doublestar.Match(pattern, hostOnly); matched {
				return true
			}
		}
	}
	return false
}

// checkCommand matches a command by its cleaned path, or by base name when
// the pattern carries no directory.
func checkCommand(scope string, patterns []string) bool {
	cmd := filepath.Clean(scope)
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, cmd); matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, _ := doublestar.Match(pattern, filepath.Base(cmd)); matched {
				return true
			}
		}
	}
	return false
}

func matchAny(patterns []string, value string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, value); matched {
			return true
		}
	}
	return false
}
