package entities

import "strings"

// RiskLevel represents the security risk level of a descriptor or grant set.
type RiskLevel int

const (
	RiskLevelLow    RiskLevel = iota // Specific, narrow permissions
	RiskLevelMedium                  // Network access, writes, sensitive reads
	RiskLevelHigh                    // Broad permissions, arbitrary execution
)

// String returns the human-readable name of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLevelLow:
		return "Low"
	case RiskLevelMedium:
		return "Medium"
	case RiskLevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Dangerous patterns (security domain knowledge)
var (
	// Broad filesystem patterns that grant excessive access
	BroadFilesystemPatterns = []string{
		"*", "**", "/", "/**",
		"/etc/**", "/root/**", "/home/**",
	}

	// Shell interpreters that allow arbitrary command execution, matched on
	// the command's base name
	DangerousShells = []string{
		"bash", "sh", "zsh", "fish", "dash", "ksh", "csh", "tcsh",
	}

	// Script interpreters (matches base + versioned variants)
	DangerousInterpreters = []string{
		"python", "perl", "ruby", "node", "nodejs",
		"php", "lua", "awk", "gawk", "tclsh",
	}

	// Broad host patterns for net and import
	BroadHostPatterns = []string{"*", "**", "0.0.0.0"}

	// Broad environment variable patterns
	BroadEnvPatterns = []string{"*", "**", "AWS_*", "AZURE_*", "GCP_*"}
)

// riskAssessorConfig holds configuration for the RiskAssessor.
type riskAssessorConfig struct {
	customBroadPatterns map[Kind][]string
}

func defaultRiskAssessorConfig() riskAssessorConfig {
	return riskAssessorConfig{
		customBroadPatterns: make(map[Kind][]string),
	}
}

// RiskAssessorOption configures a RiskAssessor instance.
type RiskAssessorOption func(*riskAssessorConfig)

// WithCustomBroadPatterns adds additional patterns considered "broad" for a kind.
func WithCustomBroadPatterns(kind Kind, patterns []string) RiskAssessorOption {
	return func(c *riskAssessorConfig) {
		c.customBroadPatterns[kind] = append(c.customBroadPatterns[kind], patterns...)
	}
}

// RiskAssessor evaluates the security risk of descriptors.
type RiskAssessor struct {
	config riskAssessorConfig
}

// NewRiskAssessor creates a new RiskAssessor with the given options.
func NewRiskAssessor(opts ...RiskAssessorOption) *RiskAssessor {
	cfg := defaultRiskAssessorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &RiskAssessor{config: cfg}
}

// Assess returns the risk of granting d. An unscoped descriptor grants the
// whole kind and is High for everything except sys.
func (r *RiskAssessor) Assess(d Descriptor) RiskLevel {
	level, _ := r.assess(d)
	return level
}

// DescribeRisk explains a Medium or High assessment. It returns "" for Low.
func (r *RiskAssessor) DescribeRisk(d Descriptor) string {
	_, reason := r.assess(d)
	return reason
}

// AssessGrantSet evaluates the overall risk level of a GrantSet.
func (r *RiskAssessor) AssessGrantSet(g *GrantSet) RiskLevel {
	highest := RiskLevelLow
	for _, d := range g.Descriptors() {
		level := r.Assess(d)
		if level == RiskLevelHigh {
			return RiskLevelHigh
		}
		if level > highest {
			highest = level
		}
	}
	return highest
}

// DescribeRisks returns one description per risky pattern in g.
func (r *RiskAssessor) DescribeRisks(g *GrantSet) []string {
	var risks []string
	for _, d := range g.Descriptors() {
		if reason := r.DescribeRisk(d); reason != "" {
			risks = append(risks, reason)
		}
	}
	return risks
}

func (r *RiskAssessor) assess(d Descriptor) (RiskLevel, string) {
	kind, scope := d.Name(), d.Scope()

	if scope == "" {
		if kind == KindSys {
			return RiskLevelMedium, "Reads any system information"
		}
		return RiskLevelHigh, "Grants every " + kind.String() + " scope (High Risk)"
	}

	switch kind {
	case KindRead:
		if r.isBroadPath(kind, scope) {
			return RiskLevelHigh, "Recursive read access to filesystem (High Risk)"
		}
		if strings.HasPrefix(scope, "/etc/") {
			return RiskLevelMedium, "Reads system configuration"
		}
		return RiskLevelLow, ""
	case KindWrite:
		if r.isBroadPath(kind, scope) {
			return RiskLevelHigh, "Recursive write access to filesystem (High Risk)"
		}
		return RiskLevelMedium, "Write access to filesystem"
	case KindFFI:
		return RiskLevelHigh, "Loads native code outside the sandbox (High Risk)"
	case KindNet, KindImport:
		if matchesAny(scope, r.patterns(kind, BroadHostPatterns)) {
			return RiskLevelHigh, "Accesses any network host (High Risk)"
		}
		return RiskLevelMedium, "Network access"
	case KindRun:
		if scope == "*" || scope == "**" || isShell(scope, r.patterns(kind, DangerousShells)) || matchesInterpreter(scope) {
			return RiskLevelHigh, "Executes a shell or interpreter (High Risk)"
		}
		return RiskLevelMedium, "Executes external commands"
	case KindEnv:
		if matchesAny(scope, r.patterns(kind, BroadEnvPatterns)) {
			return RiskLevelHigh, "Accesses a broad set of environment variables (High Risk)"
		}
		return RiskLevelLow, ""
	default:
		return RiskLevelLow, ""
	}
}

func (r *RiskAssessor) isBroadPath(kind Kind, scope string) bool {
	return strings.Contains(scope, "**") || matchesAny(scope, r.patterns(kind, BroadFilesystemPatterns))
}

// patterns returns base + custom broad patterns for kind.
func (r *RiskAssessor) patterns(kind Kind, base []string) []string {
	custom := r.config.customBroadPatterns[kind]
	if len(custom) == 0 {
		return base
	}
	patterns := make([]string, 0, len(base)+len(custom))
	patterns = append(patterns, base...)
	return append(patterns, custom...)
}

// matchesAny checks if value matches any pattern in the list.
func matchesAny(value string, patterns []string) bool {
	for _, p := range patterns {
		if value == p {
			return true
		}
	}
	return false
}

// isShell reports whether cmd, or its base name, is one of shells.
func isShell(cmd string, shells []string) bool {
	return matchesAny(cmd, shells) || matchesAny(baseName(cmd), shells)
}

// matchesInterpreter checks if cmd's base name is a dangerous interpreter,
// bare or with a version suffix such as python3 or python3.12.
func matchesInterpreter(cmd string) bool {
	base := baseName(cmd)
	for _, interp := range DangerousInterpreters {
		if version, ok := strings.CutPrefix(base, interp); ok && isVersion(version) {
			return true
		}
	}
	return false
}

func baseName(cmd string) string {
	if i := strings.LastIndex(cmd, "/"); i >= 0 {
		return cmd[i+1:]
	}
	return cmd
}

// isVersion accepts "" or a run of digits and dots.
func isVersion(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
