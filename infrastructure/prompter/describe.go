package prompter

import (
	"fmt"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
)

var assessor = entities.NewRiskAssessor()

// Risk returns a one-line risk note for d, or "" when the risk is low.
func Risk(d entities.Descriptor) string {
	level, reason := assessor.Assess(d), assessor.DescribeRisk(d)
	if level == entities.RiskLevelLow {
		return ""
	}
	return fmt.Sprintf("%s: %s", level, reason)
}

// Describe returns a human-readable description of what d allows.
func Describe(d entities.Descriptor) string {
	scope := d.Scope()
	switch d.Name() {
	case entities.KindRead:
		if scope == "" {
			return "Read any file"
		}
		return fmt.Sprintf("Read files: %s", scope)
	case entities.KindWrite:
		if scope == "" {
			return "Write any file"
		}
		return fmt.Sprintf("Write files: %s", scope)
	case entities.KindFFI:
		if scope == "" {
			return "Load any native library"
		}
		return fmt.Sprintf("Load native library: %s", scope)
	case entities.KindNet:
		if scope == "" {
			return "Network access to any host"
		}
		return fmt.Sprintf("Network access to: %s", scope)
	case entities.KindImport:
		if scope == "" {
			return "Import modules from any host"
		}
		return fmt.Sprintf("Import modules from: %s", scope)
	case entities.KindRun:
		if scope == "" {
			return "Run any subprocess"
		}
		return fmt.Sprintf("Run subprocess: %s", scope)
	case entities.KindEnv:
		if scope == "" {
			return "Access all environment variables"
		}
		return fmt.Sprintf("Access environment variable: %s", scope)
	case entities.KindSys:
		if scope == "" {
			return "Access all system information"
		}
		return fmt.Sprintf("Access system information: %s", scope)
	default:
		return fmt.Sprintf("%s: %s", d.Name(), scope)
	}
}
