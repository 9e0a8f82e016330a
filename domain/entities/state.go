package entities

// PermissionState is the host's answer for one descriptor.
type PermissionState string

const (
	// StateGranted means the capability is permitted.
	StateGranted PermissionState = "granted"
	// StateDenied means the capability is refused.
	StateDenied PermissionState = "denied"
	// StatePrompt means no decision has been made yet and the host would
	// have to ask. Callers treat it as not granted.
	StatePrompt PermissionState = "prompt"
)

// IsGranted reports whether the state is exactly granted.
func (s PermissionState) IsGranted() bool {
	return s == StateGranted
}

func (s PermissionState) String() string {
	return string(s)
}

// PermissionStatus is what a host returns from a query or request.
type PermissionStatus struct {
	State PermissionState `json:"state" yaml:"state"`
}

// Status wraps a state in a PermissionStatus.
func Status(state PermissionState) PermissionStatus {
	return PermissionStatus{State: state}
}
