package entities

// Kind names a capability class. The host accepts exactly the values below.
type Kind string

const (
	KindRead   Kind = "read"
	KindWrite  Kind = "write"
	KindFFI    Kind = "ffi"
	KindNet    Kind = "net"
	KindImport Kind = "import"
	KindRun    Kind = "run"
	KindEnv    Kind = "env"
	KindSys    Kind = "sys"
)

var knownKinds = []Kind{
	KindRead, KindWrite, KindFFI, KindNet, KindImport, KindRun, KindEnv, KindSys,
}

// Kinds returns every known capability kind in canonical order.
func Kinds() []Kind {
	return append([]Kind(nil), knownKinds...)
}

// IsValid reports whether k is one of the known capability kinds.
func (k Kind) IsValid() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the kind as it appears on the command line.
func (k Kind) String() string {
	return string(k)
}

// Descriptor names one capability plus its optional scope.
// An empty Scope means the descriptor covers the whole kind.
//
// Each kind has its own concrete value type carrying only the field that
// scopes it, so a descriptor cannot hold a scope that does not apply to it.
type Descriptor interface {
	Name() Kind
	Scope() string
}

// ReadDescriptor requests filesystem read access, optionally under Path.
type ReadDescriptor struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

func (d ReadDescriptor) Name() Kind    { return KindRead }
func (d ReadDescriptor) Scope() string { return d.Path }

// WriteDescriptor requests filesystem write access, optionally under Path.
type WriteDescriptor struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

func (d WriteDescriptor) Name() Kind    { return KindWrite }
func (d WriteDescriptor) Scope() string { return d.Path }

// FFIDescriptor requests permission to load native libraries, optionally from Path.
type FFIDescriptor struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

func (d FFIDescriptor) Name() Kind    { return KindFFI }
func (d FFIDescriptor) Scope() string { return d.Path }

// NetDescriptor requests network access, optionally to Host ("host" or "host:port").
type NetDescriptor struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
}

func (d NetDescriptor) Name() Kind    { return KindNet }
func (d NetDescriptor) Scope() string { return d.Host }

// ImportDescriptor requests permission to fetch remote modules, optionally from Host.
type ImportDescriptor struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
}

func (d ImportDescriptor) Name() Kind    { return KindImport }
func (d ImportDescriptor) Scope() string { return d.Host }

// RunDescriptor requests permission to spawn subprocesses, optionally only Command.
type RunDescriptor struct {
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
}

func (d RunDescriptor) Name() Kind    { return KindRun }
func (d RunDescriptor) Scope() string { return d.Command }

// EnvDescriptor requests environment access, optionally to one Variable.
type EnvDescriptor struct {
	Variable string `json:"variable,omitempty" yaml:"variable,omitempty"`
}

func (d EnvDescriptor) Name() Kind    { return KindEnv }
func (d EnvDescriptor) Scope() string { return d.Variable }

// SysDescriptor requests OS information access, optionally one Kind of it
// (e.g. "hostname", "osRelease", "loadavg").
type SysDescriptor struct {
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

func (d SysDescriptor) Name() Kind    { return KindSys }
func (d SysDescriptor) Scope() string { return d.Kind }

// Read creates a read descriptor. An empty path means all paths.
func Read(path string) Descriptor { return ReadDescriptor{Path: path} }

// Write creates a write descriptor. An empty path means all paths.
func Write(path string) Descriptor { return WriteDescriptor{Path: path} }

// FFI creates an ffi descriptor. An empty path means all libraries.
func FFI(path string) Descriptor { return FFIDescriptor{Path: path} }

// Net creates a net descriptor. An empty host means all hosts.
func Net(host string) Descriptor { return NetDescriptor{Host: host} }

// Import creates an import descriptor. An empty host means all hosts.
func Import(host string) Descriptor { return ImportDescriptor{Host: host} }

// Run creates a run descriptor. An empty command means any command.
func Run(command string) Descriptor { return RunDescriptor{Command: command} }

// Env creates an env descriptor. An empty variable means all variables.
func Env(variable string) Descriptor { return EnvDescriptor{Variable: variable} }

// Sys creates a sys descriptor. An empty kind means all system information.
func Sys(kind string) Descriptor { return SysDescriptor{Kind: kind} }

// NewDescriptor builds the concrete descriptor for kind with the given scope.
// It returns false when kind is not a known capability kind.
func NewDescriptor(kind Kind, scope string) (Descriptor, bool) {
	switch kind {
	case KindRead:
		return ReadDescriptor{Path: scope}, true
	case KindWrite:
		return WriteDescriptor{Path: scope}, true
	case KindFFI:
		return FFIDescriptor{Path: scope}, true
	case KindNet:
		return NetDescriptor{Host: scope}, true
	case KindImport:
		return ImportDescriptor{Host: scope}, true
	case KindRun:
		return RunDescriptor{Command: scope}, true
	case KindEnv:
		return EnvDescriptor{Variable: scope}, true
	case KindSys:
		return SysDescriptor{Kind: scope}, true
	default:
		return nil, false
	}
}

// Equal reports whether two descriptors name the same kind and scope.
func Equal(a, b Descriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name() == b.Name() && a.Scope() == b.Scope()
}

// IsPathKind reports whether the kind is scoped by a filesystem path.
func IsPathKind(k Kind) bool {
	return k == KindRead || k == KindWrite || k == KindFFI
}

// Validate returns an *InvalidNameError when k is not a known kind.
func (k Kind) Validate() error {
	if !k.IsValid() {
		return &InvalidNameError{Value: string(k)}
	}
	return nil
}
