// Package mode resolves the active rewrite mode from a snapshot of the
// ambient build configuration.
//
// Exactly one of two named boolean flags must be set: "suffixed" selects the
// suffixed (asynchronous-style) API variant and "blocking" selects the
// unsuffixed (blocking-style) variant. Any other combination is a
// configuration error, never silently defaulted.
package mode

import "fmt"

// Mode selects which API variant call sites compile against.
type Mode int

const (
	// Invalid is the zero value; it is never returned by a successful Resolve.
	Invalid Mode = iota

	// Suffixed appends the configured suffix to method identifiers under
	// await markers.
	Suffixed

	// Unsuffixed leaves method identifiers verbatim. Paired externally with
	// removal of await markers for the blocking call convention.
	Unsuffixed
)

// String returns the flag name corresponding to the mode.
func (m Mode) String() string {
	switch m {
	case Suffixed:
		return FlagSuffixed
	case Unsuffixed:
		return FlagUnsuffixed
	default:
		return "invalid"
	}
}

// IsValid returns true if the mode is one of the two resolvable values.
func (m Mode) IsValid() bool {
	return m == Suffixed || m == Unsuffixed
}

// Canonical flag names in the ambient build configuration.
const (
	FlagSuffixed   = "suffixed"
	FlagUnsuffixed = "blocking"
)

// Flags is a snapshot of the ambient build configuration: a set of named
// boolean flags. Resolve reads the snapshot once; the resolved Mode is then
// threaded explicitly through the pipeline.
type Flags map[string]bool

// ConfigErrorKind categorizes invalid build configurations.
type ConfigErrorKind int

const (
	// NoModeSelected indicates that neither mode flag is set.
	NoModeSelected ConfigErrorKind = iota

	// ConflictingModes indicates that both mode flags are set.
	ConflictingModes
)

// ConfigError indicates an invalid build configuration. It is fatal and is
// surfaced as a compile-time diagnostic.
type ConfigError struct {
	Kind ConfigErrorKind
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case ConflictingModes:
		return fmt.Sprintf("config error: flags %q and %q are mutually exclusive",
			FlagSuffixed, FlagUnsuffixed)
	default:
		return fmt.Sprintf("config error: one of flags %q or %q must be set",
			FlagSuffixed, FlagUnsuffixed)
	}
}

// Is supports errors.Is against the exported sentinel values.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel values for use with errors.Is.
var (
	ErrNoModeSelected   = &ConfigError{Kind: NoModeSelected}
	ErrConflictingModes = &ConfigError{Kind: ConflictingModes}
)

// Resolve determines the active mode from the given configuration snapshot.
// It is a pure function of the snapshot and fails fast on invalid
// configurations: both flags set or neither flag set.
func Resolve(flags Flags) (Mode, error) {
	suffixed := flags[FlagSuffixed]
	unsuffixed := flags[FlagUnsuffixed]
	switch {
	case suffixed && unsuffixed:
		return Invalid, ErrConflictingModes
	case suffixed:
		return Suffixed, nil
	case unsuffixed:
		return Unsuffixed, nil
	default:
		return Invalid, ErrNoModeSelected
	}
}
