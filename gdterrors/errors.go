// File: gdterrors/errors.go
// Author: momentics <momentics@gmail.com>
//
// Cross-platform error taxonomy shared by detect, thread, and the gdtcpus
// facade. A single sum type of error kinds carrying platform-native codes
// and operation names, so callers branch on Kind rather than on platform-
// specific error strings.

package gdterrors

import "fmt"

// Kind enumerates the error taxonomy of section 7 of the specification.
type Kind int

const (
	// KindUnknown is the zero value and never returned by this library.
	KindUnknown Kind = iota
	// KindDetectionFailed means topology detection could not complete.
	KindDetectionFailed
	// KindUnsupportedPlatform means the running OS/arch combination has
	// no detector or thread-control implementation at all.
	KindUnsupportedPlatform
	// KindInvalidInput means the caller supplied an out-of-range core id,
	// an empty mask, or a mask referencing offline processors.
	KindInvalidInput
	// KindPermissionDenied means the OS refused the requested operation
	// for the calling privilege level.
	KindPermissionDenied
	// KindUnsupported means the operation is categorically unavailable on
	// this platform (e.g. thread affinity on ARM macOS), independent of
	// privilege.
	KindUnsupported
	// KindSystemCall means an OS call failed for a reason not covered by
	// the kinds above; Error.NativeCode carries the underlying code.
	KindSystemCall
	// KindParse means a platform-specific topology source could not be
	// parsed; Error.Source names it.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindDetectionFailed:
		return "DetectionFailed"
	case KindUnsupportedPlatform:
		return "UnsupportedPlatform"
	case KindInvalidInput:
		return "InvalidInput"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindUnsupported:
		return "Unsupported"
	case KindSystemCall:
		return "SystemCall"
	case KindParse:
		return "Parse"
	default:
		return "Unknown"
	}
}

// Error is the structured error type returned across package boundaries.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "SetThreadAffinityMask" or
	// "pin_thread_to_core".
	Op string
	// Source names the platform data source for KindParse errors, e.g.
	// "/sys/devices/system/cpu/cpu3/topology/core_id".
	Source string
	// Detail is a human-readable explanation.
	Detail string
	// NativeCode carries the underlying OS error code for KindSystemCall
	// and KindPermissionDenied, when available. Zero means "not applicable".
	NativeCode int
	// Err wraps the underlying error, if any, for errors.Unwrap.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindParse && e.Source != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Source, e.Detail)
	case e.NativeCode != 0:
		return fmt.Sprintf("%s: %s: %s (native code %d)", e.Kind, e.Op, e.Detail, e.NativeCode)
	case e.Op != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Detail)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is supports errors.Is(err, gdterrors.Unsupported) style sentinel
// comparisons by kind: two *Error values match if their Kind matches.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == KindUnknown {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind for operation op.
func New(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Wrap builds an *Error of the given kind, wrapping err.
func Wrap(kind Kind, op string, err error) *Error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: kind, Op: op, Detail: detail, Err: err}
}

// WithNativeCode attaches a native OS error code and returns the receiver
// for chaining.
func (e *Error) WithNativeCode(code int) *Error {
	e.NativeCode = code
	return e
}

// ParseError builds a KindParse error naming the offending source.
func ParseError(source string, err error) *Error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: KindParse, Source: source, Detail: detail, Err: err}
}

// Sentinel kind markers for errors.Is comparisons, e.g.:
//
//	if errors.Is(err, gdterrors.Unsupported) { ... }
var (
	DetectionFailed     = &Error{Kind: KindDetectionFailed}
	UnsupportedPlatform = &Error{Kind: KindUnsupportedPlatform}
	InvalidInput        = &Error{Kind: KindInvalidInput}
	PermissionDenied    = &Error{Kind: KindPermissionDenied}
	Unsupported         = &Error{Kind: KindUnsupported}
	SystemCall          = &Error{Kind: KindSystemCall}
	Parse               = &Error{Kind: KindParse}
)
