package hypo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cwm/hypo/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are matched with errors.Is against the typed errors below.

var (
	// Argument errors.
	ErrNilTarget      = errors.New("registration target cannot be nil")
	ErrInvalidTarget  = errors.New("registration target must be a constructor function or a struct type")
	ErrNoReturnValue  = errors.New("constructor must return a value")
	ErrNotAnObject    = errors.New("instance must be an object, not a basic value")
	ErrParameterNames = errors.New("invalid parameter names")
	ErrNotAnInterface = errors.New("type is not an interface")

	// Registration errors.
	ErrIncompatibleService = errors.New("service is incompatible with implementation")

	// Resolution errors.
	ErrNotRegistered       = errors.New("service not registered")
	ErrCyclicDependency    = graph.ErrCircularDependency
	ErrParameterMismatch   = errors.New("parameter override has the wrong type")
	ErrUnknownRegistration = errors.New("unknown registration kind")
)

var (
	_ error = InvalidArgumentError{}
	_ error = RegistrationError{}
	_ error = NotRegisteredError{}
	_ error = ParameterError{}
	_ error = LifetimeError{}
	_ error = CyclicDependencyError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// InvalidArgumentError indicates a malformed argument to Register,
// RegisterInstance or DeclareInterfaces.
type InvalidArgumentError struct {
	Argument string // "target", "instance", "parameterNames", "interface"
	Value    any
	Cause    error
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s (%T): %v", e.Argument, e.Value, e.Cause)
}

func (e InvalidArgumentError) Unwrap() error {
	return e.Cause
}

// RegistrationError indicates a service type could not be bound to a
// registration because the implementation does not satisfy it. The
// registration is left unchanged.
type RegistrationError struct {
	Registration Registration
	Message      string
}

func (e RegistrationError) Error() string {
	if e.Registration == nil {
		return fmt.Sprintf("registration failed: %s", e.Message)
	}
	return fmt.Sprintf("registration of %s failed: %s", formatType(e.Registration.Implementation()), e.Message)
}

func (e RegistrationError) Is(target error) bool {
	return target == ErrIncompatibleService
}

// NotRegisteredError indicates no registration serves the requested service
// type or carries the requested name.
type NotRegisteredError struct {
	Service   reflect.Type   // nil for lookups by name
	Name      string         // empty for lookups by type
	Available []reflect.Type // Types that ARE registered, for suggestions
}

func (e NotRegisteredError) Error() string {
	var b strings.Builder

	if e.Service == nil {
		b.WriteString(fmt.Sprintf("service not registered: no registration named %q", e.Name))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("service not registered: %s", formatType(e.Service)))

	if similar := findSimilarTypes(e.Service, e.Available); len(similar) > 0 {
		b.WriteString("\n\nDid you mean one of these?\n")
		for _, t := range similar {
			b.WriteString(fmt.Sprintf("  • %s\n", formatType(t)))
		}
	}

	return b.String()
}

func (e NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered
}

// CyclicDependencyError indicates a registration depends on itself, directly
// or through other registrations.
type CyclicDependencyError = graph.CircularDependencyError

// ParameterError indicates a parameter override cannot be passed to the
// constructor parameter it names.
type ParameterError struct {
	Implementation reflect.Type
	Parameter      string
	Value          any
	Expected       reflect.Type
}

func (e ParameterError) Error() string {
	return fmt.Sprintf("parameter %q of %s expects %s, got %T",
		e.Parameter, formatType(e.Implementation), formatType(e.Expected), e.Value)
}

func (e ParameterError) Is(target error) bool {
	return target == ErrParameterMismatch
}

// LifetimeError indicates an invalid lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// IsNotRegistered reports whether err is or wraps a NotRegisteredError.
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}

// IsRegistrationError reports whether err is or wraps a RegistrationError.
func IsRegistrationError(err error) bool {
	var regErr RegistrationError
	return errors.As(err, &regErr)
}

// IsCyclicDependency reports whether err is or wraps a CyclicDependencyError.
func IsCyclicDependency(err error) bool {
	return errors.Is(err, ErrCyclicDependency)
}

// IsInvalidArgument reports whether err is or wraps an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var argErr InvalidArgumentError
	return errors.As(err, &argErr)
}

// findSimilarTypes finds types with similar names using a simple substring match
func findSimilarTypes(target reflect.Type, available []reflect.Type) []reflect.Type {
	if target == nil || len(available) == 0 {
		return nil
	}

	targetName := target.String()
	targetShortName := shortName(target)

	var similar []reflect.Type
	for _, t := range available {
		if t == nil || t == target {
			continue
		}

		typeName := t.String()
		typeShortName := shortName(t)

		// Same short name in another package, or one name contains the other
		if targetShortName == typeShortName ||
			strings.Contains(strings.ToLower(typeName), strings.ToLower(targetShortName)) ||
			strings.Contains(strings.ToLower(targetName), strings.ToLower(typeShortName)) {
			similar = append(similar, t)
		}

		if len(similar) >= 5 {
			break
		}
	}

	return similar
}

func shortName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		// Format pointers as *Type instead of *package.Type
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
