package hypo

import (
	"fmt"
	"reflect"
)

// TypeOf returns the reflect.Type for T, including interface types:
//
//	hypo.TypeOf[Store]() // the interface, not a pointer to it
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resolve is a generic helper function that resolves a service as type T.
func Resolve[T any](c *Container) (T, error) {
	instance, err := c.Resolve(TypeOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}

	return assert[T](instance)
}

// ResolveByName resolves the registration named name and asserts it to T.
func ResolveByName[T any](c *Container, name string) (T, error) {
	instance, err := c.ResolveByName(name)
	if err != nil {
		var zero T
		return zero, err
	}

	return assert[T](instance)
}

// ResolveAll is a generic helper function that resolves every registration
// serving T, newest first.
func ResolveAll[T any](c *Container) ([]T, error) {
	instances, err := c.ResolveAll(TypeOf[T]())
	if err != nil {
		return nil, err
	}

	results := make([]T, 0, len(instances))
	for i, instance := range instances {
		result, err := assert[T](instance)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// MustResolve resolves a service and panics on error.
func MustResolve[T any](c *Container) T {
	result, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", formatType(TypeOf[T]()), err))
	}
	return result
}

// IsRegistered reports whether any registration serves T.
func IsRegistered[T any](c *Container) bool {
	return c.Contains(TypeOf[T]())
}

// RegisterType registers the struct type T, built by setting its exported
// fields. T is a struct or a pointer to a struct.
func RegisterType[T any](c *Container) (ResolutionStep, error) {
	return c.Register(TypeOf[T]())
}

// assert converts a resolved instance to T. A nil instance yields the zero T.
func assert[T any](instance any) (T, error) {
	var zero T
	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("type assertion failed: expected %s, got %T", formatType(TypeOf[T]()), instance)
	}

	return result, nil
}
