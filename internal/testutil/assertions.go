package testutil

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwm/hypo"
)

// AssertResolvable checks if a service can be resolved
func AssertResolvable[T any](t *testing.T, c *hypo.Container) T {
	t.Helper()
	service, err := hypo.Resolve[T](c)
	require.NoError(t, err, "failed to resolve service of type %s", hypo.TypeOf[T]())
	require.NotNil(t, service, "resolved service is nil")
	return service
}

// AssertResolvableByName checks if a named registration can be resolved as T
func AssertResolvableByName[T any](t *testing.T, c *hypo.Container, name string) T {
	t.Helper()
	service, err := hypo.ResolveByName[T](c, name)
	require.NoError(t, err, "failed to resolve %q as %s", name, hypo.TypeOf[T]())
	require.NotNil(t, service, "resolved service is nil")
	return service
}

// AssertNotRegistered checks if resolving T fails with a not registered error
func AssertNotRegistered[T any](t *testing.T, c *hypo.Container) {
	t.Helper()
	_, err := hypo.Resolve[T](c)
	require.Error(t, err)
	assert.True(t, hypo.IsNotRegistered(err), "expected not registered error, got: %v", err)

	var notRegistered hypo.NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
	assert.Equal(t, hypo.TypeOf[T](), notRegistered.Service)
}

// AssertSingleton checks if two resolutions return the same instance
func AssertSingleton[T any](t *testing.T, c *hypo.Container) {
	t.Helper()
	first := AssertResolvable[T](t, c)
	second := AssertResolvable[T](t, c)
	assert.Same(t, any(first), any(second), "expected the same instance")
}

// AssertTransient checks if two resolutions return different instances
func AssertTransient[T any](t *testing.T, c *hypo.Container) {
	t.Helper()
	first := AssertResolvable[T](t, c)
	second := AssertResolvable[T](t, c)
	assert.NotSame(t, any(first), any(second), "expected different instances")
}

// AssertServices checks the registration's service types, in bind order
func AssertServices(t *testing.T, reg hypo.Registration, expected ...reflect.Type) {
	t.Helper()
	assert.Equal(t, expected, reg.Services())
}

// AssertCyclic checks if err is a cyclic dependency error
func AssertCyclic(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, hypo.IsCyclicDependency(err), "expected cyclic dependency error, got: %v", err)
}
