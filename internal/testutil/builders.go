package testutil

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwm/hypo"
)

// ContainerBuilder provides a fluent interface for building test containers
type ContainerBuilder struct {
	t         *testing.T
	container *hypo.Container
}

// NewContainerBuilder creates a new ContainerBuilder
func NewContainerBuilder(t *testing.T, opts ...hypo.Option) *ContainerBuilder {
	return &ContainerBuilder{
		t:         t,
		container: hypo.New(opts...),
	}
}

// WithTransient registers target bound to services
func (b *ContainerBuilder) WithTransient(target any, services ...reflect.Type) *ContainerBuilder {
	b.t.Helper()
	b.register(target, services).AsTransient()
	return b
}

// WithSingleton registers target as a singleton bound to services
func (b *ContainerBuilder) WithSingleton(target any, services ...reflect.Type) *ContainerBuilder {
	b.t.Helper()
	b.register(target, services).AsSingleton()
	return b
}

// WithNamed registers target bound to services under name
func (b *ContainerBuilder) WithNamed(name string, target any, services ...reflect.Type) *ContainerBuilder {
	b.t.Helper()
	b.register(target, services).Named(name)
	return b
}

// WithInstance registers instance bound to services
func (b *ContainerBuilder) WithInstance(instance any, services ...reflect.Type) *ContainerBuilder {
	b.t.Helper()
	step, err := b.container.RegisterInstance(instance)
	require.NoError(b.t, err)
	_, err = step.With(services...)
	require.NoError(b.t, err)
	return b
}

// Build returns the configured container
func (b *ContainerBuilder) Build() *hypo.Container {
	return b.container
}

func (b *ContainerBuilder) register(target any, services []reflect.Type) hypo.ConstructionStep {
	b.t.Helper()
	step, err := b.container.Register(target)
	require.NoError(b.t, err)
	next, err := step.With(services...)
	require.NoError(b.t, err)
	return next
}
