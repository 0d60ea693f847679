package testutil

import (
	"reflect"
	"testing"

	"github.com/cwm/hypo"
)

// Fixture describes one registration used across tests.
type Fixture struct {
	Name     string
	Target   any
	Services []reflect.Type
	Lifetime hypo.Lifetime
}

// CommonFixtures provides common registrations for testing
var CommonFixtures = struct {
	Dummy      Fixture
	NeedsDummy Fixture
	Logger     Fixture
	Database   Fixture
	Repository Fixture
	Service    Fixture
}{
	Dummy: Fixture{
		Name:     "dummy",
		Target:   NewDummy,
		Services: []reflect.Type{hypo.TypeOf[IDummy]()},
		Lifetime: hypo.Transient,
	},
	NeedsDummy: Fixture{
		Name:     "needsDummy",
		Target:   NewNeedsDummy,
		Lifetime: hypo.Transient,
	},
	Logger: Fixture{
		Name:     "logger",
		Target:   NewLogger,
		Lifetime: hypo.Singleton,
	},
	Database: Fixture{
		Name:     "database",
		Target:   NewDatabase,
		Services: []reflect.Type{hypo.TypeOf[Database]()},
		Lifetime: hypo.Singleton,
	},
	Repository: Fixture{
		Name:     "repository",
		Target:   NewRepository,
		Lifetime: hypo.Transient,
	},
	Service: Fixture{
		Name:     "service",
		Target:   NewService,
		Lifetime: hypo.Transient,
	},
}

// Register adds the fixture to the builder.
func (f Fixture) Register(b *ContainerBuilder) *ContainerBuilder {
	b.t.Helper()
	if f.Lifetime == hypo.Singleton {
		return b.WithSingleton(f.Target, f.Services...)
	}
	return b.WithTransient(f.Target, f.Services...)
}

// NewStackContainer builds a container holding the logger, database,
// repository and service fixtures.
func NewStackContainer(t *testing.T, opts ...hypo.Option) *hypo.Container {
	t.Helper()
	b := NewContainerBuilder(t, opts...)
	for _, f := range []Fixture{
		CommonFixtures.Logger,
		CommonFixtures.Database,
		CommonFixtures.Repository,
		CommonFixtures.Service,
	} {
		f.Register(b)
	}
	return b.Build()
}
