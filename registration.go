package hypo

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cwm/hypo/internal/reflection"
)

// In marks a struct as a parameter object. A constructor whose only
// parameter is a struct embedding In has one parameter per exported field,
// named after the field or its `hypo:"name"` tag:
//
//	type ReportParams struct {
//	    hypo.In
//
//	    Store  Store
//	    Limit  int    `default:"50"`
//	    Format string `hypo:"format" default:"csv"`
//	    Cache  *Cache `inject:"-"`
//	}
type In = reflection.In

// Parameters maps constructor parameter names to override values. A value is
// either a literal passed to the parameter as-is, or a NamedDependency.
type Parameters map[string]any

// NamedDependency is an override value meaning "resolve the registration
// with this name and pass its instance".
type NamedDependency struct {
	Name string
}

// ByName returns a NamedDependency for name.
func ByName(name string) NamedDependency {
	return NamedDependency{Name: name}
}

// Factory builds an instance in place of a registration's constructor.
// It receives the registration's implementation type.
type Factory func(implementation reflect.Type) (any, error)

// Registration is the stored configuration describing how to satisfy one or
// more service types. It holds no validation logic; service types are
// checked when bound through the builder.
type Registration interface {
	// ID returns the unique identifier of the registration.
	ID() string

	// Implementation returns the type of the instances this registration produces.
	Implementation() reflect.Type

	// Services returns the service types this registration satisfies, in
	// the order they were bound.
	Services() []reflect.Type

	// HasService reports whether service is one of Services.
	HasService(service reflect.Type) bool

	// AddService appends service to Services if it is not already present.
	AddService(service reflect.Type)

	// Name returns the registration's name, or "" if it has none.
	Name() string

	// SetName sets the registration's name.
	SetName(name string)

	// Lifetime reports how long built instances live.
	Lifetime() Lifetime

	String() string
}

var (
	_ Registration = (*ClassRegistration)(nil)
	_ Registration = (*InstanceRegistration)(nil)
)

// registrationBase holds the service and name surface shared by both kinds.
type registrationBase struct {
	id       string
	services []reflect.Type
	name     string
}

func (r *registrationBase) ID() string {
	return r.id
}

func (r *registrationBase) Services() []reflect.Type {
	return slices.Clone(r.services)
}

func (r *registrationBase) HasService(service reflect.Type) bool {
	return slices.Contains(r.services, service)
}

func (r *registrationBase) AddService(service reflect.Type) {
	if service == nil || r.HasService(service) {
		return
	}
	r.services = append(r.services, service)
}

func (r *registrationBase) Name() string {
	return r.name
}

func (r *registrationBase) SetName(name string) {
	r.name = name
}

func (r *registrationBase) describe(kind string, implementation reflect.Type, lifetime Lifetime) string {
	services := make([]string, len(r.services))
	for i, s := range r.services {
		services[i] = formatType(s)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s{%s services=[%s] lifetime=%s",
		kind, formatType(implementation), strings.Join(services, " "), lifetime))
	if r.name != "" {
		b.WriteString(fmt.Sprintf(" name=%q", r.name))
	}
	b.WriteString("}")
	return b.String()
}

// ClassRegistration is built on demand by calling its constructor (or its
// Factory) with injected parameters.
type ClassRegistration struct {
	registrationBase

	implementation reflect.Type
	constructor    *reflection.ConstructorInfo
	singleton      bool
	parameters     Parameters
	constructedBy  Factory

	// mu guards the cached singleton instance
	mu          sync.Mutex
	instance    any
	hasInstance bool
}

func newClassRegistration(constructor *reflection.ConstructorInfo) *ClassRegistration {
	return &ClassRegistration{
		registrationBase: registrationBase{
			id:       uuid.NewString(),
			services: []reflect.Type{constructor.Implementation},
		},
		implementation: constructor.Implementation,
		constructor:    constructor,
	}
}

// Implementation returns the type the constructor produces.
func (r *ClassRegistration) Implementation() reflect.Type {
	return r.implementation
}

// Lifetime returns Singleton or Transient depending on the singleton flag.
func (r *ClassRegistration) Lifetime() Lifetime {
	if r.singleton {
		return Singleton
	}
	return Transient
}

// IsSingleton reports whether the first built instance is reused.
func (r *ClassRegistration) IsSingleton() bool {
	return r.singleton
}

// SetSingleton sets the singleton flag.
func (r *ClassRegistration) SetSingleton(singleton bool) {
	r.singleton = singleton
}

// Parameters returns a copy of the parameter overrides.
func (r *ClassRegistration) Parameters() Parameters {
	return maps.Clone(r.parameters)
}

// SetParameters replaces the parameter overrides with a copy of parameters.
func (r *ClassRegistration) SetParameters(parameters Parameters) {
	r.parameters = maps.Clone(parameters)
}

// ConstructedBy returns the custom factory, or nil.
func (r *ClassRegistration) ConstructedBy() Factory {
	return r.constructedBy
}

// SetConstructedBy sets a factory used instead of the constructor.
func (r *ClassRegistration) SetConstructedBy(factory Factory) {
	r.constructedBy = factory
}

// Instance returns the cached singleton instance, if one has been built.
func (r *ClassRegistration) Instance() (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.instance, r.hasInstance
}

// SetInstance caches instance, replacing any cached value.
func (r *ClassRegistration) SetInstance(instance any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instance = instance
	r.hasInstance = true
}

// cacheInstance stores instance unless another one was stored first, and
// returns whichever instance is now cached.
func (r *ClassRegistration) cacheInstance(instance any) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasInstance {
		return r.instance
	}

	r.instance = instance
	r.hasInstance = true
	return instance
}

func (r *ClassRegistration) String() string {
	return r.describe("ClassRegistration", r.implementation, r.Lifetime())
}

// InstanceRegistration wraps a value that was built outside the container.
// Resolving it always returns that value.
type InstanceRegistration struct {
	registrationBase

	instance any
}

func newInstanceRegistration(instance any) *InstanceRegistration {
	return &InstanceRegistration{
		registrationBase: registrationBase{
			id: uuid.NewString(),
		},
		instance: instance,
	}
}

// Implementation returns the dynamic type of the wrapped value.
func (r *InstanceRegistration) Implementation() reflect.Type {
	return reflect.TypeOf(r.instance)
}

// Lifetime is always Singleton.
func (r *InstanceRegistration) Lifetime() Lifetime {
	return Singleton
}

// Instance returns the wrapped value.
func (r *InstanceRegistration) Instance() any {
	return r.instance
}

func (r *InstanceRegistration) String() string {
	return r.describe("InstanceRegistration", r.Implementation(), Singleton)
}
