package hypo

import "reflect"

// The builder steps configure a registration returned by Register or
// RegisterInstance. Each step exposes only the steps that may follow it:
//
//	c.Register(NewSQLStore)                 // ResolutionStep
//	    .With(reflect.TypeFor[Store]())     // ConstructionStep
//	    .WithParameters(hypo.Parameters{})  // LifetimeStep
//	    .AsSingleton()                      // NameStep
//	    .Named("primary")                   // Registration
//
// Every step wraps the same registration, and the registration is live in
// the container from the moment Register returns. Stopping early is fine.

// NameStep is the last step: naming the registration.
type NameStep interface {
	// Named sets the name used by ResolveByName and NamedDependency.
	Named(name string) Registration

	// Registration returns the registration being configured.
	Registration() Registration
}

// LifetimeStep chooses between a shared and a fresh instance per resolution.
type LifetimeStep interface {
	NameStep

	// AsSingleton caches the first built instance and returns it thereafter.
	AsSingleton() NameStep

	// AsTransient builds a new instance on every resolution. This is the default.
	AsTransient() NameStep
}

// ConstructionStep controls how instances are built.
type ConstructionStep interface {
	LifetimeStep

	// WithParameters sets overrides for constructor parameters by name.
	WithParameters(parameters Parameters) LifetimeStep

	// ConstructedBy replaces the constructor with factory.
	ConstructedBy(factory Factory) LifetimeStep
}

// ResolutionStep is returned by Register and binds service types.
type ResolutionStep interface {
	ConstructionStep

	// With binds the given service types. Each must be the implementation
	// type or an interface it implements; otherwise a RegistrationError is
	// returned and nothing is bound.
	With(services ...reflect.Type) (ConstructionStep, error)

	// WithImplementedInterfaces binds every interface known to the container
	// that the implementation satisfies.
	WithImplementedInterfaces() (ConstructionStep, error)
}

// InstanceResolutionStep is returned by RegisterInstance. Instances have no
// construction or lifetime to configure.
type InstanceResolutionStep interface {
	NameStep

	With(services ...reflect.Type) (NameStep, error)
	WithImplementedInterfaces() (NameStep, error)
}

var (
	_ ResolutionStep         = (*classStep)(nil)
	_ InstanceResolutionStep = (*instanceStep)(nil)
)

type classStep struct {
	container    *Container
	registration *ClassRegistration
}

func (s *classStep) With(services ...reflect.Type) (ConstructionStep, error) {
	if err := s.container.bindAll(s.registration, services); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *classStep) WithImplementedInterfaces() (ConstructionStep, error) {
	if err := s.container.bindImplemented(s.registration); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *classStep) WithParameters(parameters Parameters) LifetimeStep {
	s.registration.SetParameters(parameters)
	return s
}

func (s *classStep) ConstructedBy(factory Factory) LifetimeStep {
	s.registration.SetConstructedBy(factory)
	return s
}

func (s *classStep) AsSingleton() NameStep {
	s.registration.SetSingleton(true)
	return s
}

func (s *classStep) AsTransient() NameStep {
	s.registration.SetSingleton(false)
	return s
}

func (s *classStep) Named(name string) Registration {
	s.registration.SetName(name)
	return s.registration
}

func (s *classStep) Registration() Registration {
	return s.registration
}

type instanceStep struct {
	container    *Container
	registration *InstanceRegistration
}

func (s *instanceStep) With(services ...reflect.Type) (NameStep, error) {
	if err := s.container.bindAll(s.registration, services); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *instanceStep) WithImplementedInterfaces() (NameStep, error) {
	if err := s.container.bindImplemented(s.registration); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *instanceStep) Named(name string) Registration {
	s.registration.SetName(name)
	return s.registration
}

func (s *instanceStep) Registration() Registration {
	return s.registration
}
