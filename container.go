package hypo

import (
	"errors"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cwm/hypo/internal/graph"
	"github.com/cwm/hypo/internal/reflection"
	"github.com/cwm/hypo/internal/registry"
)

// Container holds an ordered list of registrations and resolves service
// types against it, building instances and their dependencies on demand.
//
// The most recent registration wins: Resolve and ResolveByName return the
// newest match, and ResolveAll lists matches newest first.
//
// Registration is expected to happen before resolution, from one goroutine.
// Lookups are safe to run concurrently; the first resolution of a singleton
// from several goroutines at once may run its constructor more than once,
// but only one instance is ever cached and returned.
type Container struct {
	id       string
	registry *registry.Registry[Registration]
	analyzer *reflection.Analyzer
	logger   *zap.Logger
}

// New creates an empty container.
func New(opts ...Option) *Container {
	options := &containerOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(options)
		}
	}

	c := &Container{
		id:       options.id,
		registry: registry.New[Registration](),
		analyzer: reflection.New(),
		logger:   options.logger,
	}

	if c.id == "" {
		c.id = uuid.NewString()
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.With(zap.String("container", c.id))

	for _, iface := range options.interfaces {
		c.registry.DeclareInterface(iface)
	}

	return c
}

// ID returns the unique identifier of the container.
func (c *Container) ID() string {
	return c.id
}

// Register starts a registration for target, which is either a constructor
// function or the reflect.Type of a struct or pointer to struct.
//
// A constructor returns the implementation, optionally followed by an error:
//
//	func NewReportService(store Store, limit int) *ReportService
//	func NewReportService(p ReportParams) (*ReportService, error)
//
// Go does not keep parameter names, so positional parameters are named by
// parameterNames, in order, for use with WithParameters. Parameter objects
// (see In) and struct types are named by their fields.
//
// The registration is initially bound only to its implementation type.
func (c *Container) Register(target any, parameterNames ...string) (ResolutionStep, error) {
	if target == nil {
		return nil, InvalidArgumentError{Argument: "target", Value: target, Cause: ErrNilTarget}
	}

	if !isRegistrable(target) {
		return nil, InvalidArgumentError{Argument: "target", Value: target, Cause: ErrInvalidTarget}
	}

	if t := reflect.TypeOf(target); t.Kind() == reflect.Func && t.NumOut() == 0 {
		return nil, InvalidArgumentError{Argument: "target", Value: target, Cause: ErrNoReturnValue}
	}

	info, err := c.analyzer.Analyze(target)
	if err != nil {
		return nil, InvalidArgumentError{Argument: "target", Value: target, Cause: errors.Join(ErrInvalidTarget, err)}
	}

	info, err = info.WithNames(parameterNames)
	if err != nil {
		return nil, InvalidArgumentError{Argument: "parameterNames", Value: parameterNames, Cause: errors.Join(ErrParameterNames, err)}
	}

	for _, param := range info.Parameters {
		if param.Type.Kind() == reflect.Interface {
			c.registry.DeclareInterface(param.Type)
		}
	}

	reg := newClassRegistration(info)
	c.registry.Add(reg)

	c.logger.Debug("registered",
		zap.String("registration", reg.ID()),
		zap.Stringer("implementation", reg.Implementation()),
		zap.Int("parameters", len(info.Parameters)),
	)

	return &classStep{container: c, registration: reg}, nil
}

// RegisterInstance registers a value built outside the container. The
// registration starts with no service types; bind them with With or
// WithImplementedInterfaces.
func (c *Container) RegisterInstance(instance any) (InstanceResolutionStep, error) {
	if instance == nil {
		return nil, InvalidArgumentError{Argument: "instance", Value: instance, Cause: ErrNilTarget}
	}

	if !isObject(reflect.ValueOf(instance)) {
		return nil, InvalidArgumentError{Argument: "instance", Value: instance, Cause: ErrNotAnObject}
	}

	reg := newInstanceRegistration(instance)
	c.registry.Add(reg)

	c.logger.Debug("registered instance",
		zap.String("registration", reg.ID()),
		zap.Stringer("implementation", reg.Implementation()),
	)

	return &instanceStep{container: c, registration: reg}, nil
}

// DeclareInterfaces adds interface types to the container's table of known
// interfaces, which WithImplementedInterfaces binds from.
func (c *Container) DeclareInterfaces(types ...reflect.Type) error {
	for _, t := range types {
		if t == nil || t.Kind() != reflect.Interface {
			return InvalidArgumentError{Argument: "interface", Value: t, Cause: ErrNotAnInterface}
		}
	}

	for _, t := range types {
		c.registry.DeclareInterface(t)
	}

	return nil
}

// Resolve returns an instance for the newest registration serving service.
func (c *Container) Resolve(service reflect.Type) (any, error) {
	return c.resolve(service, graph.NewPath())
}

// ResolveByName returns an instance for the newest registration named name.
// Names are compared exactly.
func (c *Container) ResolveByName(name string) (any, error) {
	return c.resolveByName(name, graph.NewPath())
}

// ResolveAll returns one instance per registration serving service, newest
// registration first. It fails with NotRegisteredError when none match.
func (c *Container) ResolveAll(service reflect.Type) ([]any, error) {
	matches := c.registry.All(service)
	if len(matches) == 0 {
		return nil, c.notRegistered(service)
	}

	instances := make([]any, 0, len(matches))
	for _, reg := range matches {
		instance, err := c.resolveRegistration(reg, graph.NewPath())
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}

	return instances, nil
}

// Contains reports whether any registration serves service.
func (c *Container) Contains(service reflect.Type) bool {
	return c.registry.Contains(service)
}

// ContainsName reports whether any registration is named name.
func (c *Container) ContainsName(name string) bool {
	_, ok := c.registry.FirstNamed(name)
	return ok
}

// Registrations returns all registrations, newest first.
func (c *Container) Registrations() []Registration {
	return c.registry.Entries()
}

// Count returns the number of registrations.
func (c *Container) Count() int {
	return c.registry.Len()
}

func (c *Container) resolve(service reflect.Type, path *graph.Path) (any, error) {
	reg, ok := c.registry.First(service)
	if !ok {
		return nil, c.notRegistered(service)
	}

	return c.resolveRegistration(reg, path)
}

func (c *Container) resolveByName(name string, path *graph.Path) (any, error) {
	reg, ok := c.registry.FirstNamed(name)
	if !ok {
		return nil, NotRegisteredError{Name: name}
	}

	return c.resolveRegistration(reg, path)
}

// resolveRegistration dispatches on the registration kind. Class
// registrations go through the injector and the singleton cache; instance
// registrations return their value unchanged.
func (c *Container) resolveRegistration(reg Registration, path *graph.Path) (any, error) {
	switch r := reg.(type) {
	case *InstanceRegistration:
		return r.Instance(), nil

	case *ClassRegistration:
		if r.IsSingleton() {
			if instance, ok := r.Instance(); ok {
				return instance, nil
			}
		}

		key := graph.NodeKey{ID: r.ID(), Type: r.Implementation(), Name: r.Name()}
		if err := path.Enter(key); err != nil {
			return nil, err
		}
		defer path.Leave()

		c.logger.Debug("constructing",
			zap.String("registration", r.ID()),
			zap.Stringer("implementation", r.Implementation()),
			zap.Stringer("kind", r.constructor.Kind),
			zap.Int("depth", path.Depth()),
		)

		instance, err := c.construct(r, path)
		if err != nil {
			return nil, err
		}

		if r.IsSingleton() {
			instance = r.cacheInstance(instance)
			c.logger.Debug("singleton cached", zap.String("registration", r.ID()))
		}

		return instance, nil

	default:
		return nil, ErrUnknownRegistration
	}
}

func (c *Container) notRegistered(service reflect.Type) error {
	return NotRegisteredError{
		Service:   service,
		Available: c.registry.ServiceTypes(),
	}
}

// isRegistrable accepts functions and struct types, leaving the detailed
// checks to the analyzer.
func isRegistrable(target any) bool {
	if _, ok := target.(reflect.Type); ok {
		return true
	}
	return reflect.TypeOf(target).Kind() == reflect.Func
}

// isObject rejects basic values, which have no identity to register, and
// nil references held in a non-nil interface.
func isObject(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan:
		return !v.IsNil()
	case reflect.Bool, reflect.String, reflect.UnsafePointer,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	default:
		return true
	}
}
