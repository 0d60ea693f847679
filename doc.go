// Package hypo provides a small reflection-based dependency injection container.
//
// # Overview
//
// A Container keeps an ordered list of registrations. Each registration says
// how to produce an instance (a constructor, a struct type, a custom factory,
// or a value built elsewhere) and which service types that instance may be
// requested as. Resolving a service type finds the newest matching
// registration and builds its instance, resolving constructor parameters
// from the container recursively.
//
// # Basic Usage
//
//	c := hypo.New()
//
//	step, err := c.Register(NewSQLStore)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := step.With(hypo.TypeOf[Store]()); err != nil {
//	    log.Fatal(err)
//	}
//
//	c.Register(NewReportService)
//
//	reports, err := hypo.Resolve[*ReportService](c)
//
// # Service Types
//
// A registration is bound to its implementation type when created. With
// adds more service types; each must be an interface the implementation
// implements. WithImplementedInterfaces binds every interface the container
// knows about that the implementation satisfies. The container learns
// interfaces from With, from interface-typed constructor parameters, from
// DeclareInterfaces and from the WithInterfaces option.
//
// # Precedence
//
// The most recent registration wins. Resolve and ResolveByName return the
// newest match; ResolveAll returns every match, newest first. Registering
// again is how an earlier choice is overridden.
//
// # Lifetimes
//
//   - Transient (default): a new instance on every resolution
//   - Singleton: the first instance is cached on the registration and reused
//
// Instances passed to RegisterInstance are always returned as-is.
//
// # Parameters
//
// Go does not keep parameter names at run time. Positional constructor
// parameters are named when registering:
//
//	c.Register(NewReportService, "store", "limit")
//
// Constructors with many parameters can take a parameter object instead:
//
//	type ReportParams struct {
//	    hypo.In
//
//	    Store  Store
//	    Limit  int    `default:"50"`
//	    Format string `hypo:"format" default:"csv"`
//	}
//
// For every parameter, in order, the injector uses the first of:
//
//  1. an override set with WithParameters, by name; a NamedDependency
//     override resolves the registration with that name instead
//  2. the newest registration serving the parameter's type
//  3. the parameter's `default` tag, or its zero value
//
// Struct types registered with Register or RegisterType are filled the same
// way through their exported fields. Fields tagged `inject:"-"` are left alone.
//
// # Errors
//
// Typed errors carry context and match sentinel values with errors.Is:
//
//   - InvalidArgumentError: Register or RegisterInstance got a bad argument
//   - RegistrationError: a service type is incompatible with the implementation
//   - NotRegisteredError: nothing serves the requested type or name
//   - CyclicDependencyError: a registration depends on itself
//   - ParameterError: an override does not fit its parameter
//
// Errors returned by constructors and factories are passed through unchanged.
//
// # Thread Safety
//
// Configure the container first, then resolve. Resolution is safe for
// concurrent use; registration should not race with it.
package hypo
