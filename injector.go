package hypo

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/cwm/hypo/internal/graph"
	"github.com/cwm/hypo/internal/reflection"
)

// construct builds a new instance for reg. A custom factory replaces the
// constructor entirely; otherwise every parameter is filled, in order, from:
//
//  1. an override in the registration's Parameters, by parameter name
//  2. the newest registration serving the parameter's type
//  3. the parameter's `default` tag, or its zero value
//
// A missing registration for the parameter's own type falls through to 3.
// Every other failure, including one deeper in the dependency chain, is
// returned to the caller.
func (c *Container) construct(reg *ClassRegistration, path *graph.Path) (any, error) {
	if factory := reg.ConstructedBy(); factory != nil {
		return factory(reg.Implementation())
	}

	overrides := reg.parameters

	return reflection.Invoke(reg.constructor, func(param reflection.ParameterInfo) (reflect.Value, error) {
		if value, ok := overrides[param.Name]; ok && param.Name != "" {
			return c.override(reg, param, value, path)
		}

		if param.Injectable {
			if _, registered := c.registry.First(param.Type); registered {
				instance, err := c.resolve(param.Type, path)
				if err != nil {
					return reflect.Value{}, err
				}
				return instanceValue(instance, param.Type), nil
			}
		}

		c.logger.Debug("parameter not injected",
			zap.String("registration", reg.ID()),
			zap.String("parameter", param.Name),
			zap.Stringer("type", param.Type),
			zap.Bool("default", param.HasDefault),
		)

		return reflect.Value{}, nil
	})
}

// override turns an override value into an argument. NamedDependency values
// resolve by name; anything else is passed through after conversion.
func (c *Container) override(reg *ClassRegistration, param reflection.ParameterInfo, value any, path *graph.Path) (reflect.Value, error) {
	if dep, ok := value.(NamedDependency); ok {
		instance, err := c.resolveByName(dep.Name, path)
		if err != nil {
			return reflect.Value{}, err
		}

		v := instanceValue(instance, param.Type)
		if v.IsValid() && !v.Type().AssignableTo(param.Type) {
			return reflect.Value{}, ParameterError{
				Implementation: reg.Implementation(),
				Parameter:      param.Name,
				Value:          instance,
				Expected:       param.Type,
			}
		}
		return v, nil
	}

	v, ok := reflection.Coerce(value, param.Type)
	if !ok {
		return reflect.Value{}, ParameterError{
			Implementation: reg.Implementation(),
			Parameter:      param.Name,
			Value:          value,
			Expected:       param.Type,
		}
	}

	return v, nil
}

// instanceValue wraps a resolved instance. A nil instance becomes the zero
// value of t rather than an invalid value, so it is not replaced by a default.
func instanceValue(instance any, t reflect.Type) reflect.Value {
	if instance == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(instance)
}
