package hypo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwm/hypo/internal/graph"
	"github.com/cwm/hypo/internal/reflection"
)

// Validate walks the dependency graph of every class registration without
// constructing anything, following the same choices resolution would make.
// It reports the first cycle as a CyclicDependencyError, and the first
// NamedDependency override whose name no registration carries as a
// NotRegisteredError.
//
// Registrations built by a factory are leaves: what a factory depends on is
// not visible. So are singletons that already hold an instance, since
// resolution never constructs them again. Missing registrations for parameter types are not errors,
// since those parameters fall back to their defaults.
func (c *Container) Validate() error {
	done := make(map[string]struct{})

	for _, reg := range c.registry.Entries() {
		if err := c.validateRegistration(reg, graph.NewPath(), done); err != nil {
			return err
		}
	}

	c.logger.Debug("validated", zap.Int("registrations", len(done)))
	return nil
}

func (c *Container) validateRegistration(reg Registration, path *graph.Path, done map[string]struct{}) error {
	class, ok := reg.(*ClassRegistration)
	if !ok {
		return nil
	}

	if _, ok := done[class.ID()]; ok {
		return nil
	}

	if class.IsSingleton() {
		if _, cached := class.Instance(); cached {
			return nil
		}
	}

	key := graph.NodeKey{ID: class.ID(), Type: class.Implementation(), Name: class.Name()}
	if err := path.Enter(key); err != nil {
		return err
	}
	defer path.Leave()

	if class.ConstructedBy() == nil {
		for _, param := range class.constructor.Parameters {
			next, err := c.dependencyOf(class, param)
			if err != nil {
				return err
			}
			if next == nil {
				continue
			}
			if err := c.validateRegistration(next, path, done); err != nil {
				return err
			}
		}
	}

	done[class.ID()] = struct{}{}
	return nil
}

// dependencyOf returns the registration a parameter would be resolved from,
// or nil when it would get a literal, a default or a zero value.
func (c *Container) dependencyOf(reg *ClassRegistration, param reflection.ParameterInfo) (Registration, error) {
	if value, ok := reg.parameters[param.Name]; ok && param.Name != "" {
		dep, named := value.(NamedDependency)
		if !named {
			return nil, nil
		}

		target, found := c.registry.FirstNamed(dep.Name)
		if !found {
			return nil, fmt.Errorf("%s parameter %q: %w", formatType(reg.Implementation()), param.Name, NotRegisteredError{Name: dep.Name})
		}
		return target, nil
	}

	if !param.Injectable {
		return nil, nil
	}

	target, found := c.registry.First(param.Type)
	if !found {
		return nil, nil
	}
	return target, nil
}
