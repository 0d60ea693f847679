package hypo

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// checkService reports whether the registration's implementation satisfies
// service. A service is satisfied by the implementation type itself, or by an
// interface the implementation implements. Go has no subclassing, so any
// other concrete type is rejected.
func checkService(reg Registration, service reflect.Type) error {
	impl := reg.Implementation()

	if service == nil {
		return RegistrationError{
			Registration: reg,
			Message:      "service type cannot be nil",
		}
	}

	if service == impl {
		return nil
	}

	if service.Kind() != reflect.Interface {
		return RegistrationError{
			Registration: reg,
			Message:      fmt.Sprintf("type %s is incompatible with %s", formatType(service), formatType(impl)),
		}
	}

	if !impl.Implements(service) {
		return RegistrationError{
			Registration: reg,
			Message:      fmt.Sprintf("interface %s is incompatible with %s", formatType(service), formatType(impl)),
		}
	}

	return nil
}

// bind checks service and adds it to the registration's service types.
func (c *Container) bind(reg Registration, service reflect.Type) error {
	if err := checkService(reg, service); err != nil {
		return err
	}

	c.addService(reg, service)
	return nil
}

// bindAll checks every service before adding any, so an incompatible service
// leaves the registration unchanged.
func (c *Container) bindAll(reg Registration, services []reflect.Type) error {
	for _, service := range services {
		if err := checkService(reg, service); err != nil {
			return err
		}
	}

	for _, service := range services {
		c.addService(reg, service)
	}

	return nil
}

func (c *Container) addService(reg Registration, service reflect.Type) {
	if service.Kind() == reflect.Interface {
		c.registry.DeclareInterface(service)
	}

	reg.AddService(service)

	c.logger.Debug("service bound",
		zap.String("registration", reg.ID()),
		zap.Stringer("implementation", reg.Implementation()),
		zap.Stringer("service", service),
	)
}

// bindImplemented binds every known interface the implementation satisfies,
// in the order the interfaces became known to the container. Empty
// interfaces are satisfied by everything and are skipped.
func (c *Container) bindImplemented(reg Registration) error {
	impl := reg.Implementation()

	for _, iface := range c.registry.Interfaces() {
		if iface.NumMethod() == 0 || !impl.Implements(iface) {
			continue
		}
		if err := c.bind(reg, iface); err != nil {
			return err
		}
	}

	return nil
}
