package hypo

import (
	"reflect"

	"go.uber.org/zap"
)

// Option configures a Container.
type Option interface {
	apply(*containerOptions)
}

// containerOptions holds container configuration.
type containerOptions struct {
	id         string
	logger     *zap.Logger
	interfaces []reflect.Type
}

// optionFunc adapts a function to Option.
type optionFunc func(*containerOptions)

func (f optionFunc) apply(opts *containerOptions) {
	f(opts)
}

// WithLogger sets the logger used for debug events about registration and
// resolution. A nil logger disables logging, which is also the default.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *containerOptions) {
		opts.logger = logger
	})
}

// WithID sets the container's identifier instead of a generated UUID.
func WithID(id string) Option {
	return optionFunc(func(opts *containerOptions) {
		opts.id = id
	})
}

// WithInterfaces declares interface types up front, in order, so that
// WithImplementedInterfaces can bind them. Non-interface types are ignored.
func WithInterfaces(types ...reflect.Type) Option {
	return optionFunc(func(opts *containerOptions) {
		opts.interfaces = append(opts.interfaces, types...)
	})
}
