package javaio

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is decode policy plus the ambient logging hook. The zero value is
// the permissive default: unbounded nesting/handles, no class filtering,
// unregistered classes fail ClassNotFound, no tracing.
type Config struct {
	// MaxDepth bounds readObject nesting depth; zero means unbounded.
	MaxDepth int `toml:"max_depth"`

	// MaxHandles bounds the handle table size; zero means unbounded. The
	// table spans top-level reads and is only emptied by a RESET or an
	// embedded exception, so the bound counts every handle assigned since
	// the last such clear.
	MaxHandles int `toml:"max_handles"`

	// AllowUnregisteredClasses, when true, decodes objects/enums whose
	// class name has no registered Resolver match into a *GenericObject
	// or *GenericEnum instead of failing ClassNotFound.
	AllowUnregisteredClasses bool `toml:"allow_unregistered_classes"`

	// ClassFilter, when non-nil, is consulted before every class-name
	// resolution (including array component classes and proxy interface
	// names); returning false fails InvalidClass. This supplements the
	// resolveClass hook the way java.io.ObjectInputFilter layers in
	// front of real ObjectInputStream deployments.
	ClassFilter func(name string) bool `toml:"-"`

	// Logger, when non-nil, receives Debug-level tracing of each top-level
	// read (with its error, if any) and of RESET events. Individual token
	// transitions and validation drains are not traced.
	Logger *zerolog.Logger `toml:"-"`

	// AllowResolveObject is the trust check EnableResolveObject consults:
	// a decoder may only activate object substitution when its Config
	// opts in, the Go analogue of the original SecurityManager-gated
	// trust check on enableResolveObject.
	AllowResolveObject bool `toml:"allow_resolve_object"`
}

// LoadConfig reads decode policy from a TOML file. ClassFilter and Logger
// are not representable in TOML and must be set on the returned Config
// afterward.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(KindStreamCorrupted, err, "open config %q", path)
	}
	defer f.Close()
	var cfg Config
	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, wrapErr(KindStreamCorrupted, err, "decode config %q", path)
	}
	return &cfg, nil
}

func (c *Config) logger() *zerolog.Logger {
	if c == nil {
		return nil
	}
	return c.Logger
}

func (c *Config) allowsClass(name string) bool {
	if c == nil || c.ClassFilter == nil {
		return true
	}
	return c.ClassFilter(name)
}

func (c *Config) maxDepth() int {
	if c == nil {
		return 0
	}
	return c.MaxDepth
}

func (c *Config) maxHandles() int {
	if c == nil {
		return 0
	}
	return c.MaxHandles
}

func (c *Config) allowUnregistered() bool {
	return c != nil && c.AllowUnregisteredClasses
}

func (c *Config) allowsResolveObject() bool {
	return c != nil && c.AllowResolveObject
}
