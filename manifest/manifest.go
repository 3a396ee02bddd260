// Package manifest assembles a di.Builder from a declarative
// configuration file. A manifest names the scopes and the components
// of a container; the build functions themselves are Go code,
// registered in a Factories set under the names the manifest uses.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/picogems/di"
)

// Factories maps the factory names used in a manifest
// to the functions that build the objects.
type Factories struct {
	factories map[string]factory
}

type factory struct {
	build di.BuildFunc
	close di.CloseFunc
	is    []reflect.Type
}

// NewFactories creates an empty Factories set.
func NewFactories() *Factories {
	return &Factories{factories: map[string]factory{}}
}

// Option configures a registered factory.
type Option func(*factory)

// WithClose sets the close function of the objects built by the factory.
func WithClose(close di.CloseFunc) Option {
	return func(f *factory) {
		f.close = close
	}
}

// WithCapabilities declares the capability types of the objects
// built by the factory. They end up in the Is field of the definition,
// so they are required for components assembled with the
// goroutine_local "ensure" mode.
func WithCapabilities(types ...reflect.Type) Option {
	return func(f *factory) {
		f.is = append(f.is, types...)
	}
}

// Register binds a name to a build function.
// It returns an error if the name is empty or already registered.
func (s *Factories) Register(name string, build di.BuildFunc, opts ...Option) error {
	if name == "" {
		return errors.New("factory name can not be empty")
	}

	if build == nil {
		return fmt.Errorf("factory `%s` can not have a nil build function", name)
	}

	if _, ok := s.factories[name]; ok {
		return fmt.Errorf("factory `%s` is already registered", name)
	}

	f := factory{build: build}
	for _, opt := range opts {
		opt(&f)
	}

	s.factories[name] = f

	return nil
}

// IsRegistered returns true if a factory with the given name exists.
func (s *Factories) IsRegistered(name string) bool {
	_, ok := s.factories[name]
	return ok
}

// manifest is the decoded form of a manifest file.
type manifest struct {
	Scopes     []string    `mapstructure:"scopes"`
	Components []component `mapstructure:"components"`
}

type component struct {
	Name string `mapstructure:"name"`

	Scope string `mapstructure:"scope"`

	// Factory is the name of the registered factory.
	// It defaults to the component name.
	Factory string `mapstructure:"factory"`

	// Cache and Unshared are the caching markers of the definition.
	Cache    bool `mapstructure:"cache"`
	Unshared bool `mapstructure:"unshared"`

	// GoroutineLocal selects a locality mode:
	// "ensure", "caller" or empty.
	GoroutineLocal string `mapstructure:"goroutine_local"`
}

// Load reads the manifest file at the given path and translates it
// into a Builder, using the registered factories.
// The file format is anything viper can read from an extension
// (YAML, JSON, TOML, ...).
func Load(path string, factories *Factories) (*di.Builder, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read the manifest: %s", err.Error())
	}

	return fromViper(v, factories)
}

// LoadReader reads a manifest from a reader.
// The format is the configuration type ("yaml", "json", "toml", ...).
func LoadReader(r io.Reader, format string, factories *Factories) (*di.Builder, error) {
	v := viper.New()
	v.SetConfigType(format)

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("could not read the manifest: %s", err.Error())
	}

	return fromViper(v, factories)
}

func fromViper(v *viper.Viper, factories *Factories) (*di.Builder, error) {
	var m manifest

	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("could not decode the manifest: %s", err.Error())
	}

	b, err := di.NewBuilder(m.Scopes...)
	if err != nil {
		return nil, err
	}

	for _, c := range m.Components {
		def, err := c.definition(factories)
		if err != nil {
			return nil, err
		}

		if err := b.Add(def); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (c component) definition(factories *Factories) (di.Def, error) {
	name := c.Factory
	if name == "" {
		name = c.Name
	}

	f, ok := factories.factories[name]
	if !ok {
		return di.Def{}, fmt.Errorf("could not assemble `%s`: factory `%s` is not registered", c.Name, name)
	}

	def := di.Def{
		Name:     c.Name,
		Scope:    c.Scope,
		Build:    f.build,
		Close:    f.close,
		Is:       f.is,
		Cache:    c.Cache,
		Unshared: c.Unshared,
	}

	switch strings.ToLower(c.GoroutineLocal) {
	case "", "none":
		return def, nil
	case "ensure":
		return di.GoroutineLocalize(def, di.EnsureLocality)
	case "caller":
		return di.GoroutineLocalize(def, di.CallerEnsuresLocality)
	}

	return di.Def{}, fmt.Errorf("could not assemble `%s`: unknown goroutine_local mode `%s`", c.Name, c.GoroutineLocal)
}
