package di

import (
	"errors"
	"fmt"
	"reflect"
)

// Builder can be used to create a Container.
// The Builder should be created with NewBuilder.
// Then you can add definitions with the Add method,
// and finally build the Container with the Build method.
type Builder struct {
	definitions    DefMap
	scopes         ScopeList
	insertionOrder map[string]int
	numAdded       int
	behaviors      []Behavior
	monitor        Monitor
	logger         Logger
}

// NewBuilder is the only way to create a working Builder.
// It initializes a Builder with a list of scopes.
// The scopes are ordered from the widest to the narrowest.
// If no scope is provided, the default scopes are used:
// [App, Request, SubRequest]
// It can return an error if the scopes are not valid.
func NewBuilder(scopes ...string) (*Builder, error) {
	if len(scopes) == 0 {
		scopes = []string{App, Request, SubRequest}
	}

	if err := checkScopes(scopes); err != nil {
		return nil, err
	}

	return &Builder{
		definitions:    DefMap{},
		scopes:         scopes,
		insertionOrder: map[string]int{},
		monitor:        &NopMonitor{},
		logger:         &MuteLogger{},
	}, nil
}

func checkScopes(scopes []string) error {
	if len(scopes) == 0 {
		return errors.New("at least one scope is required")
	}

	for i, scope := range scopes {
		if scope == "" {
			return errors.New("a scope can not be an empty string")
		}
		if ScopeList(scopes[i+1:]).Contains(scope) {
			return fmt.Errorf("at least two scopes are identical")
		}
	}

	return nil
}

// WithBehaviors appends behaviors to the Builder.
// The behaviors decorate the definitions added afterwards,
// in the order they were registered.
func (b *Builder) WithBehaviors(behaviors ...Behavior) *Builder {
	b.behaviors = append(b.behaviors, behaviors...)
	return b
}

// WithMonitor sets the Monitor notified when a behavior
// changes the runtime behavior of a definition.
func (b *Builder) WithMonitor(m Monitor) *Builder {
	if m != nil {
		b.monitor = m
	}
	return b
}

// WithLogger sets the Logger used by the containers
// to report the errors that occur while an object is closed.
func (b *Builder) WithLogger(l Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Scopes returns the list of available scopes.
func (b *Builder) Scopes() ScopeList {
	return b.scopes.Copy()
}

// Definitions returns a map with all the definitions
// registered with the Add method.
// The key of the map is the name of the Def.
func (b *Builder) Definitions() DefMap {
	return b.definitions.Copy()
}

// IsDefined returns true if there is a definition with the given name.
func (b *Builder) IsDefined(name string) bool {
	_, ok := b.definitions[name]
	return ok
}

// Add adds one or more definitions in the Builder.
// It returns an error if a definition can not be added.
// If a definition with the same name has already been added,
// it will be replaced by the new one, as if the first one never existed.
func (b *Builder) Add(defs ...Def) error {
	for _, def := range defs {
		if err := b.add(def); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) add(def Def) error {
	if def.Name == "" {
		return errors.New("name can not be empty")
	}

	// note that an empty scope is allowed
	// it will be replaced in the Build method by the widest scope
	if def.Scope != "" && !b.scopes.Contains(def.Scope) {
		return fmt.Errorf("scope `%s` is not allowed", def.Scope)
	}

	if def.Build == nil {
		return errors.New("Build can not be nil")
	}

	if def.Cache && def.Unshared {
		return fmt.Errorf("`%s` can not be marked both Cache and Unshared", def.Name)
	}

	def, err := b.applyBehaviors(def)
	if err != nil {
		return err
	}

	b.definitions[def.Name] = def
	b.insertionOrder[def.Name] = b.numAdded
	b.numAdded++

	return nil
}

func (b *Builder) applyBehaviors(def Def) (Def, error) {
	for _, behavior := range b.behaviors {
		wrapped, changed, err := behavior.Wrap(def)
		if err != nil {
			return Def{}, fmt.Errorf("could not add `%s`: %s", def.Name, err.Error())
		}
		if changed {
			b.monitor.ChangedBehavior(def.Name, behavior.Descriptor())
		}
		def = wrapped
	}

	return def, nil
}

// Set is a shortcut to add a definition for an already built object.
func (b *Builder) Set(name string, obj interface{}) error {
	return b.add(Def{
		Name: name,
		Build: func(ctn Container) (interface{}, error) {
			return obj, nil
		},
	})
}

// Build creates a Container in the widest scope
// with all the definitions registered in the Builder.
func (b *Builder) Build() Container {
	if err := checkScopes(b.scopes); err != nil {
		return newClosedContainer()
	}

	definitions := DefMap{}
	typeIndex := map[reflect.Type][]string{}

	names := make([]string, 0, len(b.definitions))
	for name := range b.definitions {
		names = append(names, name)
	}

	// The type index keeps the insertion order of the definitions.
	sortByInsertionOrder(names, b.insertionOrder)

	for _, name := range names {
		def := b.definitions[name]
		if def.Scope == "" {
			def.Scope = b.scopes[0]
		}
		definitions[name] = def

		for _, typ := range def.Is {
			typeIndex[typ] = append(typeIndex[typ], name)
		}
	}

	return &container{
		containerCore: &containerCore{
			logger:        b.logger,
			scope:         b.scopes[0],
			scopes:        b.scopes.Copy(),
			definitions:   definitions,
			typeIndex:     typeIndex,
			parent:        nil,
			children:      []*containerCore{},
			unscopedChild: nil,
			objects:       map[string]interface{}{},
		},
		builtList: builtList{},
	}
}

func sortByInsertionOrder(names []string, order map[string]int) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && order[names[j]] < order[names[j-1]]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// newClosedContainer returns a closed container.
// It is not usable and is returned when there is an error.
func newClosedContainer() Container {
	return &container{
		containerCore: &containerCore{
			closed:      true,
			logger:      &MuteLogger{},
			scopes:      ScopeList{},
			definitions: DefMap{},
			typeIndex:   map[reflect.Type][]string{},
			objects:     map[string]interface{}{},
		},
		builtList: builtList{},
	}
}
