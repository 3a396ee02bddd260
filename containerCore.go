package di

import (
	"reflect"
	"sync"
)

// containerCore contains the data of a Container.
// But it can not build objects on its own.
// It should be used inside a container.
type containerCore struct {
	m      sync.Mutex
	closed bool
	logger Logger

	scope  string
	scopes ScopeList

	definitions DefMap
	typeIndex   map[reflect.Type][]string

	parent          *containerCore
	children        []*containerCore
	unscopedChild   *containerCore
	deleteIfNoChild bool

	// objects contains the shared objects that have already been built.
	objects map[string]interface{}

	// unshared contains the objects built from unshared definitions.
	// They are not reused, but they still need to be closed
	// when the container is deleted.
	unshared []unsharedObject
}

type unsharedObject struct {
	name string
	obj  interface{}
}

func (core *containerCore) Definitions() map[string]Def {
	return core.definitions.Copy()
}

func (core *containerCore) NameIsDefined(name string) bool {
	_, ok := core.definitions[name]
	return ok
}

func (core *containerCore) TypeIsDefined(typ reflect.Type) bool {
	_, ok := core.typeIndex[typ]
	return ok
}

func (core *containerCore) NamesForType(typ reflect.Type) []string {
	names := make([]string, len(core.typeIndex[typ]))
	copy(names, core.typeIndex[typ])
	return names
}

func (core *containerCore) Scope() string {
	return core.scope
}

func (core *containerCore) Scopes() []string {
	return core.scopes.Copy()
}

func (core *containerCore) ParentScopes() []string {
	return core.scopes.ParentScopes(core.scope)
}

func (core *containerCore) SubScopes() []string {
	return core.scopes.SubScopes(core.scope)
}
