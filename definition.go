package di

import "reflect"

// BuildFunc builds an object from a Container.
// The Container can be used to retrieve the dependencies of the object.
type BuildFunc func(ctn Container) (interface{}, error)

// CloseFunc closes an object that was created by a BuildFunc.
type CloseFunc func(obj interface{}) error

// Def contains information to build and close an object inside a Container.
type Def struct {
	// Name identifies the definition inside the Container.
	Name string

	// Scope determines in which Container the object is stored.
	// An empty scope is replaced by the widest scope when the Container is built.
	Scope string

	// Build creates the object.
	Build BuildFunc

	// Close frees the resources held by the object.
	// It is called when the Container is deleted. It may be nil.
	Close CloseFunc

	// Is lists the capability interfaces that the built object must satisfy.
	// It is used to find definitions by type, and by the goroutine-localizing
	// behavior to know which contracts the proxy placeholder stands for.
	Is []reflect.Type

	// Unshared marks the definition as not cached:
	// a new object is built on every retrieval.
	Unshared bool

	// Cache explicitly requests caching. It only matters with the
	// OptInCaching behavior, where definitions are unshared
	// unless they carry this marker.
	// Cache and Unshared are mutually exclusive.
	Cache bool

	// Tags can contain more specific information about the definition.
	Tags []Tag
}

// Tag can contain more specific information about a Def.
// It is useful to find a Def thanks to its tags instead of its name.
type Tag struct {
	Name string
	Args map[string]string
}

// DefMap is a collection of Def ordered by name.
type DefMap map[string]Def

// Copy returns a copy of the DefMap.
func (m DefMap) Copy() DefMap {
	defs := make(DefMap, len(m))

	for name, def := range m {
		defs[name] = def
	}

	return defs
}

// InterfaceOf returns the reflect.Type of T.
// It is a shortcut to declare capability interfaces in the Is field of a Def:
//
//	di.Def{
//		Name: "counter",
//		Is:   []reflect.Type{di.InterfaceOf[Incrementable]()},
//	}
func InterfaceOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
