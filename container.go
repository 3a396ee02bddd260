package di

import "reflect"

// Container represents a dependency injection container.
// To create a Container, you should use a Builder.
//
// A Container has a scope and may have a parent in a wider scope
// and children in a narrower scope.
// Objects can be retrieved from the Container.
// If the requested object does not already exist in the Container,
// it is built thanks to the object definition.
// The following attempts to get this object will return the same object,
// unless the definition is unshared.
type Container interface {
	// Definitions returns the map of the available definitions ordered by name.
	// These definitions represent all the objects that this Container can build.
	Definitions() map[string]Def

	// NameIsDefined returns true if there is a definition for the given name.
	NameIsDefined(name string) bool

	// TypeIsDefined returns true if at least one definition
	// declares the given type in its Is field.
	TypeIsDefined(typ reflect.Type) bool

	// NamesForType returns the names of the definitions
	// that declare the given type in their Is field.
	NamesForType(typ reflect.Type) []string

	// Scope returns the Container scope.
	Scope() string

	// Scopes returns the list of available scopes.
	Scopes() []string

	// ParentScopes returns the list of scopes wider than the Container scope.
	ParentScopes() []string

	// SubScopes returns the list of scopes narrower than the Container scope.
	SubScopes() []string

	// Parent returns the parent Container.
	Parent() Container

	// SubContainer creates a new Container in the next narrower scope
	// that will have this Container as parent.
	SubContainer() (Container, error)

	// SafeGet retrieves an object from the Container.
	// The object has to belong to this scope or a wider one.
	// If the object does not already exist, it is created and saved in the Container.
	// If the object can not be created, it returns an error.
	SafeGet(name string) (interface{}, error)

	// Get is similar to SafeGet but it panics instead of returning an error.
	Get(name string) interface{}

	// Fill is similar to SafeGet but it does not return the object.
	// Instead it fills the provided object with the value returned by SafeGet.
	// The provided object must be a pointer to the value returned by SafeGet.
	Fill(name string, dst interface{}) error

	// UnscopedSafeGet retrieves an object from the Container, like SafeGet.
	// The difference is that the object can be retrieved
	// even if it belongs to a narrower scope.
	// To do so UnscopedSafeGet creates a sub-container.
	// When the created object is no longer needed,
	// it is important to use the Clean method to delete this sub-container.
	UnscopedSafeGet(name string) (interface{}, error)

	// UnscopedGet is similar to UnscopedSafeGet but it panics instead of returning an error.
	UnscopedGet(name string) interface{}

	// UnscopedFill is similar to UnscopedSafeGet but copies the object in dst instead of returning it.
	UnscopedFill(name string, dst interface{}) error

	// Clean deletes the sub-container created by UnscopedSafeGet, UnscopedGet or UnscopedFill.
	Clean() error

	// DeleteWithSubContainers takes all the objects saved in this Container
	// and calls their Close function. It will also call DeleteWithSubContainers
	// on each child and remove its reference in the parent Container.
	// After deletion, the Container can no longer be used.
	DeleteWithSubContainers() error

	// Delete works like DeleteWithSubContainers if the Container does not have any child.
	// But if the Container has sub-containers, it will not be deleted right away.
	// The deletion only occurs when all the sub-containers have been deleted.
	Delete() error

	// IsClosed returns true if the Container has been deleted.
	IsClosed() bool
}

// container is the implementation of the Container interface.
type container struct {
	// containerCore contains the container data.
	// Several container can share the same containerCore.
	// In this case these containers represent the same entity,
	// but at a different stage of an object construction.
	// They differ by their builtList field.
	*containerCore

	// builtList contains the names of the definitions that are being built
	// by this container. It is used to avoid cycles in object definitions.
	// Each time a container is passed as parameter of the Build function
	// of a definition, it is in fact a new container
	// with the same core but an updated builtList field.
	builtList builtList
}

func (ctn *container) SafeGet(name string) (interface{}, error) {
	return getters.SafeGet(ctn, name)
}

func (ctn *container) Get(name string) interface{} {
	return getters.Get(ctn, name)
}

func (ctn *container) Fill(name string, dst interface{}) error {
	return getters.Fill(ctn, name, dst)
}

func (ctn *container) UnscopedSafeGet(name string) (interface{}, error) {
	return unscopedGetters.UnscopedSafeGet(ctn, name)
}

func (ctn *container) UnscopedGet(name string) interface{} {
	return unscopedGetters.UnscopedGet(ctn, name)
}

func (ctn *container) UnscopedFill(name string, dst interface{}) error {
	return unscopedGetters.UnscopedFill(ctn, name, dst)
}

func (ctn *container) Parent() Container {
	return lineage.Parent(ctn)
}

func (ctn *container) SubContainer() (Container, error) {
	return lineage.SubContainer(ctn)
}

func (ctn *container) Delete() error {
	return slayer.Delete(ctn.containerCore)
}

func (ctn *container) DeleteWithSubContainers() error {
	return slayer.DeleteWithSubContainers(ctn.containerCore)
}

func (ctn *container) Clean() error {
	return slayer.Clean(ctn.containerCore)
}

func (ctn *container) IsClosed() bool {
	return slayer.IsClosed(ctn.containerCore)
}

// The mixins are stateless. They only exist
// to split the container implementation into smaller pieces.
var (
	getters         = &containerGetter{}
	unscopedGetters = &containerUnscopedGetter{}
	lineage         = &containerLineage{}
	slayer          = &containerSlayer{}
)
