package di

// Behavior decorates the definitions added to a Builder.
// The behaviors registered with Builder.WithBehaviors are applied,
// in order, each time a definition is added.
type Behavior interface {
	// Wrap returns the decorated definition
	// and whether the definition was changed.
	// The Builder notifies its Monitor once for every change.
	Wrap(def Def) (Def, bool, error)

	// Descriptor identifies the behavior in Monitor notifications.
	Descriptor() string
}

// OptInCaching reverses the default caching policy of the container.
// By default every object is built once per container and then reused.
// With OptInCaching, definitions are unshared unless they carry
// the Cache marker:
//
//	b, _ := di.NewBuilder()
//	b.WithBehaviors(&di.OptInCaching{})
//	b.Add(di.Def{Name: "m"})              // a new object on every retrieval
//	b.Add(di.Def{Name: "s", Cache: true}) // a single cached object
type OptInCaching struct{}

// Descriptor returns the identifier of the behavior.
func (b *OptInCaching) Descriptor() string {
	return "cached"
}

// Wrap applies the opt-in caching policy on the definition.
// The Cache marker is consumed either way.
func (b *OptInCaching) Wrap(def Def) (Def, bool, error) {
	if def.Cache {
		def.Cache = false
		def.Unshared = false
		return def, true, nil
	}

	def.Unshared = true
	return def, false, nil
}

// GoroutineLocalizing makes every added definition goroutine-local.
// See GoroutineLocalize for the semantics of the two modes.
//
// In EnsureLocality mode, every definition must declare
// at least one capability type in its Is field.
type GoroutineLocalizing struct {
	Mode Locality
}

// Descriptor returns the identifier of the behavior.
func (b *GoroutineLocalizing) Descriptor() string {
	if b.Mode == EnsureLocality {
		return "goroutine-local-proxy"
	}
	return "goroutine-local"
}

// Wrap makes the definition goroutine-local.
func (b *GoroutineLocalizing) Wrap(def Def) (Def, bool, error) {
	wrapped, err := GoroutineLocalize(def, b.Mode)
	if err != nil {
		return Def{}, false, err
	}

	return wrapped, true, nil
}
