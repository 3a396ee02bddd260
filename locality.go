package di

import (
	"fmt"
	"sync/atomic"

	"github.com/insolar/gls"
)

// Locality selects how goroutine locality is achieved
// for a definition wrapped with GoroutineLocalize.
type Locality int

const (
	// EnsureLocality makes the container hold a single shared Placeholder.
	// Every operation invoked on the placeholder resolves the instance
	// belonging to the calling goroutine and forwards the call to it.
	// The placeholder can safely be stored inside other long-lived
	// objects: even indirect accesses reach the calling goroutine's
	// own instance.
	EnsureLocality Locality = iota

	// CallerEnsuresLocality caches one instance per goroutine without
	// any indirection. It is cheaper than EnsureLocality but it only
	// works when the goroutine that retrieves the object is also the
	// only one using it. If another cached object keeps a reference
	// to the instance, that reference crosses goroutines unchecked.
	CallerEnsuresLocality
)

// slotIDs generates the keys of the goroutine-local slots.
var slotIDs uint64

// goroutineSlot is a per-goroutine storage cell holding at most one
// object for a given definition. It relies on goroutine-local storage,
// so no locking is needed: a goroutine only reads and writes
// its own entry.
type goroutineSlot struct {
	key string
}

func newGoroutineSlot(name string) *goroutineSlot {
	id := atomic.AddUint64(&slotIDs, 1)
	return &goroutineSlot{key: fmt.Sprintf("di.local.%d.%s", id, name)}
}

// slotEntry wraps the stored object so that a nil object
// can be told apart from an empty slot.
type slotEntry struct {
	obj interface{}
}

func (s *goroutineSlot) get() (interface{}, bool) {
	v := gls.Get(s.key)
	if v == nil {
		return nil, false
	}
	return v.(*slotEntry).obj, true
}

func (s *goroutineSlot) set(obj interface{}) {
	gls.Set(s.key, &slotEntry{obj: obj})
}

// FlushGoroutineLocals drops every goroutine-local object
// of the calling goroutine. Long-running worker pools should call it
// when a goroutine is recycled, otherwise the slots of the previous
// task leak into the next one.
//
// It clears the whole goroutine-local storage of the calling goroutine,
// including values stored with github.com/insolar/gls
// outside of this package.
func FlushGoroutineLocals() {
	gls.Cleanup()
}

// GoroutineLocalize wraps a definition so that every goroutine
// observes its own instance of the object.
//
// In CallerEnsuresLocality mode, the returned definition is unshared
// and builds at most one instance per goroutine: the first retrieval
// from a goroutine builds the object and stores it in the goroutine
// slot, the following retrievals on the same goroutine return the
// stored object. A failed build leaves the slot empty, so a later
// retrieval can try again.
//
// In EnsureLocality mode, the returned definition builds a single
// shared *Placeholder. The placeholder forwards every operation to
// the calling goroutine's instance, built on demand with the wrapped
// definition. GoroutineLocalize fails in this mode if the definition
// does not declare any capability type in its Is field.
//
// In both modes the per-goroutine instances are not tracked by the
// container: their lifetime is tied to the goroutine and the Close
// function of the wrapped definition is not called for them.
func GoroutineLocalize(def Def, mode Locality) (Def, error) {
	if def.Build == nil {
		return Def{}, fmt.Errorf("could not localize `%s` because Build is nil", def.Name)
	}

	slot := newGoroutineSlot(def.Name)
	inner := def.Build

	switch mode {
	case CallerEnsuresLocality:
		out := def
		out.Unshared = true
		out.Cache = false
		out.Close = nil
		out.Build = func(ctn Container) (interface{}, error) {
			if obj, ok := slot.get(); ok {
				return obj, nil
			}

			obj, err := inner(ctn)
			if err != nil {
				return nil, err
			}

			slot.set(obj)

			return obj, nil
		}
		return out, nil

	case EnsureLocality:
		if len(def.Is) == 0 {
			return Def{}, fmt.Errorf(
				"could not localize `%s` because it does not declare any capability type in Is",
				def.Name,
			)
		}

		out := def
		out.Unshared = false
		out.Cache = false
		out.Close = nil
		out.Build = func(ctn Container) (interface{}, error) {
			return &Placeholder{
				name: def.Name,
				is:   def.Is,
				slot: slot,
				build: func() (interface{}, error) {
					return inner(ctn)
				},
			}, nil
		}
		return out, nil
	}

	return Def{}, fmt.Errorf("could not localize `%s` because the locality mode is unknown", def.Name)
}
