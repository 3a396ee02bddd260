package di

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// containerSlayer contains all the functions that are useful
// to delete a container.
type containerSlayer struct{}

func (s *containerSlayer) Delete(core *containerCore) error {
	core.m.Lock()

	if len(core.children) > 0 {
		core.deleteIfNoChild = true
		core.m.Unlock()
		return nil
	}

	core.m.Unlock()

	return s.DeleteWithSubContainers(core)
}

func (s *containerSlayer) DeleteWithSubContainers(core *containerCore) error {
	core.m.Lock()

	if core.closed {
		core.m.Unlock()
		return errors.New("the container has already been deleted")
	}

	// The core data is moved in a clone, so that the container
	// can be marked as closed and unlocked before the objects are closed.
	clone := &containerCore{
		children:      make([]*containerCore, len(core.children)),
		unscopedChild: core.unscopedChild,
		parent:        core.parent,
		objects:       make(map[string]interface{}, len(core.objects)),
		unshared:      make([]unsharedObject, len(core.unshared)),
	}

	copy(clone.children, core.children)
	copy(clone.unshared, core.unshared)

	for name, obj := range core.objects {
		clone.objects[name] = obj
	}

	core.children = nil
	core.unscopedChild = nil
	core.parent = nil
	core.objects = nil
	core.unshared = nil
	core.closed = true

	core.m.Unlock()

	return s.deleteClone(core, clone)
}

func (s *containerSlayer) deleteClone(core, clone *containerCore) error {
	errBuilder := &multiErrBuilder{}

	for _, child := range clone.children {
		errBuilder.Add(s.DeleteWithSubContainers(child))
	}

	if clone.unscopedChild != nil {
		errBuilder.Add(s.DeleteWithSubContainers(clone.unscopedChild))
	}

	if clone.parent != nil {
		errBuilder.Add(s.removeChild(clone.parent, core))
	}

	for name, obj := range clone.objects {
		errBuilder.Add(s.closeObject(core.logger, obj, core.definitions[name]))
	}

	for _, u := range clone.unshared {
		errBuilder.Add(s.closeObject(core.logger, u.obj, core.definitions[u.name]))
	}

	return errBuilder.Build()
}

func (s *containerSlayer) removeChild(core *containerCore, child *containerCore) error {
	core.m.Lock()

	for i, c := range core.children {
		if c == child {
			core.children = append(core.children[:i], core.children[i+1:]...)
			break
		}
	}

	if !core.deleteIfNoChild || len(core.children) > 0 {
		core.m.Unlock()
		return nil
	}

	core.m.Unlock()

	return s.DeleteWithSubContainers(core)
}

func (s *containerSlayer) closeObject(logger Logger, obj interface{}, def Def) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("could not close `%s` because the close function panicked: %s", def.Name, r)
			if logger != nil {
				logger.Error(err.Error() + " stack=" + string(debug.Stack()))
			}
		}
	}()

	if def.Close == nil {
		return nil
	}

	if err := def.Close(obj); err != nil {
		err = fmt.Errorf("could not close `%s`: %s", def.Name, err.Error())
		if logger != nil {
			logger.Error(err.Error())
		}
		return err
	}

	return nil
}

func (s *containerSlayer) IsClosed(core *containerCore) bool {
	core.m.Lock()
	defer core.m.Unlock()
	return core.closed
}

func (s *containerSlayer) Clean(core *containerCore) error {
	core.m.Lock()
	child := core.unscopedChild
	core.unscopedChild = nil
	core.m.Unlock()

	if child != nil {
		return s.Delete(child)
	}

	return nil
}
