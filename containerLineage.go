package di

import (
	"errors"
	"fmt"
)

// containerLineage contains all the functions that are useful
// to retrieve or create the parent and children of a container.
type containerLineage struct{}

func (l *containerLineage) Parent(ctn *container) Container {
	return l.parent(ctn)
}

func (l *containerLineage) parent(ctn *container) *container {
	ctn.m.Lock()
	parent := ctn.containerCore.parent
	ctn.m.Unlock()

	return &container{
		containerCore: parent,
		builtList:     ctn.builtList,
	}
}

func (l *containerLineage) SubContainer(ctn *container) (Container, error) {
	child, err := l.createChild(ctn)
	if err != nil {
		return nil, err
	}

	ctn.m.Lock()

	if ctn.closed {
		ctn.m.Unlock()
		return nil, errors.New("the container is closed")
	}

	ctn.children = append(ctn.children, child.containerCore)

	ctn.m.Unlock()

	return child, nil
}

func (l *containerLineage) createChild(ctn *container) (*container, error) {
	subscopes := ctn.SubScopes()

	if len(subscopes) == 0 {
		return nil, fmt.Errorf("there is no narrower scope than `%s`", ctn.scope)
	}

	return &container{
		containerCore: &containerCore{
			logger:        ctn.logger,
			scope:         subscopes[0],
			scopes:        ctn.scopes,
			definitions:   ctn.definitions,
			typeIndex:     ctn.typeIndex,
			parent:        ctn.containerCore,
			children:      []*containerCore{},
			unscopedChild: nil,
			objects:       map[string]interface{}{},
		},
		builtList: ctn.builtList,
	}, nil
}
