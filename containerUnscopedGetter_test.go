package di

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnscopedSafeGet(t *testing.T) {
	b, _ := NewBuilder()

	b.Add([]Def{
		{
			Name:  "appObject",
			Scope: App,
			Build: func(ctn Container) (interface{}, error) {
				return &mockObject{}, nil
			},
		},
		{
			Name:  "subReqObject",
			Scope: SubRequest,
			Build: func(ctn Container) (interface{}, error) {
				return &mockObject{}, nil
			},
		},
	}...)

	app := b.Build()

	_, err := app.SafeGet("subReqObject")
	require.NotNil(t, err, "SafeGet should not retrieve an object defined in a narrower scope")

	obj, err := app.UnscopedSafeGet("subReqObject")
	require.Nil(t, err)
	require.Equal(t, &mockObject{}, obj.(*mockObject))

	// the same unscoped child is reused
	objBis, err := app.UnscopedSafeGet("subReqObject")
	require.Nil(t, err)
	require.True(t, obj == objBis)

	// an object in a wider scope is retrieved normally
	_, err = app.UnscopedSafeGet("appObject")
	require.Nil(t, err)

	_, err = app.UnscopedSafeGet("undefined")
	require.NotNil(t, err)
}

func TestUnscopedGetPanic(t *testing.T) {
	b, _ := NewBuilder()
	app := b.Build()

	require.Panics(t, func() {
		app.UnscopedGet("undefined")
	})
}

func TestUnscopedFill(t *testing.T) {
	b, _ := NewBuilder()

	b.Add(Def{
		Name:  "number",
		Scope: SubRequest,
		Build: func(ctn Container) (interface{}, error) {
			return 10, nil
		},
	})

	app := b.Build()

	var number int
	require.Nil(t, app.UnscopedFill("number", &number))
	require.Equal(t, 10, number)
}

func TestClean(t *testing.T) {
	b, _ := NewBuilder()

	closed := false

	b.Add(Def{
		Name:  "subReqObject",
		Scope: SubRequest,
		Build: func(ctn Container) (interface{}, error) {
			return &mockObject{}, nil
		},
		Close: func(obj interface{}) error {
			closed = true
			return nil
		},
	})

	app := b.Build()

	require.Nil(t, app.Clean(), "Clean should work on a container without an unscoped child")

	app.UnscopedGet("subReqObject")

	require.Nil(t, app.Clean())
	require.True(t, closed, "Clean should delete the unscoped child and close its objects")

	// a new unscoped child can be created afterwards
	obj, err := app.UnscopedSafeGet("subReqObject")
	require.Nil(t, err)
	require.NotNil(t, obj)
}

func TestUnscopedGetOnClosedContainer(t *testing.T) {
	b, _ := NewBuilder()

	b.Add(Def{
		Name:  "subReqObject",
		Scope: SubRequest,
		Build: func(ctn Container) (interface{}, error) {
			return &mockObject{}, nil
		},
	})

	app := b.Build()
	app.Delete()

	_, err := app.UnscopedSafeGet("subReqObject")
	require.NotNil(t, err)
}
