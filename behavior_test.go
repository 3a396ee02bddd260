package di

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptInCaching(t *testing.T) {
	monitor := &recordingMonitor{}

	b, _ := NewBuilder()
	b.WithMonitor(monitor)
	b.WithBehaviors(&OptInCaching{})

	b.Add([]Def{
		{
			Name:  "shared",
			Cache: true,
			Build: func(ctn Container) (interface{}, error) {
				return &mockObject{}, nil
			},
		},
		{
			Name: "fresh",
			Build: func(ctn Container) (interface{}, error) {
				return &mockObject{}, nil
			},
		},
	}...)

	app := b.Build()

	// the Cache marker is consumed by the behavior
	require.False(t, app.Definitions()["shared"].Cache)
	require.False(t, app.Definitions()["shared"].Unshared)
	require.True(t, app.Definitions()["fresh"].Unshared)

	shared1 := app.Get("shared")
	shared2 := app.Get("shared")
	require.True(t, shared1 == shared2)

	fresh1 := app.Get("fresh")
	fresh2 := app.Get("fresh")
	require.False(t, fresh1 == fresh2,
		"without the Cache marker the object should be built on every retrieval")

	require.Equal(t, []string{"shared:cached"}, monitor.Events(),
		"only the cached definition counts as a change")
}

func TestGoroutineLocalizingBehavior(t *testing.T) {
	monitor := &recordingMonitor{}

	b, _ := NewBuilder()
	b.WithMonitor(monitor)
	b.WithBehaviors(&GoroutineLocalizing{Mode: EnsureLocality})

	err := b.Add(Def{
		Name: "counter",
		Is:   []reflect.Type{InterfaceOf[Incrementable]()},
		Build: func(ctn Container) (interface{}, error) {
			return &mockCounter{}, nil
		},
	})
	require.Nil(t, err)

	err = b.Add(Def{
		Name: "no-capabilities",
		Build: func(ctn Container) (interface{}, error) {
			return &mockObject{}, nil
		},
	})
	require.NotNil(t, err, "EnsureLocality requires a capability set")

	app := b.Build()

	_, ok := app.Get("counter").(*Placeholder)
	require.True(t, ok, "the container should hold a placeholder, not the object")

	require.Equal(t, []string{"counter:goroutine-local-proxy"}, monitor.Events())
}

func TestGoroutineLocalizingDescriptor(t *testing.T) {
	require.Equal(t, "goroutine-local-proxy", (&GoroutineLocalizing{Mode: EnsureLocality}).Descriptor())
	require.Equal(t, "goroutine-local", (&GoroutineLocalizing{Mode: CallerEnsuresLocality}).Descriptor())
}

func TestBehaviorsCompose(t *testing.T) {
	b, _ := NewBuilder()
	b.WithBehaviors(
		&OptInCaching{},
		&GoroutineLocalizing{Mode: CallerEnsuresLocality},
	)

	err := b.Add(Def{
		Name: "object",
		Build: func(ctn Container) (interface{}, error) {
			return &mockObject{}, nil
		},
	})
	require.Nil(t, err)

	app := b.Build()
	require.True(t, app.Definitions()["object"].Unshared,
		"a goroutine-local definition is never cached by the container")
}
