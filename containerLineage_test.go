package di

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubContainer(t *testing.T) {
	b, _ := NewBuilder()
	app := b.Build()

	require.Equal(t, App, app.Scope())

	request, err := app.SubContainer()
	require.Nil(t, err)
	require.Equal(t, Request, request.Scope())

	subrequest, err := request.SubContainer()
	require.Nil(t, err)
	require.Equal(t, SubRequest, subrequest.Scope())

	_, err = subrequest.SubContainer()
	require.NotNil(t, err, "there is no narrower scope than the subrequest scope")
}

func TestParent(t *testing.T) {
	b, _ := NewBuilder()
	app := b.Build()
	request, _ := app.SubContainer()

	require.Equal(t, App, request.Parent().Scope())
}

func TestSubContainerOnClosedContainer(t *testing.T) {
	b, _ := NewBuilder()
	app := b.Build()
	app.Delete()

	_, err := app.SubContainer()
	require.NotNil(t, err, "should not create a sub-container of a closed container")
}

func TestScopesAreSharedWithSubContainers(t *testing.T) {
	b, _ := NewBuilder()
	app := b.Build()
	request, _ := app.SubContainer()

	require.Equal(t, []string{App, Request, SubRequest}, request.Scopes())
	require.Equal(t, []string{App}, request.ParentScopes())
	require.Equal(t, []string{SubRequest}, request.SubScopes())
}
