package command

import (
	"context"
	"testing"

	"github.com/bhandras/rfext/internal/manifest"
	"github.com/bhandras/rfext/internal/response"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error) {
	return response.Ack(), nil
}

func TestRegistryRegisterLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Command{Name: "a", Handle: noop}))

	cmd, ok := r.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "a", cmd.Name)

	_, ok = r.Lookup("b")
	require.False(t, ok)
}

func TestRegistryRejectsBadCommands(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Command{Name: "a", Handle: noop}))

	require.Error(t, r.Register(Command{Name: "a", Handle: noop}))
	require.Error(t, r.Register(Command{Name: " ", Handle: noop}))
	require.Error(t, r.Register(Command{Name: "c"}))
}

func TestBuiltinsCoverDefaultManifest(t *testing.T) {
	r, err := NewBuiltinRegistry()
	require.NoError(t, err)

	m := manifest.Default(manifest.Identity{BaseURL: "http://ext.test"})
	require.NoError(t, r.CheckDeclared(m.ActionNames()))
	require.ElementsMatch(t, m.ActionNames(), r.Names())

	err = r.CheckDeclared([]string{"notify", "missing_one"})
	require.ErrorContains(t, err, "missing_one")
}
