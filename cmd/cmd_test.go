package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"order-manager/core/events"
	"order-manager/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDestructiveAction(t *testing.T) {
	tests := []struct {
		name  string
		yes   bool
		input string
		want  bool
	}{
		{"Flag", true, "", true},
		{"Typed Yes", false, "yes\n", true},
		{"Typed Yes No Newline", false, "yes", true},
		{"Typed No", false, "no\n", false},
		{"Empty", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yesConfirm = tt.yes
			t.Cleanup(func() { yesConfirm = false })

			var out bytes.Buffer
			assert.Equal(t, tt.want, confirmDestructiveAction(strings.NewReader(tt.input), &out))
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestBootstrap_FileBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", store.BackendFile)
	t.Setenv("STORE_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	rt, err := bootstrap(context.Background(), true)
	require.NoError(t, err)
	defer rt.close()

	assert.Nil(t, rt.db)
	assert.Nil(t, rt.storage)
	assert.IsType(t, events.Nop{}, rt.publisher)
	require.NoError(t, rt.store.Ping(context.Background()))

	deps := rt.healthDeps()
	assert.Equal(t, rt.store, deps.Store)
	assert.Nil(t, deps.DB)
}

func TestBootstrap_SQLBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", store.BackendSQL)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_NAME", ":memory:")
	t.Setenv("LOG_LEVEL", "error")

	rt, err := bootstrap(context.Background(), false)
	require.NoError(t, err)
	defer rt.close()

	assert.NotNil(t, rt.db)
	require.NoError(t, rt.store.Ping(context.Background()))
}

func TestBootstrap_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "tape")

	_, err := bootstrap(context.Background(), false)
	assert.EqualError(t, err, `unknown store backend "tape"`)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"start", "reconcile", "seed", "check"} {
		assert.True(t, names[want], want)
	}
}
