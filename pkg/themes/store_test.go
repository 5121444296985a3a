package themes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

var testStore = Store{
	"0b24d02d-b2a9-4481-b0a7-c0419e2c0e66": {Name: "Super Url Bar", Version: "1.0.0"},
	"f4866f39-cfd6-4498-a99e-bb1e524b6a1a": {Name: "Floating Status Bar", Version: "2.1.0"},
}

func TestResolve_ByID(t *testing.T) {
	id, theme, fuzzy, ok := testStore.Resolve("0b24d02d-b2a9-4481-b0a7-c0419e2c0e66", "")
	require.True(t, ok)
	assert.False(t, fuzzy)
	assert.Equal(t, "0b24d02d-b2a9-4481-b0a7-c0419e2c0e66", id)
	assert.Equal(t, "Super Url Bar", theme.Name)
}

func TestResolve_ByExactName(t *testing.T) {
	id, theme, fuzzy, ok := testStore.Resolve("", "Floating Status Bar")
	require.True(t, ok)
	assert.False(t, fuzzy)
	assert.Equal(t, "f4866f39-cfd6-4498-a99e-bb1e524b6a1a", id)
	assert.Equal(t, "Floating Status Bar", theme.Name)
}

func TestResolve_ByCloseName(t *testing.T) {
	// One substitution away from "Super Url Bar".
	_, theme, fuzzy, ok := testStore.Resolve("", "Super Url bar")
	require.True(t, ok)
	assert.True(t, fuzzy)
	assert.Equal(t, "Super Url Bar", theme.Name)
}

func TestResolve_TooFarName(t *testing.T) {
	_, _, _, ok := testStore.Resolve("", "Completely Different")
	assert.False(t, ok)
}

func TestResolve_UnknownIDFallsBackToName(t *testing.T) {
	_, theme, _, ok := testStore.Resolve("not-a-real-id", "Super Url Bar")
	require.True(t, ok)
	assert.Equal(t, "Super Url Bar", theme.Name)
}

func TestResolve_NothingConfigured(t *testing.T) {
	_, _, _, ok := testStore.Resolve("", "")
	assert.False(t, ok)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"abc": {"name": "Test Theme", "version": "0.1.0"}}`))
	}))
	defer srv.Close()

	store, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.Len(t, store, 1)
	assert.Equal(t, "Test Theme", store["abc"].Name)
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.True(t, zenerrors.IsCode(err, zenerrors.ErrCodeUnavailable))
}

func TestInstallPageURL(t *testing.T) {
	assert.Equal(t, "https://zen-browser.app/mods/abc/", InstallPageURL("abc"))
}
