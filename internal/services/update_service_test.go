package services_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppanel/internal/repos"
	"shoppanel/internal/services"
)

func newSettings(t *testing.T) *repos.SettingsRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	return repos.NewSettingsRepo(db)
}

func TestUpdateCheck_NewVersionAndDismiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":"1.4.0","notes":"bug fixes","url":"https://example.test/rel/1.4.0"}`))
	}))
	defer srv.Close()

	settings := newSettings(t)
	svc := services.NewUpdateService(settings, "1.3.2", srv.URL)

	st := svc.Check()
	assert.Empty(t, st.Error)
	assert.Equal(t, "1.3.2", st.Current)
	assert.Equal(t, "1.4.0", st.Latest)
	assert.True(t, st.Available)
	assert.False(t, st.Dismissed)
	assert.Equal(t, "bug fixes", st.Notes)

	require.NoError(t, svc.Dismiss("1.4.0"))
	st = svc.Check()
	assert.True(t, st.Available)
	assert.True(t, st.Dismissed)

	// a newer release surfaces the banner again even after a dismiss
	svc2 := services.NewUpdateService(settings, "1.3.2", srv.URL)
	require.NoError(t, svc2.Dismiss("1.3.9"))
	st = svc2.Check()
	assert.True(t, st.Available)
	assert.False(t, st.Dismissed)
}

func TestUpdateCheck_TagNameShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.test/v2"}`))
	}))
	defer srv.Close()

	svc := services.NewUpdateService(newSettings(t), "v2.0.0", srv.URL)
	st := svc.Check()
	assert.Empty(t, st.Error)
	assert.Equal(t, "v2.0.0", st.Latest)
	assert.False(t, st.Available, "same version means no notice")
	assert.Equal(t, "https://example.test/v2", st.URL)
}

func TestUpdateCheck_SoftFailures(t *testing.T) {
	svc := services.NewUpdateService(newSettings(t), "1.0.0", "")
	st := svc.Check()
	assert.Equal(t, "update_api_unconfigured", st.Error)
	assert.False(t, st.Available)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc = services.NewUpdateService(newSettings(t), "1.0.0", srv.URL)
	st = svc.Check()
	assert.Equal(t, "update_request_failed_502", st.Error)

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"irrelevant":true}`))
	}))
	defer srv2.Close()

	svc = services.NewUpdateService(newSettings(t), "1.0.0", srv2.URL)
	st = svc.Check()
	assert.Equal(t, "update_version_missing", st.Error)
}

func TestUpdateDismiss_RequiresVersion(t *testing.T) {
	svc := services.NewUpdateService(newSettings(t), "1.0.0", "")
	assert.Error(t, svc.Dismiss("   "))
}
