package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStable(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"2.1.1", true},
		{"0.0.1", true},
		{"2.1.0-rc.4", false},
		{"1.9.0-beta.1", false},
		{"2.0.0-alpha", false},
		{"2.0.0-dev", false},
		{"2.0.0-next.3", false},
		{"v2.1.1", false},
		{"2.1", false},
		{"2.1.1.1", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsStable(tt.version), "version %q", tt.version)
	}
}

func TestFilterStable(t *testing.T) {
	got := FilterStable([]string{"2.1.1", "2.1.0", "2.1.0-rc.4", "2.0.0", "1.9.0-beta.1"})
	assert.Equal(t, []string{"2.1.1", "2.1.0", "2.0.0"}, got)
}

// testClient serves fixed metadata for package p5.
func testClient(t *testing.T, latest string, versions []string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/package/npm/p5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"tags":{"latest":%q},"versions":[`, latest)
		for i, v := range versions {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, "%q", v)
		}
		fmt.Fprint(w, "]}")
	}))
	t.Cleanup(srv.Close)

	c := NewClient()
	c.BaseURL = srv.URL
	return c
}

func TestListVersions(t *testing.T) {
	c := testClient(t, "2.1.1", []string{"2.1.1", "2.1.0", "2.1.0-rc.4", "2.0.0", "1.9.0-beta.1"})

	t.Run("stable only", func(t *testing.T) {
		catalog, err := c.ListVersions(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "2.1.1", catalog.Latest)
		assert.Equal(t, []string{"2.1.1", "2.1.0", "2.0.0"}, catalog.Versions)
	})

	t.Run("including prereleases", func(t *testing.T) {
		catalog, err := c.ListVersions(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, []string{"2.1.1", "2.1.0", "2.1.0-rc.4", "2.0.0", "1.9.0-beta.1"}, catalog.Versions)
	})
}

func TestLatestStable(t *testing.T) {
	t.Run("latest tag is stable", func(t *testing.T) {
		c := testClient(t, "2.1.1", []string{"2.1.1", "2.1.0"})
		got, err := c.LatestStable(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2.1.1", got)
	})

	t.Run("latest tag is a prerelease", func(t *testing.T) {
		c := testClient(t, "2.2.0-rc.1", []string{"2.2.0-rc.1", "2.1.1", "2.1.0"})
		got, err := c.LatestStable(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2.1.1", got)
	})

	t.Run("no stable versions", func(t *testing.T) {
		c := testClient(t, "0.1.0-alpha", []string{"0.1.0-alpha"})
		_, err := c.LatestStable(context.Background())
		require.Error(t, err)

		var rerr *RegistryError
		assert.ErrorAs(t, err, &rerr)
	})
}

func TestResolve(t *testing.T) {
	c := testClient(t, "2.1.1", []string{"2.1.1", "2.1.0", "2.0.2", "2.0.0", "1.11.3", "1.9.0"})

	tests := []struct {
		name    string
		request string
		want    string
		wantErr bool
	}{
		{name: "latest keyword", request: "latest", want: "2.1.1"},
		{name: "empty request", request: "", want: "2.1.1"},
		{name: "exact version", request: "1.9.0", want: "1.9.0"},
		{name: "partial major.minor", request: "2.0", want: "2.0.2"},
		{name: "partial major", request: "1", want: "1.11.3"},
		{name: "no match", request: "9.9.9", wantErr: true},
		{name: "partial prefix must align on segments", request: "2.1.1.1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Resolve(context.Background(), tt.request, false)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListVersionsErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewClient()
		c.BaseURL = srv.URL
		_, err := c.ListVersions(context.Background(), false)
		require.Error(t, err)

		var rerr *RegistryError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, http.StatusBadGateway, rerr.StatusCode)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}))
		defer srv.Close()

		c := NewClient()
		c.BaseURL = srv.URL
		_, err := c.ListVersions(context.Background(), false)
		require.Error(t, err)
	})
}
