package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateBoundary_Polygon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Nevada, USA", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("polygon_geojson"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Write([]byte(`[{"display_name":"Nevada, USA","geojson":
			{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,2],[0,0]]]}}]`))
	}))
	defer srv.Close()

	mp, err := NewClient(srv.URL).StateBoundary(context.Background(), "Nevada")
	require.NoError(t, err)

	// a bare polygon is promoted to a single-member multipolygon
	require.Len(t, mp, 1)
	assert.Equal(t, orb.Point{0, 0}, mp.Bound().Min)
	assert.Equal(t, orb.Point{2, 2}, mp.Bound().Max)
}

func TestStateBoundary_MultiPolygon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"geojson":{"type":"MultiPolygon","coordinates":
			[[[[0,0],[1,0],[1,1],[0,1],[0,0]]],[[[2,2],[3,2],[3,3],[2,3],[2,2]]]]}}]`))
	}))
	defer srv.Close()

	mp, err := NewClient(srv.URL).StateBoundary(context.Background(), "Michigan")
	require.NoError(t, err)
	assert.Len(t, mp, 2)
}

func TestStateBoundary_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).StateBoundary(context.Background(), "Atlantis")
	assert.ErrorContains(t, err, "no geocoding result")
}

func TestStateBoundary_NonPolygonGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"geojson":{"type":"Point","coordinates":[1,2]}}]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).StateBoundary(context.Background(), "Texas")
	assert.ErrorContains(t, err, "unexpected boundary geometry")
}

func TestStateBoundary_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).StateBoundary(context.Background(), "Texas")
	assert.ErrorContains(t, err, "status 503")
}
