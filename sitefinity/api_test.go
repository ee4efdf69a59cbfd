package sitefinity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSite = "4c003fb0-2a77-61ec-be54-ff00007864f4"

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := NewAPI(Config{
		URL:       srv.URL + "/api/default",
		AccessKey: "secret",
		SiteID:    uuid.MustParse(testSite),
	})
	require.NoError(t, err)
	return api
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "http://x/api/default/", NormalizeURL("http://x/api/default"))
	assert.Equal(t, "http://x/api/default/", NormalizeURL("http://x/api/default/"))
	assert.Equal(t, "http://x/api/default/", NormalizeURL("http://x/api/default//"))
	assert.Equal(t, NormalizeURL("http://x/a"), NormalizeURL(NormalizeURL("http://x/a")))
}

func TestNewAPIRequiresCredentials(t *testing.T) {
	_, err := NewAPI(Config{AccessKey: "secret"})
	assert.ErrorContains(t, err, "--site-url")

	_, err = NewAPI(Config{URL: "http://x/api/default"})
	assert.ErrorContains(t, err, "--access-key")
}

func TestGetItems(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/default/newsitems", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(AccessKeyHeader))

		q := r.URL.Query()
		assert.Equal(t, "50", q.Get("$skip"))
		assert.Equal(t, "50", q.Get("$top"))
		assert.Equal(t, "true", q.Get("$count"))
		assert.Equal(t, "Content,Id", q.Get("$select"))
		assert.Equal(t, testSite, q.Get("sf_site"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"@odata.count": 51, "value": [{"Id": "abc", "Content": "<p>hi</p>"}]}`)
	})

	resp, err := api.GetItems(context.Background(), GetItemsQuery{
		EntitySet: "newsitems",
		Skip:      50,
		Take:      50,
		Count:     true,
		Fields:    []string{"Content", IDField},
	})
	require.NoError(t, err)

	assert.Equal(t, 51, resp.TotalCount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "abc", resp.Items[0].ID())
	assert.Equal(t, "<p>hi</p>", resp.Items[0].String("Content"))
}

func TestGetItemsNeedsEntitySet(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL)
	})

	_, err := api.GetItems(context.Background(), GetItemsQuery{})
	assert.Error(t, err)
}

func TestQueryImages(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/default/images", r.URL.Path)
		assert.Equal(t, "Title in ('Logo')", r.URL.Query().Get("$filter"))
		assert.Equal(t, "1", r.URL.Query().Get("$top"))

		io.WriteString(w, `{"value": [{"Id": "img-1", "Title": "Logo", "Url": "/images/logo.png"}]}`)
	})

	images, err := api.QueryImages(context.Background(), "Title in ('Logo')", 1)
	require.NoError(t, err)
	assert.Equal(t, []Image{{ID: "img-1", Title: "Logo", URL: "/images/logo.png"}}, images)
}

func TestUpdateItem(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/default/newsitems(abc)", r.URL.Path)
		assert.Equal(t, testSite, r.URL.Query().Get("sf_site"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"Content": "<p>new</p>"}, body)

		w.WriteHeader(http.StatusNoContent)
	})

	err := api.UpdateItem(context.Background(), "newsitems", Item{
		"Id":          "abc",
		"@odata.etag": "W/\"1\"",
		"Content":     "<p>new</p>",
	})
	assert.NoError(t, err)
}

func TestCurrentSite(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/default/sites("+testSite+")", r.URL.Path)
		io.WriteString(w, `{"Id": "`+testSite+`", "Name": "Corporate"}`)
	})

	site, err := api.CurrentSite(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Corporate", site.Name)
}

func TestWithSiteKeepsOriginal(t *testing.T) {
	api, err := NewAPI(Config{URL: "http://x/api/default", AccessKey: "k"})
	require.NoError(t, err)

	other := api.WithSite(uuid.MustParse(testSite))
	assert.Equal(t, uuid.Nil, api.SiteID)
	assert.Equal(t, testSite, other.SiteID.String())
	assert.Same(t, api.Client, other.Client)

	ep, err := api.getItemsEndpoint(GetItemsQuery{EntitySet: "newsitems"})
	require.NoError(t, err)
	assert.Equal(t, "http://x/api/default/newsitems", ep.String())
}

func TestRequestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, "authentication failed"},
		{http.StatusForbidden, "authentication failed"},
		{http.StatusNotFound, "not found"},
		{http.StatusConflict, "conflict"},
		{http.StatusInternalServerError, "internal server error"},
		{http.StatusServiceUnavailable, "service is not available"},
		{http.StatusTeapot, "unknown HTTP response status"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := api.CurrentSite(context.Background())
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
