package sitefinity

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Config is the credential bundle needed to talk to one Sitefinity site.
type Config struct {
	// Base URL of the REST service, e.g. http://localhost:8080/api/default/
	URL       string
	AccessKey string
	SiteID    uuid.UUID
}

// NormalizeURL makes sure the service URL ends with exactly one slash, so that relative endpoints
// resolve underneath it rather than replacing its last segment.
func NormalizeURL(raw string) string {
	return strings.TrimRight(raw, "/") + "/"
}

func NewAPI(config Config) (*API, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("sitefinity: configure your site url with --site-url")
	}
	if config.AccessKey == "" {
		return nil, fmt.Errorf("sitefinity: configure your access key with --access-key")
	}

	u, err := url.ParseRequestURI(NormalizeURL(config.URL))
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI:   u,
		SiteID:    config.SiteID,
		accessKey: config.AccessKey,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Where the OData service lives, always with a trailing slash.
	BaseURI *url.URL

	// Sent as sf_site on every request, unless it's the zero UUID.
	SiteID uuid.UUID

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	accessKey string
}

// WithSite returns a copy of the API pointed at a different site, sharing the HTTP client.
func (api *API) WithSite(siteID uuid.UUID) *API {
	clone := *api
	clone.SiteID = siteID
	return &clone
}
