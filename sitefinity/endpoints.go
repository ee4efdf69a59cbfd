package sitefinity

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// getItemsEndpoint returns the OData collection endpoint for an entity set, e.g.
// /api/default/newsitems?$top=50
func (a *API) getItemsEndpoint(opts GetItemsQuery) (*url.URL, error) {
	if opts.EntitySet == "" {
		return nil, fmt.Errorf("sitefinity: please provide an entity set to list items")
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't encode query params: %w", err)
	}

	return a.resolveEndpoint(opts.EntitySet, v)
}

// getItemEndpoint returns the OData entity endpoint for one item, e.g.
// /api/default/newsitems(1eb77cf8-a54a-471b-917b-818adef56ce7)
func (a *API) getItemEndpoint(entitySet string, id string) (*url.URL, error) {
	if entitySet == "" {
		return nil, fmt.Errorf("sitefinity: please provide an entity set to address an item")
	}
	if id == "" {
		return nil, fmt.Errorf("sitefinity: please provide an item ID")
	}

	return a.resolveEndpoint(fmt.Sprintf("%s(%s)", entitySet, id), url.Values{})
}

// getSiteEndpoint returns the endpoint describing one site of a multisite install.
func (a *API) getSiteEndpoint(siteID uuid.UUID) (*url.URL, error) {
	if siteID == uuid.Nil {
		return nil, fmt.Errorf("sitefinity: please provide a site ID")
	}

	return a.resolveEndpoint(fmt.Sprintf("sites(%s)", siteID), url.Values{})
}

// Resolve the endpoint relative to the base URI, and tack on the site selector that every
// request needs.
func (a *API) resolveEndpoint(endpoint string, params url.Values) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: failed to parse endpoint ref: %w", err)
	}

	site := siteQuery{}
	if a.SiteID != uuid.Nil {
		site.SiteID = a.SiteID.String()
	}
	sv, err := query.Values(site)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't encode site param: %w", err)
	}
	for k, vs := range sv {
		params[k] = vs
	}

	ep := a.BaseURI.ResolveReference(ref)
	ep.RawQuery = params.Encode()

	return ep, nil
}
