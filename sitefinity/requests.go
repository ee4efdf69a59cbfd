package sitefinity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AccessKeyHeader carries the access key on every request.
const AccessKeyHeader = "X-SF-Access-Key"

func (api *API) GetItems(ctx context.Context, opts GetItemsQuery) (*ItemsResponse, error) {
	ep, err := api.getItemsEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't get items endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't perform request: %w", err)
	}

	var items ItemsResponse

	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't parse json response: %w", err)
	}

	return &items, nil
}

// QueryImages lists images matching an OData $filter, asking for at most take results.
func (api *API) QueryImages(ctx context.Context, filter string, take int) ([]Image, error) {
	ep, err := api.getItemsEndpoint(GetItemsQuery{
		EntitySet: "images",
		Filter:    filter,
		Take:      take,
	})
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't get images endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't perform request: %w", err)
	}

	var images ImagesResponse

	if err := json.Unmarshal(body, &images); err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't parse json response: %w", err)
	}

	return images.Images, nil
}

// UpdateItem PATCHes every field of item except the identifier and OData annotations.
func (api *API) UpdateItem(ctx context.Context, entitySet string, item Item) error {
	ep, err := api.getItemEndpoint(entitySet, item.ID())
	if err != nil {
		return fmt.Errorf("sitefinity: couldn't get item endpoint: %w", err)
	}

	payload := map[string]any{}
	for k, v := range item {
		if k == IDField || strings.HasPrefix(k, "@odata.") {
			continue
		}
		payload[k] = v
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sitefinity: couldn't marshal item %s: %w", item.ID(), err)
	}

	if _, err := api.request(ctx, http.MethodPatch, ep, data); err != nil {
		return fmt.Errorf("sitefinity: couldn't update item %s: %w", item.ID(), err)
	}

	return nil
}

// CurrentSite returns the site the API is pointed at.
func (api *API) CurrentSite(ctx context.Context) (*Site, error) {
	ep, err := api.getSiteEndpoint(api.SiteID)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't get site endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't perform http request: %w", err)
	}

	var site Site
	if err := json.Unmarshal(body, &site); err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't parse json response: %w", err)
	}

	return &site, nil
}

// Request implements the basic Request function
func (api *API) request(ctx context.Context, method string, url *url.URL, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(AccessKeyHeader, api.accessKey)

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("sitefinity: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusPartialContent, http.StatusNoContent, http.StatusResetContent:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("sitefinity: authentication failed: %s", response.Status)
	case http.StatusNotFound:
		return nil, fmt.Errorf("sitefinity: not found: %s: %s", response.Status, url.String())
	case http.StatusServiceUnavailable:
		return nil, fmt.Errorf("sitefinity: service is not available: %s", response.Status)
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("sitefinity: internal server error: %s", response.Status)
	case http.StatusConflict:
		return nil, fmt.Errorf("sitefinity: conflict: %s", response.Status)
	}

	return nil, fmt.Errorf("sitefinity: unknown HTTP response status: %s: %s", response.Status, url.String())
}
