package sitefinity

// ItemsResponse is the OData collection envelope for content items.
type ItemsResponse struct {
	// Only present if the query asked for $count=true.
	TotalCount int    `json:"@odata.count"`
	Items      []Item `json:"value"`
}

type ImagesResponse struct {
	TotalCount int     `json:"@odata.count"`
	Images     []Image `json:"value"`
}
