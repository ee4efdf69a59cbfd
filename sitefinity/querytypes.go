package sitefinity

// GetItemsQuery defines the OData query options for listing an entity set, e.g.
// GET /api/default/newsitems?$skip=50&$top=50&$count=true&$select=Content,Id
type GetItemsQuery struct {
	EntitySet string `url:"-"` // e.g. newsitems, images; required

	Skip   int      `url:"$skip,omitempty"`
	Take   int      `url:"$top,omitempty"`
	Count  bool     `url:"$count,omitempty"`         // ask for @odata.count in the response
	Fields []string `url:"$select,omitempty,comma"` // project only these fields
	Filter string   `url:"$filter,omitempty"`
}

type siteQuery struct {
	SiteID string `url:"sf_site,omitempty"`
}
