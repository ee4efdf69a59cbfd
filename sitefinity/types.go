package sitefinity

import "fmt"

// Item is a content item as returned by the OData service.  Its shape depends entirely on the
// content type and on the $select projection, so we keep it loosely typed.
type Item map[string]any

// IDField is the key of the identifier on every Sitefinity item.
const IDField = "Id"

func (i Item) ID() string {
	return i.String(IDField)
}

// String returns the field as text, or "" if it's missing or null.
func (i Item) String(field string) string {
	v, ok := i[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (i Item) Set(field string, value string) {
	i[field] = value
}

// See ImageDto in the Sitefinity REST SDK.  We only need enough of it to swap a src attribute.
type Image struct {
	ID    string `json:"Id"`
	Title string `json:"Title"`
	URL   string `json:"Url"`
}

type Site struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}
