package migrate

import (
	"regexp"

	"github.com/google/uuid"
)

// Old-scheme image URLs carry the original image ID in a placeholder like:
//
//	Item with ID: '1eb77cf8-a54a-471b-917b-818adef56ce7'
var legacyIDPattern = regexp.MustCompile(`Item with ID: '([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})'`)

// ImageReference is what we know about one <img> before resolving it.
type ImageReference struct {
	Title    string // title attribute, else alt text; may be empty
	LegacyID uuid.NullUUID
}

// LegacyID pulls the old image ID out of a src attribute, if it has one.
func LegacyID(src string) uuid.NullUUID {
	m := legacyIDPattern.FindStringSubmatch(src)
	if m == nil {
		return uuid.NullUUID{}
	}
	id, err := uuid.Parse(m[1])
	if err != nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: id, Valid: true}
}

// Reference describes a single image element.
func Reference(img ImageElement) ImageReference {
	ref := ImageReference{}

	if title, ok := img.Attr("title"); ok && title != "" {
		ref.Title = title
	} else if alt, ok := img.Attr("alt"); ok {
		ref.Title = alt
	}

	if src, ok := img.Attr("src"); ok {
		ref.LegacyID = LegacyID(src)
	}

	return ref
}

// Extract returns one reference per <img> in the document, in document order.
func Extract(doc Document) []ImageReference {
	images := doc.Images()
	refs := make([]ImageReference, 0, len(images))
	for _, img := range images {
		refs = append(refs, Reference(img))
	}
	return refs
}

// ExtractHTML parses text with goquery and extracts its image references.
func ExtractHTML(text string) ([]ImageReference, error) {
	doc, err := GoqueryParser{}.Parse(text)
	if err != nil {
		return nil, err
	}
	return Extract(doc), nil
}
