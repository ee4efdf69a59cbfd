package migrate

import "github.com/toothbrush/sitefinity-updater/sitefinity"

// The old editor marks images it couldn't resolve with an sfref attribute.
const sfrefAttr = "sfref"

// Rewrite points img at the replacement image and drops its sfref marker.
func Rewrite(img ImageElement, asset sitefinity.Image) bool {
	img.SetAttr("src", asset.URL)
	img.RemoveAttr(sfrefAttr)
	return true
}
