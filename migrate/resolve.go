package migrate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/toothbrush/sitefinity-updater/sitefinity"
	"golang.org/x/exp/maps"
)

// ImageQuerier finds images by OData filter.  *sitefinity.API implements it.
type ImageQuerier interface {
	QueryImages(ctx context.Context, filter string, take int) ([]sitefinity.Image, error)
}

// Resolver turns image references into replacement images, with a single query per batch of
// references.
type Resolver struct {
	Images  ImageQuerier
	Mapping *Mapping
	Logger  Logger
}

// Resolution is the outcome of one query; Lookup picks the replacement for a reference.
type Resolution struct {
	images  []sitefinity.Image
	mapping *Mapping
	logger  Logger
}

// Resolve looks up every image the references could resolve to: anything with one of their titles,
// or whose ID is a mapped target of one of their legacy IDs.
//
// The query asks for max(#titles, #targets) results.  When both sets are big and match different
// images that can undercount, and the extra matches are silently dropped.
func (r *Resolver) Resolve(ctx context.Context, refs []ImageReference) (*Resolution, error) {
	logger := orNop(r.Logger)
	res := &Resolution{mapping: r.Mapping, logger: logger}

	titleSet := map[string]struct{}{}
	targetSet := map[uuid.UUID]struct{}{}
	for _, ref := range refs {
		if ref.LegacyID.Valid {
			if target, ok := r.Mapping.Target(ref.LegacyID.UUID); ok {
				targetSet[target] = struct{}{}
			}
		}
		if strings.TrimSpace(ref.Title) != "" {
			titleSet[ref.Title] = struct{}{}
		}
	}

	titles := maps.Keys(titleSet)
	sort.Strings(titles)
	targets := maps.Keys(targetSet)
	sort.Slice(targets, func(i, j int) bool { return targets[i].String() < targets[j].String() })

	filter := ImageFilter(titles, targets)
	if filter == "" {
		return res, nil
	}

	take := max(len(titles), len(targets))
	images, err := r.Images.QueryImages(ctx, filter, take)
	if err != nil {
		return nil, fmt.Errorf("migrate: image lookup failed: %w", err)
	}
	logger.Info("Found %d images from %d title(s) and %d target ID(s).", len(images), len(titles), len(targets))

	res.images = images
	return res, nil
}

// ImageFilter builds `Title in ('a','b') or Id in (x,y)`, leaving out whichever half is empty.
func ImageFilter(titles []string, ids []uuid.UUID) string {
	parts := []string{}

	if len(titles) > 0 {
		quoted := make([]string, 0, len(titles))
		for _, t := range titles {
			quoted = append(quoted, "'"+strings.ReplaceAll(t, "'", "''")+"'")
		}
		parts = append(parts, fmt.Sprintf("Title in (%s)", strings.Join(quoted, ",")))
	}

	if len(ids) > 0 {
		strs := make([]string, 0, len(ids))
		for _, id := range ids {
			strs = append(strs, id.String())
		}
		parts = append(parts, fmt.Sprintf("Id in (%s)", strings.Join(strs, ",")))
	}

	return strings.Join(parts, " or ")
}

// Images returns what the query came back with.
func (res *Resolution) Images() []sitefinity.Image {
	return res.images
}

// Lookup picks the replacement for ref.  First match wins:
//
//  1. the CSV maps ref's legacy ID to a target, and that target came back;
//  2. exactly one image came back at all;
//  3. an image has ref's (non-blank) title, or ref's legacy ID as its ID.
func (res *Resolution) Lookup(ref ImageReference) (sitefinity.Image, bool) {
	if ref.LegacyID.Valid {
		if target, ok := res.mapping.Target(ref.LegacyID.UUID); ok {
			for _, img := range res.images {
				if img.ID == target.String() {
					res.logger.Info("  Mapped source ID %s to target ID %s", ref.LegacyID.UUID, target)
					return img, true
				}
			}
		}
	}

	if len(res.images) == 1 {
		return res.images[0], true
	}

	for _, img := range res.images {
		if strings.TrimSpace(ref.Title) != "" && img.Title == ref.Title {
			return img, true
		}
		if ref.LegacyID.Valid && img.ID == ref.LegacyID.UUID.String() {
			return img, true
		}
	}

	return sitefinity.Image{}, false
}
