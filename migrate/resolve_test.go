package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/sitefinity-updater/sitefinity"
)

type imageCall struct {
	filter string
	take   int
}

type fakeImages struct {
	images []sitefinity.Image
	err    error
	calls  []imageCall
}

func (f *fakeImages) QueryImages(ctx context.Context, filter string, take int) ([]sitefinity.Image, error) {
	f.calls = append(f.calls, imageCall{filter: filter, take: take})
	if f.err != nil {
		return nil, f.err
	}
	return f.images, nil
}

func TestImageFilter(t *testing.T) {
	id := uuid.MustParse(targetA)

	assert.Equal(t, "", ImageFilter(nil, nil))
	assert.Equal(t, "Title in ('Logo','O''Brien')", ImageFilter([]string{"Logo", "O'Brien"}, nil))
	assert.Equal(t, "Id in ("+targetA+")", ImageFilter(nil, []uuid.UUID{id}))
	assert.Equal(t,
		"Title in ('Logo') or Id in ("+targetA+","+targetB+")",
		ImageFilter([]string{"Logo"}, []uuid.UUID{id, uuid.MustParse(targetB)}))
}

func TestResolveWithoutReferencesSkipsQuery(t *testing.T) {
	images := &fakeImages{}
	r := Resolver{Images: images}

	res, err := r.Resolve(context.Background(), []ImageReference{{Title: "   "}, {}})
	require.NoError(t, err)

	assert.Empty(t, images.calls)
	assert.Empty(t, res.Images())
	_, ok := res.Lookup(ImageReference{Title: "Logo"})
	assert.False(t, ok)
}

func TestResolveBuildsOneQuery(t *testing.T) {
	images := &fakeImages{}
	r := Resolver{
		Images: images,
		Mapping: NewMapping([]ImageMapping{
			{SourceID: uuid.MustParse(sourceA), TargetIDRaw: targetA},
		}),
	}

	refs := []ImageReference{
		{Title: "Logo", LegacyID: uuid.NullUUID{UUID: uuid.MustParse(sourceA), Valid: true}},
		{Title: "Banner"},
		{Title: "Logo"},
		{Title: "Footer", LegacyID: uuid.NullUUID{UUID: uuid.MustParse(sourceB), Valid: true}},
	}
	_, err := r.Resolve(context.Background(), refs)
	require.NoError(t, err)

	require.Len(t, images.calls, 1)
	assert.Equal(t, "Title in ('Banner','Footer','Logo') or Id in ("+targetA+")", images.calls[0].filter)
	assert.Equal(t, 3, images.calls[0].take)
}

func TestResolveQueryFailure(t *testing.T) {
	boom := errors.New("boom")
	r := Resolver{Images: &fakeImages{err: boom}}

	_, err := r.Resolve(context.Background(), []ImageReference{{Title: "Logo"}})
	assert.ErrorIs(t, err, boom)
}

func TestLookupPrefersMappedTarget(t *testing.T) {
	logger := &recordingLogger{}
	r := Resolver{
		Images: &fakeImages{images: []sitefinity.Image{
			{ID: targetB, Title: "Logo", URL: "/images/by-title.png"},
			{ID: targetA, Title: "Something else", URL: "/images/mapped.png"},
		}},
		Mapping: NewMapping([]ImageMapping{
			{SourceID: uuid.MustParse(sourceA), TargetIDRaw: targetA},
		}),
		Logger: logger,
	}
	ref := ImageReference{Title: "Logo", LegacyID: uuid.NullUUID{UUID: uuid.MustParse(sourceA), Valid: true}}

	res, err := r.Resolve(context.Background(), []ImageReference{ref})
	require.NoError(t, err)

	img, ok := res.Lookup(ref)
	require.True(t, ok)
	assert.Equal(t, "/images/mapped.png", img.URL)
	assert.True(t, logger.contains("Mapped source ID "+sourceA+" to target ID "+targetA))
}

func TestLookupSingleCandidate(t *testing.T) {
	r := Resolver{Images: &fakeImages{images: []sitefinity.Image{
		{ID: targetB, Title: "Unrelated", URL: "/images/only.png"},
	}}}

	res, err := r.Resolve(context.Background(), []ImageReference{{Title: "Logo"}})
	require.NoError(t, err)

	img, ok := res.Lookup(ImageReference{Title: "Logo"})
	require.True(t, ok)
	assert.Equal(t, "/images/only.png", img.URL)
}

func TestLookupByTitleOrLegacyID(t *testing.T) {
	r := Resolver{Images: &fakeImages{images: []sitefinity.Image{
		{ID: targetA, Title: "Logo", URL: "/images/logo.png"},
		{ID: sourceB, Title: "Kept its ID", URL: "/images/kept.png"},
	}}}
	byTitle := ImageReference{Title: "Logo"}
	byID := ImageReference{LegacyID: uuid.NullUUID{UUID: uuid.MustParse(sourceB), Valid: true}}
	nothing := ImageReference{Title: "Missing"}

	res, err := r.Resolve(context.Background(), []ImageReference{byTitle, byID, nothing})
	require.NoError(t, err)

	img, ok := res.Lookup(byTitle)
	require.True(t, ok)
	assert.Equal(t, "/images/logo.png", img.URL)

	img, ok = res.Lookup(byID)
	require.True(t, ok)
	assert.Equal(t, "/images/kept.png", img.URL)

	_, ok = res.Lookup(nothing)
	assert.False(t, ok)

	// blank titles never match by title
	_, ok = res.Lookup(ImageReference{})
	assert.False(t, ok)
}
