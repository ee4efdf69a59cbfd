package migrate

import (
	"context"
	"fmt"

	"github.com/toothbrush/sitefinity-updater/sitefinity"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize is how many items we fetch (and write back) at a time.
const DefaultPageSize = 50

// ContentAPI is the slice of the Sitefinity REST API the processor needs.  *sitefinity.API
// implements it.
type ContentAPI interface {
	GetItems(ctx context.Context, opts sitefinity.GetItemsQuery) (*sitefinity.ItemsResponse, error)
	UpdateItem(ctx context.Context, entitySet string, item sitefinity.Item) error
	ImageQuerier
}

// Processor walks every item of a content type, rewrites the image references in one of its
// rich-text fields, and writes changed items back a page at a time.
type Processor struct {
	API     ContentAPI
	Mapping *Mapping
	Parser  Parser // defaults to GoqueryParser
	Logger  Logger

	// How many items to parse, or write, concurrently within a page.
	Workers  int
	PageSize int

	// Show a progress bar over all items.  Ignored in test mode.
	Progress bool

	// If set, test mode prints each rewritten field as Markdown.
	Preview *Previewer
}

type pagePosition struct {
	page int
	skip int
}

// parsedItem is the per-item outcome of the parse phase.
type parsedItem struct {
	content string
	doc     Document
	images  []ImageElement
	refs    []ImageReference
	err     error
}

// Run processes every item of contentType, or just the first one in test mode.  If a remote call
// fails the run stops there; the returned Result still counts the pages that were completed, and
// their writes are not undone.
func (p *Processor) Run(ctx context.Context, contentType string, fieldName string, testMode bool) (Result, error) {
	if contentType == "" {
		return Result{}, fmt.Errorf("%w: contentType must not be empty", ErrArgument)
	}
	if fieldName == "" {
		return Result{}, fmt.Errorf("%w: fieldName must not be empty", ErrArgument)
	}
	if p.API == nil {
		return Result{}, fmt.Errorf("%w: no content API configured", ErrArgument)
	}

	logger := orNop(p.Logger)

	take := p.PageSize
	if take < 1 {
		take = DefaultPageSize
	}
	if testMode {
		take = 1
	}

	pos := pagePosition{page: 1, skip: 0}
	contentResponse, err := p.fetchPage(ctx, contentType, fieldName, pos, take)
	if err != nil {
		return Result{}, err
	}

	if testMode {
		logger.Info("TEST MODE: Found %d total items. Processing only 1 item.", contentResponse.TotalCount)
	} else {
		logger.Info("Found %d items to process.", contentResponse.TotalCount)
	}

	var bar *progress
	if p.Progress && !testMode {
		bar = newProgress(contentType, contentResponse.TotalCount)
	}

	total := Result{}
	for pos.skip < contentResponse.TotalCount {
		result, err := p.processPage(ctx, contentResponse.Items, contentType, fieldName, pos, testMode, bar)
		if err != nil {
			bar.finish(false)
			return total, err
		}
		total = total.Add(result)

		if testMode {
			break
		}

		pos.skip += take
		pos.page++

		if pos.skip < contentResponse.TotalCount {
			contentResponse, err = p.fetchPage(ctx, contentType, fieldName, pos, take)
			if err != nil {
				bar.finish(false)
				return total, err
			}
			bar.setTotal(contentResponse.TotalCount)
		}
	}
	bar.finish(true)

	if testMode {
		logger.Success("TEST MODE COMPLETED: Processed %d item(s), Updated %d item(s).", total.Processed, total.Updated)
		logger.Info("Review the results above. Run again without test mode to process all items.")
	} else {
		logger.Success("Content update completed successfully. Processed %d items, Updated %d items.", total.Processed, total.Updated)
	}

	return total, nil
}

func (p *Processor) fetchPage(ctx context.Context, contentType string, fieldName string, pos pagePosition, take int) (*sitefinity.ItemsResponse, error) {
	resp, err := p.API.GetItems(ctx, sitefinity.GetItemsQuery{
		EntitySet: contentType,
		Skip:      pos.skip,
		Take:      take,
		Count:     true,
		Fields:    []string{fieldName, sitefinity.IDField},
	})
	if err != nil {
		return nil, &RemoteCallError{Op: "fetch", Page: pos.page, Offset: pos.skip, Err: err}
	}
	return resp, nil
}

func (p *Processor) processPage(ctx context.Context, items []sitefinity.Item, contentType string, fieldName string, pos pagePosition, testMode bool, bar *progress) (Result, error) {
	logger := orNop(p.Logger)

	parsed, err := p.parseItems(ctx, items, fieldName)
	if err != nil {
		return Result{}, err
	}

	// one lookup for every image on the page
	refs := []ImageReference{}
	for _, pi := range parsed {
		refs = append(refs, pi.refs...)
	}
	resolver := Resolver{Images: p.API, Mapping: p.Mapping, Logger: logger}
	resolution, err := resolver.Resolve(ctx, refs)
	if err != nil {
		return Result{}, &RemoteCallError{Op: "query", Page: pos.page, Offset: pos.skip, Err: err}
	}

	processed := 0
	itemsToUpdate := []sitefinity.Item{}

	for i, item := range items {
		processed++
		bar.increment()

		pi := parsed[i]
		switch {
		case pi.content == "":
			logger.Warn("Item %s: Field '%s' is empty or null. Skipping.", item.ID(), fieldName)
			continue
		case pi.err != nil:
			logger.Error("Item %s: %v. Skipping.", item.ID(), pi.err)
			continue
		case len(pi.images) == 0:
			logger.Warn("Item %s: No images found in field '%s'.", item.ID(), fieldName)
			continue
		}

		logger.Info("Item %s: Found %d image(s).", item.ID(), len(pi.images))

		updatedImageCount := 0
		for j, img := range pi.images {
			if src, _ := img.Attr("src"); src == "" {
				continue
			}
			asset, ok := resolution.Lookup(pi.refs[j])
			if !ok {
				continue
			}
			if Rewrite(img, asset) {
				updatedImageCount++
			}
		}

		if updatedImageCount == 0 {
			continue
		}

		html, err := pi.doc.HTML()
		if err != nil {
			logger.Error("Item %s: %v. Skipping.", item.ID(), &ParseError{ItemID: item.ID(), Err: err})
			continue
		}
		item.Set(fieldName, html)
		itemsToUpdate = append(itemsToUpdate, item)
		logger.Success("Item %s: Updated %d image(s). Marked for update.", item.ID(), updatedImageCount)

		if testMode && p.Preview != nil {
			if markdown, err := p.Preview.Markdown(html); err == nil {
				logger.Info("Item %s: Preview:\n%s", item.ID(), markdown)
			} else {
				logger.Warn("Item %s: %v", item.ID(), err)
			}
		}
	}

	if len(itemsToUpdate) > 0 {
		if err := p.batchUpdate(ctx, contentType, itemsToUpdate); err != nil {
			return Result{}, &RemoteCallError{Op: "update", Page: pos.page, Offset: pos.skip, Err: err}
		}
	}

	return Result{Processed: processed, Updated: len(itemsToUpdate)}, nil
}

// parseItems parses every item's field in parallel.  Results are kept by index so the rest of the
// page is handled in the order the API returned it.
func (p *Processor) parseItems(ctx context.Context, items []sitefinity.Item, fieldName string) ([]parsedItem, error) {
	parser := p.Parser
	if parser == nil {
		parser = GoqueryParser{}
	}

	parsed := make([]parsedItem, len(items))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(p.workers())

	for i := range items {
		i := i
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content := items[i].String(fieldName)
			if content == "" {
				return nil
			}

			doc, err := parser.Parse(content)
			if err != nil {
				parsed[i] = parsedItem{content: content, err: &ParseError{ItemID: items[i].ID(), Err: err}}
				return nil
			}

			// Extract walks the images in the same order, so refs[j] describes images[j].
			parsed[i] = parsedItem{content: content, doc: doc, images: doc.Images(), refs: Extract(doc)}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("migrate: parsing page failed: %w", err)
	}

	return parsed, nil
}

// batchUpdate writes every item back.  All writes are attempted; the first failure is reported.
func (p *Processor) batchUpdate(ctx context.Context, contentType string, items []sitefinity.Item) error {
	logger := orNop(p.Logger)

	var grp errgroup.Group
	grp.SetLimit(p.workers())

	for _, item := range items {
		item := item
		grp.Go(func() error {
			return p.API.UpdateItem(ctx, contentType, item)
		})
	}

	if err := grp.Wait(); err != nil {
		logger.Error("Error during batch update: %v", err)
		return err
	}

	logger.Success("Batch update completed. Updated %d items.", len(items))
	return nil
}

func (p *Processor) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}
