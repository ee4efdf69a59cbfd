/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/sitefinity-updater/migrate"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

var updateUsage = strings.TrimSpace(`
Walk every item of a content type and point the images in one of its rich-text fields at the
matching images on the new site.  Images are matched by the ID mapping in the CSV file first, then
by title.  Run with --test-mode first to try a single item.
`)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrite image references in a content type's rich-text field",
	Long:  updateUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		return runUpdate(ctx, cmd)
	},
}

var (
	CsvFilePath string
	ContentType string
	FieldName   string
	TestMode    bool
	Workers     int
	Progress    bool
	WithVCR     bool
	Cassette    string
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&CsvFilePath, "csv-file-path", "image_mappings.csv", "CSV mapping old image IDs to new ones (columns: Image Title, Source Id, Target Id)")
	updateCmd.Flags().StringVar(&ContentType, "content-type", "", "entity set to update, e.g. newsitems")
	updateCmd.Flags().StringVar(&FieldName, "field-name", "", "rich-text field to rewrite, e.g. Content")
	updateCmd.Flags().BoolVarP(&TestMode, "test-mode", "t", false, "only process a single item (asked interactively if not given)")
	updateCmd.Flags().IntVar(&Workers, "workers", 4, "items to parse or write concurrently within a page")
	updateCmd.Flags().BoolVar(&Progress, "progress", false, "show a progress bar")
	updateCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay reads (GETs); writes always reach the site")
	updateCmd.Flags().StringVar(&Cassette, "cassette", "fixtures/sitefinity", "go-vcr cassette name, used with --with-vcr")
}

func runUpdate(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger(cmd)
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), logger)

	logger.Success("Use this tool to update a content type rich text field")

	api, err := connect(p, logger)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	if WithVCR {
		cassette, err := homedir.Expand(Cassette)
		if err != nil {
			return fmt.Errorf("update: couldn't expand homedir: %w", err)
		}
		stop, err := api.UseRecorder(cassette, recorder.ModeReplayWithNewEpisodes)
		if err != nil {
			return fmt.Errorf("update: %w", err)
		}
		defer stop() // Make sure recorder is stopped once done with it
	}

	api, err = confirmSite(ctx, api, p, logger)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	contentType := p.value(ContentType, question{
		prompt:  "Enter the content type you want to update (e.g. newsitems):",
		missing: "Content type is required.",
		found:   "Using content type from config",
	})
	fieldName := p.value(FieldName, question{
		prompt:  "Enter the rich-text field you want to update (e.g. Content):",
		missing: "Field name is required.",
		found:   "Using field name from config",
	})
	if contentType == "" || fieldName == "" {
		logger.Error("Content type and field name are required. Exiting ...")
		return fmt.Errorf("update: %w", errConfigMissing)
	}

	testMode := TestMode
	if !cmd.Flags().Changed("test-mode") {
		testMode = p.confirm("Run in test mode (process only 1 item)? y/n")
	}
	debugLog("  TestMode: %v\n", testMode)

	csvFilePath, err := homedir.Expand(CsvFilePath)
	if err != nil {
		return fmt.Errorf("update: couldn't expand homedir: %w", err)
	}
	logger.Info("CSV file path configured as: %s", csvFilePath)

	processor := &migrate.Processor{
		API:      api,
		Mapping:  migrate.LoadMapping(csvFilePath, logger),
		Logger:   logger,
		Workers:  Workers,
		Progress: Progress,
		Preview:  migrate.NewPreviewer(api.BaseURI),
	}

	result, err := processor.Run(ctx, contentType, fieldName, testMode)
	if err != nil {
		logger.Error("Processing stopped: %v", err)
		return fmt.Errorf("update: processing failed partway (processed %d, updated %d before the failure): %w",
			result.Processed, result.Updated, err)
	}

	return nil
}
