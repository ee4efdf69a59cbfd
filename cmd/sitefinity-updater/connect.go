package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/toothbrush/sitefinity-updater/internal/console"
	"github.com/toothbrush/sitefinity-updater/migrate"
	"github.com/toothbrush/sitefinity-updater/sitefinity"
)

// errConfigMissing means we gave up before talking to Sitefinity at all.
var errConfigMissing = errors.New("required configuration missing")

var (
	siteURLQuestion = question{
		prompt:  "Enter the Sitefinity site url (e.g. http://localhost:8080/api/default/):",
		missing: "Sitefinity site url is required.",
		found:   "Using site URL from config",
	}
	accessKeyQuestion = question{
		prompt:  "Enter the Sitefinity access key:",
		missing: "Sitefinity access key is required.",
		found:   "Using access key from config",
		secret:  true,
	}
	siteIDQuestion = question{
		prompt:  "What is the site id you want to connect to?",
		missing: "Site ID is required.",
		found:   "Using site ID from config",
	}
)

func newLogger(cmd *cobra.Command) migrate.Logger {
	return console.New(cmd.ErrOrStderr(), !NoColor)
}

// connect gathers credentials from flags, config or the terminal, and builds the API client.
func connect(p *prompter, logger migrate.Logger) (*sitefinity.API, error) {
	siteURL := p.value(SiteURL, siteURLQuestion)
	accessKey := p.value(AccessKey, accessKeyQuestion)

	if siteURL == "" || accessKey == "" {
		logger.Error("Sitefinity site url and access key are required to proceed. Exiting ...")
		return nil, errConfigMissing
	}

	rawSiteID := p.value(SiteID, siteIDQuestion)
	siteID, err := uuid.Parse(rawSiteID)
	if err != nil {
		logger.Error("Invalid site ID provided.")
		return nil, fmt.Errorf("%w: site id %q: %v", errConfigMissing, rawSiteID, err)
	}

	api, err := sitefinity.NewAPI(sitefinity.Config{
		URL:       siteURL,
		AccessKey: accessKey,
		SiteID:    siteID,
	})
	if err != nil {
		return nil, fmt.Errorf("connect: Sitefinity API creation failed: %w", err)
	}
	debugLog("Talking to %s for site %s\n", api.BaseURI, api.SiteID)

	return api, nil
}

// confirmSite shows which site we're connected to and lets the user switch to another one until
// they're happy with it.
func confirmSite(ctx context.Context, api *sitefinity.API, p *prompter, logger migrate.Logger) (*sitefinity.API, error) {
	for {
		site, err := api.CurrentSite(ctx)
		if err != nil {
			logger.Error("Failed to connect to Sitefinity site. Please check the site url and access key and try again.")
			return nil, fmt.Errorf("connect: couldn't fetch current site: %w", err)
		}
		logger.Success("Successfully connected to Sitefinity site: %s", site.Name)

		if p.confirm("Is this the correct site? y/n") {
			logger.Success("Proceeding with the update...")
			return api, nil
		}

		rawSiteID := p.ask(siteIDQuestion.prompt)
		siteID, err := uuid.Parse(rawSiteID)
		if err != nil {
			logger.Error("Invalid site ID provided.")
			return nil, fmt.Errorf("%w: site id %q: %v", errConfigMissing, rawSiteID, err)
		}
		api = api.WithSite(siteID)
	}
}
