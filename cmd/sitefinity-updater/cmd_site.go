/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var siteUsage = strings.TrimSpace(`
Check that your url, access key and site id work, and print the name of the site they reach.
`)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Print the site you're connected to",
	Long:  siteUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		logger := newLogger(cmd)
		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), logger)

		api, err := connect(p, logger)
		if err != nil {
			return fmt.Errorf("site: %w", err)
		}

		site, err := api.CurrentSite(ctx)
		if err != nil {
			return fmt.Errorf("site: couldn't fetch current site: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "site:\n  id: %s\n  name: %s\n  url: %s\n", site.ID, site.Name, api.BaseURI)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(siteCmd)
}
