/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type configView struct {
	ConfigFile string     `yaml:"config-file"`
	Debug      bool       `yaml:"debug"`
	NoColor    bool       `yaml:"no-color"`
	SiteURL    string     `yaml:"site-url"`
	AccessKey  string     `yaml:"access-key"`
	SiteID     string     `yaml:"site-id"`
	Parsed     YamlConfig `yaml:"parsed"`
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible, though their config file values are in the parsed section.
		parsed := ParsedConfig
		parsed.AccessKey = redact(parsed.AccessKey)

		out, err := yaml.Marshal(configView{
			ConfigFile: ConfigActual,
			Debug:      Debug,
			NoColor:    NoColor,
			SiteURL:    SiteURL,
			AccessKey:  redact(AccessKey),
			SiteID:     SiteID,
			Parsed:     parsed,
		})
		if err != nil {
			return fmt.Errorf("config show: couldn't marshal config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Dump current config state:\n\n%s", out)
		return nil
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
