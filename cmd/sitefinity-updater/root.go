/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	configEnv     = "SITEFINITY_UPDATER_CONFIG"
	defaultConfig = "~/.config/sitefinity-updater.yaml"
)

var (
	// Store the result of binding cobra flags
	Config  string
	Debug   bool
	NoColor bool

	// Path of the config file actually read, empty if there was none.
	ConfigActual string

	SiteURL   string
	AccessKey string
	SiteID    string

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "sitefinity-updater",
	Short: "Rewrite image references in Sitefinity rich-text fields",
	Long: `
Moving content between Sitefinity sites leaves images in rich-text fields pointing at the old
library.  This tool walks every item of a content type, finds each <img>, works out which image on
the new site it should be, and rewrites the src.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("sitefinity-updater: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/sitefinity-updater.yaml, respects SITEFINITY_UPDATER_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().BoolVar(&NoColor, "no-color", false, "don't colour log output")
	rootCmd.PersistentFlags().StringVar(&SiteURL, "site-url", "", "Sitefinity REST service url, e.g. http://localhost:8080/api/default/")
	rootCmd.PersistentFlags().StringVar(&AccessKey, "access-key", "", "Sitefinity access key")
	rootCmd.PersistentFlags().StringVar(&SiteID, "site-id", "", "ID of the site to update")
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := true
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv(configEnv)
		if envConfig != "" {
			Config = envConfig
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = defaultConfig
			explicit = false
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("sitefinity-updater: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if !explicit {
			// The config file is optional; anything missing gets prompted for.
			debugLog("No config file at %s, relying on flags and prompts.\n", Config)
			return nil
		}
		fmt.Printf("Couldn't read config file %s, does it exist?  Override with --config.\n", Config)
		return fmt.Errorf("sitefinity-updater: specified config file does not exist: %w", err)
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("sitefinity-updater: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a key we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("sitefinity-updater: issue parsing config file: %w", err)
	}
	ConfigActual = Config

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("sitefinity-updater: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	Progress *bool `yaml:"progress"`
	WithVCR  *bool `yaml:"with-vcr"`
	NoColor  *bool `yaml:"no-color"`
	Workers  *int  `yaml:"workers"`

	SiteURL     string `yaml:"site-url"`
	AccessKey   string `yaml:"access-key"`
	SiteID      string `yaml:"site-id"`
	CsvFilePath string `yaml:"csv-file-path"`
	ContentType string `yaml:"content-type"`
	FieldName   string `yaml:"field-name"`
	Cassette    string `yaml:"cassette"`
}

// Copy each config file value onto its cobra flag, unless the flag was given on the command line.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("sitefinity-updater: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// e.g. `config show` has no --content-type, but the YAML file may well set it.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		var value string
		switch field.Kind() {
		case reflect.Ptr:
			switch p := field.Value().(type) {
			case *bool:
				if p == nil {
					continue
				}
				value = fmt.Sprintf("%v", *p)
			case *int:
				if p == nil {
					continue
				}
				value = fmt.Sprintf("%d", *p)
			default:
				return fmt.Errorf("sitefinity-updater: found unrecognised field: %+v", field)
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("sitefinity-updater: found unrecognised field: %+v", field)
			}
			if s == "" {
				continue
			}
			value = s

		default:
			return fmt.Errorf("sitefinity-updater: found unrecognised field: %+v", field)
		}

		if err := cmd.Flags().Set(key, value); err != nil {
			return fmt.Errorf("sitefinity-updater: bad value for %s: %w", key, err)
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("sitefinity-updater: execution error: %w", err)
	}

	return nil
}
