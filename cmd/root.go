package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/XS227/StreamerSite/internal/config"
	"github.com/XS227/StreamerSite/internal/dom"
	"github.com/XS227/StreamerSite/internal/editor"
	"github.com/XS227/StreamerSite/internal/logging"
	"github.com/XS227/StreamerSite/internal/project"
)

var cfgFile string
var appConfig config.Config
var logger hclog.Logger

var rootCmd = &cobra.Command{
	Use:   "streamersite",
	Short: "StreamerSite - visual site editor",
	Long: `StreamerSite hosts a visual editor for multi-page template projects.
It loads the project's pages, renders them on an editable canvas, and keeps
the source inspection panel in sync with whatever page is shown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return err
		}
		logger = logging.New("streamersite", appConfig.LogLevel, os.Stderr)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("root", config.DefaultRoot, "application root holding config/ and projects/")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error)")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("root", config.DefaultRoot)
	v.SetDefault("port", config.DefaultPort)
	v.SetDefault("configFile", config.DefaultConfigFile)
	v.SetDefault("layersFile", config.DefaultLayersFile)
	v.SetDefault("source", "")
	v.SetDefault("logLevel", config.DefaultLogLevel)
	v.SetDefault("allowAllOrigins", false)
	v.SetDefault("watch", true)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SSB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	flags := map[string]string{"root": "root", "log-level": "logLevel", "port": "port", "watch": "watch"}
	for flag, key := range flags {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}

// newEditor wires an editor session to the configured application root, or
// to the source URL when one is set. Documents and page files come from the
// same place.
func newEditor(cfg config.Config, log hclog.Logger) (*editor.Editor, error) {
	var fetcher project.Fetcher = project.FSFetcher{FS: os.DirFS(cfg.Root)}
	if cfg.Source != "" {
		f, err := project.NewHTTPFetcher(cfg.Source, &http.Client{Timeout: 30 * time.Second})
		if err != nil {
			return nil, err
		}
		fetcher = f
	}

	return editor.New(editor.Options{
		Fetcher: fetcher,
		Surface: dom.NewSurface(fetcher),
		Paths:   project.Paths{Config: cfg.ConfigFile, Layers: cfg.LayersFile},
		Logger:  log.Named("editor"),
	}), nil
}
