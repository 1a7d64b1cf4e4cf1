// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scrap2md CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scrap2md/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the scrap2md CLI.
var rootCmd = &cobra.Command{
	Use:   "scrap2md",
	Short: "Export Zenn scraps as Markdown",
	Long: `scrap2md fetches a Zenn scrap (a threaded discussion) and writes its
messages as a single Markdown document. Image markup with explicit sizes is
rewritten to <img> tags, each message gets an author/timestamp header, and
messages are separated by horizontal rules.

Fetched scraps are cached locally in SQLite; see "scrap2md cache".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd.ErrOrStderr(), viper.GetBool("verbose"))

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			slog.Debug("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scrap2md.yaml or ~/.config/scrap2md/scrap2md.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("secrets-dir", ".secrets", "directory of secret key files (zenn-token)")
	pf.String("cache-dir", "", "scrap cache directory (default: user cache dir)")

	bindFlags(pf, map[string]string{
		"verbose":     "verbose",
		"secrets_dir": "secrets-dir",
		"cache_dir":   "cache-dir",
	})
	viper.SetDefault("user_agent", "scrap2md/"+version)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scrap2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scrap2md"))
		}
	}

	viper.SetEnvPrefix("SCRAP2MD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging installs a text slog handler on w.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
