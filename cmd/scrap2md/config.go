// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/scrap2md/internal/secrets"
	"github.com/pdiddy/scrap2md/pkg/types"
)

// bindFlags binds viper keys to flags so a value can come from the config
// file, a SCRAP2MD_* environment variable, or the command line.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			panic(fmt.Sprintf("binding %s: no flag --%s", key, name))
		}
		if err := viper.BindPFlag(key, f); err != nil {
			panic(fmt.Sprintf("binding %s: %v", key, err))
		}
	}
}

// loadConfig builds the run configuration from viper. The token falls back
// to the zenn-token secret file when neither flag nor environment sets it.
func loadConfig() types.Config {
	return types.Config{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("timeout"),
				UserAgent:  viper.GetString("user_agent"),
				MaxRetries: viper.GetInt("max_retries"),
			},
			BaseURL:    viper.GetString("base_url"),
			CookieName: viper.GetString("cookie_name"),
			Token:      loadedSecrets.Get(secrets.ZennToken, viper.GetString("token")),
		},
		Export: types.ExportConfig{
			Render: types.RenderOptions{
				SkipHeader:   viper.GetBool("skip_header"),
				QuoteReplies: viper.GetBool("quote_replies"),
			},
			OutputDir:   viper.GetString("output_dir"),
			Title:       viper.GetBool("title"),
			Frontmatter: viper.GetBool("frontmatter"),
		},
		Cache: types.CacheConfig{
			Dir:      viper.GetString("cache_dir"),
			TTL:      viper.GetDuration("cache_ttl"),
			Disabled: viper.GetBool("no_cache"),
		},
	}
}
