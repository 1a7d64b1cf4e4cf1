// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scrap2md/internal/cache"
	"github.com/pdiddy/scrap2md/internal/export"
	"github.com/pdiddy/scrap2md/internal/preview"
	"github.com/pdiddy/scrap2md/internal/render"
	"github.com/pdiddy/scrap2md/internal/scrap"
	"github.com/pdiddy/scrap2md/internal/secrets"
	"github.com/pdiddy/scrap2md/pkg/types"
)

const defaultCacheTTL = time.Hour

var exportCmd = &cobra.Command{
	Use:   "export [url-or-slug...]",
	Short: "Fetch scraps and write them as Markdown",
	Long: `Export fetches each scrap, flattens its comment thread in order, and
writes one Markdown document per scrap to <output-dir>/<slug>.md. Scraps
may be given as full URLs (https://zenn.dev/<user>/scraps/<slug>) or bare
slugs. Private scraps need a session token via --token, SCRAP2MD_TOKEN, or
.secrets/zenn-token.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.Bool("skip-header", false, "omit the **author (timestamp)** line above each message")
	f.Bool("quote-replies", false, "render replies as nested blockquotes")
	f.Bool("title", false, "prepend the scrap title as a level-1 heading")
	f.Bool("frontmatter", false, "prepend YAML frontmatter (title, slug, source, message count)")
	f.StringP("output", "o", "", "output file path (only with a single scrap)")
	f.String("output-dir", ".", "directory for <slug>.md files")
	f.Bool("stdout", false, "print the document to stdout instead of writing a file")
	f.Bool("preview", false, "render the document in the terminal instead of writing a file")
	f.String("token", "", "Zenn session token for private scraps")
	f.String("cookie-name", scrap.DefaultCookieName, "session cookie name that carries the token")
	f.String("base-url", scrap.DefaultBaseURL, "Zenn origin")
	f.Duration("timeout", scrap.DefaultTimeout, "HTTP request timeout")
	f.Int("max-retries", 5, "retries on HTTP 429/503")
	f.Bool("no-cache", false, "always fetch from the API and skip the local cache")
	f.Bool("refresh", false, "fetch from the API even when a cached copy is fresh")
	f.Duration("cache-ttl", defaultCacheTTL, "how long a cached scrap stays fresh (0 = forever)")

	bindFlags(f, map[string]string{
		"skip_header":   "skip-header",
		"quote_replies": "quote-replies",
		"title":         "title",
		"frontmatter":   "frontmatter",
		"output_dir":    "output-dir",
		"token":         "token",
		"cookie_name":   "cookie-name",
		"base_url":      "base-url",
		"timeout":       "timeout",
		"max_retries":   "max-retries",
		"no_cache":      "no-cache",
		"cache_ttl":     "cache-ttl",
	})

	rootCmd.AddCommand(exportCmd)
}

// outputMode selects where an exported document goes.
type outputMode int

const (
	toFile outputMode = iota
	toStdout
	toPreview
)

// exportRun carries the settings shared by every scrap in one invocation.
type exportRun struct {
	fetcher scrap.Fetcher
	cfg     types.Config
	mode    outputMode

	// output overrides the default <output-dir>/<slug>.md path.
	output string

	stdout io.Writer
	status io.Writer
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	toOut, _ := cmd.Flags().GetBool("stdout")
	toView, _ := cmd.Flags().GetBool("preview")
	refresh, _ := cmd.Flags().GetBool("refresh")

	if output != "" && len(args) > 1 {
		return fmt.Errorf("--output takes a single scrap; use --output-dir for %d scraps", len(args))
	}
	if toOut && toView {
		return fmt.Errorf("--stdout and --preview are mutually exclusive")
	}

	mode := toFile
	switch {
	case toOut:
		mode = toStdout
	case toView:
		mode = toPreview
	}

	cfg := loadConfig()
	fetcher, closeFetcher := newFetcher(cfg, refresh)
	defer closeFetcher()

	run := &exportRun{
		fetcher: fetcher,
		cfg:     cfg,
		mode:    mode,
		output:  output,
		stdout:  cmd.OutOrStdout(),
		status:  cmd.ErrOrStderr(),
	}

	var exported, failed int
	for _, arg := range args {
		if err := run.exportOne(cmd.Context(), arg); err != nil {
			fmt.Fprintf(run.status, "failed:  %s (%v)\n", arg, err)
			failed++
			continue
		}
		exported++
	}

	if len(args) > 1 {
		fmt.Fprintf(run.status, "\nBatch summary: %d exported, %d failed (total: %d)\n",
			exported, failed, len(args))
	}
	if failed > 0 {
		return fmt.Errorf("%d scrap(s) failed export", failed)
	}
	return nil
}

// newFetcher returns the API client, wrapped with the cache unless it is
// disabled or cannot be opened. The returned func releases the cache.
func newFetcher(cfg types.Config, refresh bool) (scrap.Fetcher, func()) {
	client := scrap.NewClient(cfg.Fetch)
	if cfg.Cache.Disabled {
		return client, func() {}
	}

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		slog.Warn("scrap cache unavailable, fetching directly", "err", err)
		return client, func() {}
	}
	f := &scrap.CachedFetcher{
		Store:    store,
		Upstream: client,
		TTL:      cfg.Cache.TTL,
		Refresh:  refresh,
		NoStore:  cfg.Fetch.Token != "",
	}
	return f, func() { store.Close() }
}

// exportOne fetches, converts, and emits a single scrap.
func (r *exportRun) exportOne(ctx context.Context, arg string) error {
	slug, err := scrap.ExtractSlug(arg)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.status, "fetching: %s\n", slug)
	sc, err := r.fetcher.Fetch(ctx, slug)
	if err != nil {
		if scrap.IsNotFound(err) && r.cfg.Fetch.Token == "" {
			return fmt.Errorf("%w (private scraps need --token or %s)", err, secrets.ZennToken)
		}
		return err
	}

	msgs := scrap.Flatten(sc.Comments)
	doc := export.Document{
		Title:     sc.Title,
		Slug:      slug,
		SourceURL: sourceURL(arg, r.cfg.Fetch.BaseURL, slug),
		Messages:  len(msgs),
		Body:      render.Assemble(msgs, r.cfg.Export.Render),
	}
	content, err := export.Compose(doc, export.ComposeOptions{
		Frontmatter: r.cfg.Export.Frontmatter,
		Title:       r.cfg.Export.Title,
		Generator:   "scrap2md " + version,
	})
	if err != nil {
		return err
	}

	switch r.mode {
	case toStdout:
		_, err = io.WriteString(r.stdout, content)
		return err
	case toPreview:
		return preview.Write(r.stdout, content, preview.Options{})
	}

	path := r.output
	if path == "" {
		path = export.DefaultPath(r.cfg.Export.OutputDir, slug)
	}
	if err := export.WriteFile(path, content); err != nil {
		return err
	}
	fmt.Fprintf(r.status, "wrote:   %s (%d messages)\n", path, len(msgs))
	return nil
}

// sourceURL prefers the URL the user gave; bare slugs point at the API blob.
func sourceURL(arg, baseURL, slug string) string {
	if scrap.IsURL(arg) {
		return strings.TrimSpace(arg)
	}
	return scrap.BlobURL(baseURL, slug)
}
