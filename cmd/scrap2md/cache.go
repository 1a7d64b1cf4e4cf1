// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scrap2md/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local scrap cache",
	Long: `Cache manages the SQLite database of fetched scraps. Export reads from it
while an entry is younger than --cache-ttl and refreshes it otherwise.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached scraps, most recently fetched first",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [slug...]",
	Short: "Remove cached scraps (all of them when no slug is given)",
	RunE:  runCacheClear,
}

func init() {
	cacheListCmd.Flags().Bool("json", false, "output entries as JSON")

	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// cacheEntryJSON is the --json shape of a cache entry.
type cacheEntryJSON struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Comments  int       `json:"comments"`
	FetchedAt time.Time `json:"fetched_at"`
}

func runCacheList(cmd *cobra.Command, args []string) error {
	store, err := cache.Open(loadConfig().Cache)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		rows := make([]cacheEntryJSON, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, cacheEntryJSON(e))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "cache is empty (%s)\n", store.Path())
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tCOMMENTS\tFETCHED\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			e.Slug, e.Comments, e.FetchedAt.Local().Format(time.DateTime), e.Title)
	}
	return tw.Flush()
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := cache.Open(loadConfig().Cache)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		n, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %d cached scrap(s)\n", n)
		return nil
	}

	for _, slug := range args {
		err := store.Delete(cmd.Context(), slug)
		switch {
		case errors.Is(err, cache.ErrNotFound):
			fmt.Fprintf(out, "not cached: %s\n", slug)
		case err != nil:
			return err
		default:
			fmt.Fprintf(out, "removed: %s\n", slug)
		}
	}
	return nil
}
