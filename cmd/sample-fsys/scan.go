package main

import (
	"fmt"
	"path"

	"github.com/brandon-m-wang/samplefsys/internal/library"
	"github.com/spf13/cobra"
)

var scanAll bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Count the samples filed under every song",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		inv, err := library.Scan(cmd.Context(), settings.RootDir, st.Taxonomy(), settings.ScanConcurrency)
		if err != nil {
			return err
		}

		entries := inv.Populated()
		if scanAll {
			entries = inv.Entries
		}
		w := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(w, "%s: %s\n", path.Join(e.Type, e.Subtype, e.Artist, e.Song), e.Listing.Summary())
		}
		logger.Info("%d samples in %d folders", inv.Total, len(inv.Populated()))
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVarP(&scanAll, "all", "a", false, "Also list empty and missing folders")
	rootCmd.AddCommand(scanCmd)
}
