package main

import (
	"github.com/brandon-m-wang/samplefsys/internal/library"
	"github.com/spf13/cobra"
)

var treeFormat string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the taxonomy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := library.Export(st.Taxonomy(), library.Format(treeFormat))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeFormat, "format", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(treeCmd)
}
