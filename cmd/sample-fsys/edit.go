package main

import (
	"github.com/brandon-m-wang/samplefsys/internal/mutator"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/spf13/cobra"
)

var (
	songBPM     string
	songKey     string
	deleteFiles bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a type, subtype, artist or song",
}

var rmCmd = &cobra.Command{
	Use:     "rm",
	Aliases: []string{"remove"},
	Short:   "Remove a type, subtype, artist or song",
}

// edit runs one mutation against a fresh selection and logs its outcome.
func edit(fn func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error)) error {
	m := mutator.New(st, settings.RootDir)
	sel := selection.New(settings.ToToggles())
	out, err := fn(m, &sel)
	if err != nil {
		return err
	}
	for _, w := range out.Warnings {
		logger.Warn("%s", w)
	}
	logger.Success("%s", out.Message)
	return nil
}

var addTypeCmd = &cobra.Command{
	Use:   "type NAME",
	Short: "Add a sample type",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			return m.CreateType(sel, args[0])
		})
	},
}

var addSubtypeCmd = &cobra.Command{
	Use:   "subtype TYPE NAME",
	Short: "Add a subtype to a type",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			*sel = sel.Select(selection.LevelType, args[0])
			return m.CreateSubtype(sel, args[1])
		})
	},
}

var addArtistCmd = &cobra.Command{
	Use:   "artist NAME",
	Short: "Add an artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			return m.CreateArtist(sel, args[0])
		})
	},
}

var addSongCmd = &cobra.Command{
	Use:     "song ARTIST NAME --bpm BPM --key KEY",
	Short:   "Add a song to an artist",
	Example: `  sample-fsys add song SZA "Kill Bill" --bpm 140 --key "C# Minor"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		bpm, err := mutator.ParseBPM(songBPM)
		if err != nil {
			return err
		}
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			*sel = sel.Select(selection.LevelArtist, args[0])
			return m.CreateSong(sel, args[1], bpm, songKey)
		})
	},
}

var rmTypeCmd = &cobra.Command{
	Use:   "type NAME",
	Short: "Remove a type and its subtypes",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			return m.DeleteType(sel, args[0], deleteFiles)
		})
	},
}

var rmSubtypeCmd = &cobra.Command{
	Use:   "subtype TYPE NAME",
	Short: "Remove a subtype from a type",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			return m.DeleteSubtype(sel, args[0], args[1], deleteFiles)
		})
	},
}

var rmArtistCmd = &cobra.Command{
	Use:   "artist NAME",
	Short: "Remove an artist and its songs (files on disk are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			return m.DeleteArtist(sel, args[0])
		})
	},
}

var rmSongCmd = &cobra.Command{
	Use:   "song ARTIST NAME",
	Short: "Remove a song from an artist",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return edit(func(m *mutator.Mutator, sel *selection.State) (*mutator.Outcome, error) {
			return m.DeleteSong(sel, args[0], args[1], deleteFiles)
		})
	},
}

func init() {
	addSongCmd.Flags().StringVar(&songBPM, "bpm", "", "Tempo in beats per minute (1-400)")
	addSongCmd.Flags().StringVar(&songKey, "key", "", "Musical key, e.g. \"C# Minor\"")
	_ = addSongCmd.MarkFlagRequired("bpm")
	_ = addSongCmd.MarkFlagRequired("key")

	for _, c := range []*cobra.Command{rmTypeCmd, rmSubtypeCmd, rmSongCmd} {
		c.Flags().BoolVar(&deleteFiles, "files", false, "Also delete the folder on disk")
	}

	addCmd.AddCommand(addTypeCmd, addSubtypeCmd, addArtistCmd, addSongCmd)
	rmCmd.AddCommand(rmTypeCmd, rmSubtypeCmd, rmArtistCmd, rmSongCmd)
	rootCmd.AddCommand(addCmd, rmCmd)
}
