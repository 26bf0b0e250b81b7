package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/spf13/cobra"
)

var placeOpts struct {
	file    string
	typ     string
	subtype string
	artist  string
	song    string
	name    string
	dryRun  bool
}

var toggleFlags = map[string]selection.Toggle{
	"prefix-artist": selection.PrefixArtist,
	"prefix-song":   selection.PrefixSong,
	"prefix-bpm":    selection.PrefixBPM,
	"prefix-key":    selection.PrefixKey,
	"og":            selection.SuffixOG,
}

var placeCmd = &cobra.Command{
	Use:   "place [--file] FILE",
	Short: "File one sample without the interactive UI",
	Example: `  sample-fsys place --type Drums --subtype Loops --artist SZA --song "Kill Bill" --name snare1 ~/Downloads/snare.wav
  sample-fsys place -t Vocals -s Chops -a SZA -S Snooze -n hook --prefix-bpm --og=false hook.wav`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := placeOpts.file
		if file == "" && len(args) == 1 {
			file = args[0]
		}
		if file == "" {
			return fmt.Errorf("no sample file given")
		}

		sess := newSession()
		for name, t := range toggleFlags {
			if cmd.Flags().Changed(name) {
				on, _ := cmd.Flags().GetBool(name)
				sess.SetToggle(t, on)
			}
		}

		steps := []struct {
			level selection.Level
			value string
		}{
			{selection.LevelType, placeOpts.typ},
			{selection.LevelSubtype, placeOpts.subtype},
			{selection.LevelArtist, placeOpts.artist},
			{selection.LevelSong, placeOpts.song},
		}
		for _, s := range steps {
			if s.value == "" {
				return fmt.Errorf("--%s is required", s.level)
			}
			if err := sess.Select(s.level, s.value); err != nil {
				return errReported
			}
		}
		sess.SetSampleName(placeOpts.name)
		if err := sess.SetSource(file); err != nil {
			return errReported
		}

		if placeOpts.dryRun {
			if !sess.Ready() {
				return fmt.Errorf("missing %s", strings.Join(sess.Selection().Missing(), ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(sess.TargetDir(), sess.Preview()))
			return nil
		}

		res, err := sess.Place(cmd.Context())
		if err != nil {
			return errReported
		}
		logger.Debug("Wrote %s", res.Path)
		return nil
	},
}

func init() {
	f := placeCmd.Flags()
	f.StringVarP(&placeOpts.file, "file", "f", "", "Sample file to file")
	f.StringVarP(&placeOpts.typ, "type", "t", "", "Sample type")
	f.StringVarP(&placeOpts.subtype, "subtype", "s", "", "Subtype of the type")
	f.StringVarP(&placeOpts.artist, "artist", "a", "", "Artist")
	f.StringVarP(&placeOpts.song, "song", "S", "", "Song of the artist")
	f.StringVarP(&placeOpts.name, "name", "n", "", "Sample name")
	f.BoolVar(&placeOpts.dryRun, "dry-run", false, "Print the destination without copying")

	f.Bool("prefix-artist", true, "Prefix the artist name")
	f.Bool("prefix-song", true, "Prefix the song name")
	f.Bool("prefix-bpm", false, "Prefix the song BPM")
	f.Bool("prefix-key", false, "Prefix the song key")
	f.Bool("og", true, "Append the _og suffix")

	rootCmd.AddCommand(placeCmd)
}
