// Package audio writes sample metadata into filed audio files.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to MP3 samples after they are copied
// into the library. The source file is never tagged, only the copy:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(audio.SampleInfo{
//	    Path:   dest,
//	    Title:  "Loop_SZA_Kill_Bill_snare1_og",
//	    Artist: "SZA",
//	    Song:   "Kill Bill",
//	    BPM:    140,
//	    Key:    "C# Minor",
//	})
//
// The tagger supports:
//   - Artist, Title
//   - Album (the reference song)
//   - BPM and initial key
//   - Genre ("Type/Subtype")
//
// Other formats (WAV, AIFF, FLAC, OGG) are left untouched.
package audio
