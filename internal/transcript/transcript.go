// Package transcript turns the structured response of the speech service
// into the text file this tool exists to produce.
package transcript

// Word is one recognized token. SpeakerTag is the 1-based speaker number
// assigned by diarization; zero (the proto default) means the service did
// not attach a tag.
type Word struct {
	Text       string
	SpeakerTag int32
}

// Alternative is one transcription hypothesis for a segment. Words is only
// populated when word-level detail (diarization / time offsets) was
// requested.
type Alternative struct {
	Transcript string
	Words      []*Word
}

// Segment is one chunk of the response covering a contiguous span of audio.
// Alternatives are ordered best-first; only the first one is ever used.
type Segment struct {
	Alternatives []Alternative
}

// Result is the full recognition response, segments in chronological order.
type Result struct {
	Segments []Segment
}
