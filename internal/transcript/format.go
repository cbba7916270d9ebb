package transcript

import (
	"errors"
	"strconv"
	"strings"
)

// UnknownSpeaker is the label used when the service attached no speaker tag.
const UnknownSpeaker = "?"

var (
	// ErrNoAlternatives means the final segment had no hypotheses at all.
	ErrNoAlternatives = errors.New("results carried no transcription alternatives")
	// ErrNoTranscriptText means a hypothesis existed but its text was empty.
	ErrNoTranscriptText = errors.New("alternatives carried no transcript text")
)

// FormatDiarized renders the token stream as blank-line-separated speaker
// turns. A turn boundary is exactly a change of (normalized) speaker tag;
// consecutive untagged words share one "Speaker ?:" turn. Returns the
// rendered text, trimmed, plus the number of words appended.
func FormatDiarized(words []*Word) (string, int) {
	var b strings.Builder
	current := ""
	count := 0
	for _, w := range words {
		if w == nil {
			continue
		}
		tag := speakerLabel(w.SpeakerTag)
		if tag != current {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			current = tag
			b.WriteString("Speaker " + tag + ": ")
		}
		b.WriteString(w.Text)
		b.WriteByte(' ')
		count++
	}
	return strings.TrimSpace(b.String()), count
}

// FormatPlain renders a non-diarized result: the best hypothesis of the
// last segment, which the service populates with the final transcript.
func FormatPlain(res Result) (string, error) {
	if len(res.Segments) == 0 {
		return "", ErrEmptyResult
	}
	last := res.Segments[len(res.Segments)-1]
	if len(last.Alternatives) == 0 {
		return "", ErrNoAlternatives
	}
	text := last.Alternatives[0].Transcript
	if text == "" {
		return "", ErrNoTranscriptText
	}
	return text, nil
}

func speakerLabel(tag int32) string {
	if tag <= 0 {
		return UnknownSpeaker
	}
	return strconv.Itoa(int(tag))
}
