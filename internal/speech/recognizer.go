package speech

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/transcript"
)

// Encoding names an audio encoding accepted by the recognition service.
type Encoding string

const (
	EncodingUnspecified Encoding = ""
	EncodingLinear16    Encoding = "LINEAR16"
	EncodingFLAC        Encoding = "FLAC"
	EncodingMP3         Encoding = "MP3"
	EncodingOggOpus     Encoding = "OGG_OPUS"
	EncodingMulaw       Encoding = "MULAW"
)

var supportedEncodings = map[Encoding]bool{
	EncodingLinear16: true,
	EncodingFLAC:     true,
	EncodingMP3:      true,
	EncodingOggOpus:  true,
	EncodingMulaw:    true,
}

// ParseEncoding maps a user-supplied encoding name to its canonical form.
func ParseEncoding(s string) (Encoding, error) {
	enc := Encoding(strings.ToUpper(strings.TrimSpace(s)))
	if !supportedEncodings[enc] {
		return EncodingUnspecified, fmt.Errorf("unsupported encoding %q; supported: %s", s, SupportedEncodings())
	}
	return enc, nil
}

// SupportedEncodings returns the accepted encoding names, for usage text.
func SupportedEncodings() string {
	names := make([]string, 0, len(supportedEncodings))
	for e := range supportedEncodings {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// RequiresSampleRate reports whether the service insists on an explicit
// sample rate for this encoding. Container formats carry their own.
func (e Encoding) RequiresSampleRate() bool {
	switch e {
	case EncodingLinear16, EncodingFLAC, EncodingMulaw:
		return true
	}
	return false
}

// Request describes one long-running recognition call.
type Request struct {
	// URI is a gs:// reference to the audio, already uploaded.
	URI         string
	Encoding    Encoding
	SampleRate  int
	Language    string
	Diarization bool
	MinSpeakers int
	MaxSpeakers int
	// Enhanced selects the premium long-form model.
	Enhanced bool
}

// Recognizer is the remote speech service boundary. Implementations block
// until the operation finishes or ctx expires.
type Recognizer interface {
	Recognize(ctx context.Context, req Request) (transcript.Result, error)
}
