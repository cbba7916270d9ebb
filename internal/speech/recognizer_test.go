package speech

import (
	"testing"

	"cloud.google.com/go/speech/apiv1p1beta1/speechpb"
)

func TestParseEncoding(t *testing.T) {
	cases := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"FLAC", EncodingFLAC, false},
		{"flac", EncodingFLAC, false},
		{" linear16 ", EncodingLinear16, false},
		{"OGG_OPUS", EncodingOggOpus, false},
		{"AAC", EncodingUnspecified, true},
		{"", EncodingUnspecified, true},
	}
	for _, tc := range cases {
		got, err := ParseEncoding(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseEncoding(%q) err = %v, wantErr = %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseEncoding(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRequiresSampleRate(t *testing.T) {
	for _, enc := range []Encoding{EncodingLinear16, EncodingFLAC, EncodingMulaw} {
		if !enc.RequiresSampleRate() {
			t.Errorf("%s should require a sample rate", enc)
		}
	}
	for _, enc := range []Encoding{EncodingMP3, EncodingOggOpus} {
		if enc.RequiresSampleRate() {
			t.Errorf("%s should not require a sample rate", enc)
		}
	}
}

func TestFromProto(t *testing.T) {
	resp := &speechpb.LongRunningRecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{
					{
						Transcript: "hi there",
						Words: []*speechpb.WordInfo{
							{Word: "hi", SpeakerTag: 1},
							{Word: "there", SpeakerTag: 1},
						},
					},
				},
			},
			{},
		},
	}
	res := fromProto(resp)
	if len(res.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(res.Segments))
	}
	best := res.Segments[0].Alternatives[0]
	if best.Transcript != "hi there" || len(best.Words) != 2 {
		t.Fatalf("unexpected first alternative: %+v", best)
	}
	if best.Words[1].Text != "there" || best.Words[1].SpeakerTag != 1 {
		t.Fatalf("unexpected word: %+v", best.Words[1])
	}
	if len(res.Segments[1].Alternatives) != 0 {
		t.Fatalf("empty wire segment should stay empty, got %+v", res.Segments[1])
	}
}

func TestFromProtoNil(t *testing.T) {
	if res := fromProto(nil); len(res.Segments) != 0 {
		t.Fatalf("nil response should flatten to an empty result, got %+v", res)
	}
}
