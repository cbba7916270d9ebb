package transcript

import (
	"errors"
	"testing"
)

func wordSeg(words ...*Word) Segment {
	return Segment{Alternatives: []Alternative{{Words: words}}}
}

func TestNormalizeEmptyResult(t *testing.T) {
	_, err := Normalize(Result{})
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
}

func TestNormalizeNoWordData(t *testing.T) {
	res := Result{Segments: []Segment{
		{Alternatives: []Alternative{{Transcript: "hello there"}}},
	}}
	_, err := Normalize(res)
	if !errors.Is(err, ErrNoWordData) {
		t.Fatalf("err = %v, want ErrNoWordData", err)
	}
}

func TestNormalizeSegmentsWithoutAlternatives(t *testing.T) {
	// Segments that carry no hypotheses at all are skipped without setting
	// the partial flag, so an all-skipped result reads as empty.
	res := Result{Segments: []Segment{{}, {}}}
	_, err := Normalize(res)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
}

func TestNormalizeFlattensInOrder(t *testing.T) {
	res := Result{Segments: []Segment{
		wordSeg(&Word{Text: "hi", SpeakerTag: 1}, &Word{Text: "there", SpeakerTag: 1}),
		wordSeg(&Word{Text: "bob", SpeakerTag: 2}),
	}}
	words, err := Normalize(res)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	got := make([]string, len(words))
	for i, w := range words {
		got[i] = w.Text
	}
	want := []string{"hi", "there", "bob"}
	if len(got) != len(want) {
		t.Fatalf("words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("words = %v, want %v", got, want)
		}
	}
}

func TestNormalizeUsesOnlyBestAlternative(t *testing.T) {
	res := Result{Segments: []Segment{{Alternatives: []Alternative{
		{Words: []*Word{{Text: "best", SpeakerTag: 1}}},
		{Words: []*Word{{Text: "worse", SpeakerTag: 1}}},
	}}}}
	words, err := Normalize(res)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(words) != 1 || words[0].Text != "best" {
		t.Fatalf("words = %+v, want only the first alternative's token", words)
	}
}

func TestNormalizePartialFailureStillCollects(t *testing.T) {
	// One unusable segment must not abort the stream; words collected from
	// the surviving segments override the partial-failure flag.
	res := Result{Segments: []Segment{
		{Alternatives: []Alternative{{Transcript: "unusable"}}},
		wordSeg(&Word{Text: "kept", SpeakerTag: 1}),
	}}
	words, err := Normalize(res)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(words) != 1 || words[0].Text != "kept" {
		t.Fatalf("words = %+v, want the surviving segment's token", words)
	}
}

func TestNormalizeDropsNilTokensKeepsEmptyText(t *testing.T) {
	res := Result{Segments: []Segment{
		wordSeg(&Word{Text: "a", SpeakerTag: 1}, nil, &Word{Text: "", SpeakerTag: 1}, &Word{Text: "b", SpeakerTag: 2}),
	}}
	words, err := Normalize(res)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("len(words) = %d, want 3 (nil dropped, empty text kept)", len(words))
	}
	if words[1].Text != "" {
		t.Fatalf("words[1].Text = %q, want empty placeholder", words[1].Text)
	}
}
