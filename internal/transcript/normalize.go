package transcript

import "errors"

var (
	// ErrEmptyResult means the service returned zero segments.
	ErrEmptyResult = errors.New("the service returned no transcription results")
	// ErrNoWordData means segments came back but none carried usable
	// word-level tokens.
	ErrNoWordData = errors.New("results carried no word-level diarization data")
)

// Normalize flattens a recognition result into one chronological token
// stream. Only the best alternative of each segment contributes; segments
// without alternatives are skipped outright. A segment whose alternative
// has no word list marks the result as partially unusable but never aborts
// the walk, so later segments still contribute. The partial flag only
// matters when nothing at all was collected: any word wins over it.
func Normalize(res Result) ([]*Word, error) {
	if len(res.Segments) == 0 {
		return nil, ErrEmptyResult
	}

	var words []*Word
	partial := false
	for _, seg := range res.Segments {
		if len(seg.Alternatives) == 0 {
			continue
		}
		best := seg.Alternatives[0]
		if len(best.Words) == 0 {
			partial = true
			continue
		}
		for _, w := range best.Words {
			if w == nil {
				// Malformed entry; dropping it is safe because it
				// carries neither text nor a speaker boundary.
				continue
			}
			words = append(words, w)
		}
	}

	switch {
	case len(words) > 0:
		return words, nil
	case partial:
		return nil, ErrNoWordData
	default:
		return nil, ErrEmptyResult
	}
}
