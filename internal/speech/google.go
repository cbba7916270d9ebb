package speech

import (
	"context"
	"fmt"

	speechapi "cloud.google.com/go/speech/apiv1p1beta1"
	"cloud.google.com/go/speech/apiv1p1beta1/speechpb"
	"github.com/sirupsen/logrus"

	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/transcript"
)

var encodingToProto = map[Encoding]speechpb.RecognitionConfig_AudioEncoding{
	EncodingLinear16: speechpb.RecognitionConfig_LINEAR16,
	EncodingFLAC:     speechpb.RecognitionConfig_FLAC,
	EncodingMP3:      speechpb.RecognitionConfig_MP3,
	EncodingOggOpus:  speechpb.RecognitionConfig_OGG_OPUS,
	EncodingMulaw:    speechpb.RecognitionConfig_MULAW,
}

// Client wraps the Cloud Speech-to-Text v1p1beta1 API.
type Client struct {
	api *speechapi.Client
	log *logrus.Logger
}

// NewClient dials the speech service using application default credentials.
func NewClient(ctx context.Context, log *logrus.Logger) (*Client, error) {
	api, err := speechapi.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return &Client{api: api, log: log}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}

// Recognize submits a long-running recognize operation and waits for it.
// The wait is bounded by ctx; a local timeout stops waiting without
// retracting the request on the service side.
func (c *Client) Recognize(ctx context.Context, req Request) (transcript.Result, error) {
	cfg := &speechpb.RecognitionConfig{
		Encoding:                   encodingToProto[req.Encoding],
		SampleRateHertz:            int32(req.SampleRate),
		LanguageCode:               req.Language,
		EnableAutomaticPunctuation: true,
	}
	if req.Diarization {
		cfg.EnableWordTimeOffsets = true
		cfg.DiarizationConfig = &speechpb.SpeakerDiarizationConfig{
			EnableSpeakerDiarization: true,
			MinSpeakerCount:          int32(req.MinSpeakers),
			MaxSpeakerCount:          int32(req.MaxSpeakers),
		}
	}
	if req.Enhanced {
		cfg.UseEnhanced = true
		cfg.Model = "latest_long"
	}

	c.log.WithFields(logrus.Fields{
		"uri":         req.URI,
		"encoding":    req.Encoding,
		"sample_rate": req.SampleRate,
		"language":    req.Language,
		"diarization": req.Diarization,
		"enhanced":    req.Enhanced,
	}).Info("submitting long-running recognize request")

	op, err := c.api.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: req.URI},
		},
	})
	if err != nil {
		return transcript.Result{}, fmt.Errorf("long-running recognize: %w", err)
	}

	resp, err := op.Wait(ctx)
	if err != nil {
		return transcript.Result{}, fmt.Errorf("await recognition: %w", err)
	}
	return fromProto(resp), nil
}

// fromProto flattens the wire response into the internal result model so
// the formatting core never touches generated types.
func fromProto(resp *speechpb.LongRunningRecognizeResponse) transcript.Result {
	var out transcript.Result
	if resp == nil {
		return out
	}
	for _, r := range resp.GetResults() {
		if r == nil {
			continue
		}
		var seg transcript.Segment
		for _, alt := range r.GetAlternatives() {
			if alt == nil {
				continue
			}
			a := transcript.Alternative{Transcript: alt.GetTranscript()}
			for _, w := range alt.GetWords() {
				if w == nil {
					a.Words = append(a.Words, nil)
					continue
				}
				a.Words = append(a.Words, &transcript.Word{
					Text:       w.GetWord(),
					SpeakerTag: w.GetSpeakerTag(),
				})
			}
			seg.Alternatives = append(seg.Alternatives, a)
		}
		out.Segments = append(out.Segments, seg)
	}
	return out
}
