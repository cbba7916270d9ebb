// Package pipeline runs one transcription end to end: resolve the audio
// source, upload, recognize, format, write. The three historical entry
// points (plain, diarized, diarized with MP3 conversion) are one pipeline
// here, parameterized by Options.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/config"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/gcs"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/media"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/progress"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/speech"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/transcript"
)

// DefaultWaitTimeout bounds the wait for the long-running recognize
// operation. A local timeout stops waiting; it does not retract the
// request on the service side.
const DefaultWaitTimeout = 1800 * time.Second

// Error texts for the two empty-result outcomes. These exact strings end
// up in the output file.
const (
	MsgNoResults  = "Error: The API returned no transcription results. Check audio quality or parameters."
	MsgNoWordData = "Error: API returned results, but failed to process diarization word info. Check audio or parameters."
)

// State names the pipeline's position for logging.
type State int

const (
	StateStart State = iota
	StateUploading
	StateAwaitingRecognition
	StateFormatting
	StateWriting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateUploading:
		return "uploading"
	case StateAwaitingRecognition:
		return "awaiting_recognition"
	case StateFormatting:
		return "formatting"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options selects the pipeline's behavior for one run.
type Options struct {
	Language    string
	MinSpeakers int
	MaxSpeakers int
	SampleRate  int
	Encoding    speech.Encoding
	OutputPath  string
	// Diarization turns on per-word speaker attribution.
	Diarization bool
	// AutoConvertMP3 converts .mp3 input to 48 kHz FLAC before upload.
	AutoConvertMP3 bool
	// EnhancedModel selects the premium long-form model.
	EnhancedModel bool
	// WaitTimeout bounds the recognition wait; zero means DefaultWaitTimeout.
	WaitTimeout time.Duration
}

// Outcome is what a run produced. Failed runs still carry Text: the error
// description takes the same path to the output file as a transcript, so
// failures are as discoverable as successes.
type Outcome struct {
	// Message is the status summary printed at the end of the run.
	Message string
	// Text is what was (or should have been) written to OutputPath.
	Text string
	// OutputPath is where Text was written, when writing was requested.
	OutputPath   string
	WordCount    int
	SegmentCount int
	Failed       bool
}

// Pipeline wires the collaborators for a run.
type Pipeline struct {
	settings   config.Settings
	uploader   gcs.Uploader
	recognizer speech.Recognizer
	converter  media.Converter
	log        *logrus.Logger
}

func New(settings config.Settings, uploader gcs.Uploader, recognizer speech.Recognizer, converter media.Converter, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		settings:   settings,
		uploader:   uploader,
		recognizer: recognizer,
		converter:  converter,
		log:        log,
	}
}

// Run executes the pipeline for one audio source. Every failure past
// argument validation is soft: it becomes a descriptive message routed to
// the output file, never a panic or a process exit.
func (p *Pipeline) Run(ctx context.Context, source string, opts Options) Outcome {
	p.logState(StateStart)

	if err := p.settings.Validate(); err != nil {
		switch {
		case errors.Is(err, config.ErrBucketMissing):
			return p.finish(opts, fail("Error: GCS_BUCKET_NAME not found in .env file."))
		case errors.Is(err, config.ErrCredentialsMissing):
			return p.finish(opts, fail("Error: GOOGLE_APPLICATION_CREDENTIALS environment variable not set.\n"+
				"Make sure it's defined in your .env file and points to your service account key."))
		default:
			return p.finish(opts, fail(fmt.Sprintf("Error: %v", err)))
		}
	}

	// Conversion happens before upload so only the FLAC travels.
	processPath := source
	converted := false
	if opts.AutoConvertMP3 && isLocalMP3(source) {
		flacPath, err := p.converter.ConvertToFLAC(ctx, source, media.ConversionSampleRate)
		if err != nil {
			p.log.WithError(err).Error("MP3 conversion failed")
			return p.finish(opts, fail("Error: MP3 to FLAC conversion failed. Cannot proceed."))
		}
		processPath = flacPath
		converted = true
		opts.Encoding = speech.EncodingFLAC
		opts.SampleRate = media.ConversionSampleRate
	} else if opts.Encoding.RequiresSampleRate() && opts.SampleRate == 0 {
		return p.finish(opts, fail(fmt.Sprintf(
			"Error: Sample rate must be provided via --sample-rate for this encoding (%s).", opts.Encoding)))
	}

	uri, out, failed := p.resolveSource(ctx, processPath)
	if failed {
		return p.finish(opts, out)
	}

	out = p.recognizeAndFormat(ctx, uri, processPath, opts)
	out = p.finish(opts, out)

	// The temporary FLAC is kept around on failure for diagnosis.
	if converted && !out.Failed {
		if err := os.Remove(processPath); err != nil {
			p.log.WithError(err).Warn("could not remove temporary FLAC file")
		} else {
			p.log.WithField("path", processPath).Info("temporary FLAC file removed")
		}
	}
	return out
}

// resolveSource turns the audio reference into a gs:// URI, uploading when
// it is a local file.
func (p *Pipeline) resolveSource(ctx context.Context, processPath string) (string, Outcome, bool) {
	if strings.HasPrefix(strings.ToLower(processPath), "gs://") {
		p.log.WithField("uri", processPath).Info("using existing GCS URI")
		return processPath, Outcome{}, false
	}
	if _, err := os.Stat(processPath); err != nil {
		return "", fail(fmt.Sprintf("Error: Audio source not found at '%s'", processPath)), true
	}

	p.logState(StateUploading)
	uri, err := p.uploader.Upload(ctx, processPath)
	if err != nil {
		p.log.WithError(err).Error("upload failed")
		return "", fail(fmt.Sprintf("Failed to upload audio file to Google Cloud Storage: %v", err)), true
	}
	p.log.WithField("uri", uri).Info("upload complete")
	return uri, Outcome{}, false
}

func (p *Pipeline) recognizeAndFormat(ctx context.Context, uri, processPath string, opts Options) Outcome {
	p.logState(StateAwaitingRecognition)

	timeout := opts.WaitTimeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	spinner := progress.NewSpinner(os.Stderr, "Processing API request")
	spinner.Start()
	res, err := p.recognizer.Recognize(waitCtx, speech.Request{
		URI:         uri,
		Encoding:    opts.Encoding,
		SampleRate:  opts.SampleRate,
		Language:    opts.Language,
		Diarization: opts.Diarization,
		MinSpeakers: opts.MinSpeakers,
		MaxSpeakers: opts.MaxSpeakers,
		Enhanced:    opts.EnhancedModel,
	})
	spinner.Stop()
	if err != nil {
		return fail(fmt.Sprintf("An error occurred during transcription: %v", err))
	}

	p.logState(StateFormatting)
	p.log.WithField("segments", len(res.Segments)).Info("processing transcript data")

	if !opts.Diarization {
		text, err := transcript.FormatPlain(res)
		if err != nil {
			return fail(plainErrorText(err))
		}
		return Outcome{
			Message:      fmt.Sprintf("Transcription successful using file: %s", processPath),
			Text:         text,
			SegmentCount: len(res.Segments),
		}
	}

	words, err := transcript.Normalize(res)
	if err != nil {
		switch {
		case errors.Is(err, transcript.ErrEmptyResult):
			return fail(MsgNoResults)
		case errors.Is(err, transcript.ErrNoWordData):
			return fail(MsgNoWordData)
		default:
			return fail(fmt.Sprintf("Error: %v", err))
		}
	}
	text, count := transcript.FormatDiarized(words)
	return Outcome{
		Message: fmt.Sprintf("Transcription successful using file: %s\nProcessed %d words across %d speech segments",
			processPath, count, len(res.Segments)),
		Text:         text,
		WordCount:    count,
		SegmentCount: len(res.Segments),
	}
}

// finish routes the outcome's text to the output file. A write failure is
// appended to the message but never alters the already-computed result.
func (p *Pipeline) finish(opts Options, out Outcome) Outcome {
	if opts.OutputPath != "" {
		p.logState(StateWriting)
		out.OutputPath = opts.OutputPath
		if err := transcript.WriteFile(opts.OutputPath, out.Text); err != nil {
			p.log.WithError(err).Error("writing output file failed")
			out.Message += fmt.Sprintf("\nError writing output file: %v", err)
		} else {
			p.log.WithField("path", opts.OutputPath).Info("transcript saved")
			if !out.Failed {
				out.Message += fmt.Sprintf("\nTranscript saved to: %s", opts.OutputPath)
			}
		}
	}
	if out.Failed {
		p.logState(StateFailed)
	} else {
		p.logState(StateDone)
	}
	return out
}

func (p *Pipeline) logState(s State) {
	p.log.WithField("state", s.String()).Debug("pipeline state")
}

func fail(msg string) Outcome {
	return Outcome{Message: msg, Text: msg, Failed: true}
}

func plainErrorText(err error) string {
	switch {
	case errors.Is(err, transcript.ErrEmptyResult):
		return MsgNoResults
	case errors.Is(err, transcript.ErrNoAlternatives):
		return "Error: The API returned results but no transcription alternatives."
	case errors.Is(err, transcript.ErrNoTranscriptText):
		return "Error: API returned alternatives but no transcript text."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func isLocalMP3(source string) bool {
	if strings.HasPrefix(strings.ToLower(source), "gs://") {
		return false
	}
	return strings.EqualFold(filepath.Ext(source), ".mp3")
}
