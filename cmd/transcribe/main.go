package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/config"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/gcs"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/logging"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/media"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/pipeline"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/speech"
	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/transcript"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorRed    = "\033[31m"
)

func info(msg string, a ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[info] "+colorReset+msg+"\n", a...)
}

func ok(msg string, a ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[ok] "+colorReset+msg+"\n", a...)
}

func warn(msg string, a ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[warn] "+colorReset+msg+"\n", a...)
}

func fail(msg string, a ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[error] "+colorReset+msg+"\n", a...)
}

func main() {
	var (
		language    string
		minSpeakers int
		maxSpeakers int
		sampleRate  int
		encodingArg string
		outPath     string
		enhanced    bool
		noDiarize   bool
		noConvert   bool
		bucket      string
		timeoutSec  int
	)

	flag.StringVar(&language, "language", "en-US", "Language code, e.g. en-US, es-ES, fr-FR (-l)")
	flag.StringVar(&language, "l", "en-US", "Language code")
	flag.IntVar(&minSpeakers, "min-speakers", 1, "Minimum number of speakers expected")
	flag.IntVar(&maxSpeakers, "max-speakers", 5, "Maximum number of speakers expected")
	flag.IntVar(&sampleRate, "sample-rate", 0, "Sample rate in Hz; required for LINEAR16/FLAC/MULAW input that is not auto-converted")
	flag.StringVar(&encodingArg, "encoding", "", "Audio encoding ("+speech.SupportedEncodings()+"); determined automatically for MP3 input")
	flag.StringVar(&outPath, "output", "", "Path to save the transcript output (-o)")
	flag.StringVar(&outPath, "o", "", "Path to save the transcript output")
	flag.BoolVar(&enhanced, "enhanced", false, "Use the enhanced long-form model (may increase processing time)")
	flag.BoolVar(&noDiarize, "no-diarization", false, "Disable speaker diarization; emit a plain transcript")
	flag.BoolVar(&noConvert, "no-convert", false, "Do not auto-convert MP3 input to FLAC")
	flag.StringVar(&bucket, "bucket", "", "GCS bucket for uploads (overrides GCS_BUCKET_NAME)")
	flag.IntVar(&timeoutSec, "timeout", 1800, "Seconds to wait for the recognition operation")
	flag.Parse()

	if flag.NArg() != 1 {
		fail("expected exactly one audio source (local path or gs:// URI)")
		flag.Usage()
		os.Exit(2)
	}
	source := flag.Arg(0)

	// Pre-flight validation fails hard; everything after it fails soft
	// into the output artifact.
	isMP3 := strings.EqualFold(filepath.Ext(source), ".mp3")
	autoConvert := isMP3 && !noConvert

	var encoding speech.Encoding
	if encodingArg != "" {
		var err error
		encoding, err = speech.ParseEncoding(encodingArg)
		if err != nil {
			fail("%v", err)
			os.Exit(1)
		}
	} else if !autoConvert {
		fail("--encoding is required for non-MP3 input files (supported: %s)", speech.SupportedEncodings())
		os.Exit(1)
	}
	if encoding.RequiresSampleRate() && sampleRate == 0 && !autoConvert {
		fail("--sample-rate is required for encoding %s", encoding)
		os.Exit(1)
	}

	if outPath == "" {
		outPath = defaultOutputPath(source, !noDiarize)
		info("Output will be saved to: %s", outPath)
	}

	config.LoadEnvFiles()
	settings := config.FromEnv()
	if bucket != "" {
		settings.Bucket = bucket
	}
	log := logging.New(settings.LogLevel)

	printSummary(source, language, minSpeakers, maxSpeakers, sampleRate, encoding, enhanced, !noDiarize, autoConvert)

	ctx := context.Background()
	opts := pipeline.Options{
		Language:       language,
		MinSpeakers:    minSpeakers,
		MaxSpeakers:    maxSpeakers,
		SampleRate:     sampleRate,
		Encoding:       encoding,
		OutputPath:     outPath,
		Diarization:    !noDiarize,
		AutoConvertMP3: autoConvert,
		EnhancedModel:  enhanced,
		WaitTimeout:    time.Duration(timeoutSec) * time.Second,
	}

	// Collaborators are only dialed once configuration validates; an
	// invalid configuration takes the soft-failure path inside Run.
	var (
		uploader   gcs.Uploader
		recognizer speech.Recognizer
	)
	if err := settings.Validate(); err == nil {
		gcsClient, err := gcs.NewClient(ctx, settings.Bucket, log)
		if err != nil {
			softFail(outPath, fmt.Sprintf("An error occurred during transcription: %v", err))
			return
		}
		defer gcsClient.Close()

		speechClient, err := speech.NewClient(ctx, log)
		if err != nil {
			softFail(outPath, fmt.Sprintf("An error occurred during transcription: %v", err))
			return
		}
		defer speechClient.Close()

		uploader = gcsClient
		recognizer = speechClient
	}

	p := pipeline.New(settings, uploader, recognizer, media.NewFFmpeg(log), log)
	out := p.Run(ctx, source, opts)

	fmt.Println()
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("TRANSCRIPTION SUMMARY")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println(out.Message)
	if out.Failed {
		warn("run finished with errors; details were saved to %s", outPath)
	} else {
		ok("Process complete.")
	}
}

// softFail reports a failure that happened after pre-flight validation:
// the message goes to the console and, like any other runtime failure, to
// the output file. The process still exits zero.
func softFail(outPath, msg string) {
	fail("%s", msg)
	if err := transcript.WriteFile(outPath, msg); err != nil {
		fail("writing error details to %s: %v", outPath, err)
	}
}

// defaultOutputPath mirrors the historical naming scheme:
// output/<base>_<timestamp>_diarized.txt (or _transcript.txt).
func defaultOutputPath(source string, diarized bool) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	suffix := "transcript"
	if diarized {
		suffix = "diarized"
	}
	ts := time.Now().Format("20060102_150405")
	return filepath.Join("output", fmt.Sprintf("%s_%s_%s.txt", base, ts, suffix))
}

func printSummary(source, language string, minSpeakers, maxSpeakers, sampleRate int, encoding speech.Encoding, enhanced, diarized, autoConvert bool) {
	info("Configuration Summary:")
	info("- Input: %s", filepath.Base(source))
	info("- Language: %s", language)
	if diarized {
		info("- Speakers: %d to %d", minSpeakers, maxSpeakers)
	} else {
		info("- Diarization: disabled")
	}
	info("- Enhanced Model: %v", enhanced)
	if autoConvert {
		info("- Processing: MP3 will be automatically converted to FLAC")
	} else {
		info("- Encoding: %s", encoding)
		if sampleRate > 0 {
			info("- Sample Rate: %d Hz", sampleRate)
		}
	}
}
