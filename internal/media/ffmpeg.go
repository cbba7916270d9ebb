// Package media shells out to ffmpeg/ffprobe for the audio preprocessing
// the recognition service cannot do itself.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/progress"
)

// ErrFFmpegMissing means the ffmpeg binary is not on PATH.
var ErrFFmpegMissing = errors.New("ffmpeg not found on PATH; install ffmpeg to convert MP3 input")

// ConversionSampleRate is the sample rate FLAC output is resampled to.
const ConversionSampleRate = 48000

// Converter turns an MP3 into a FLAC the service accepts.
type Converter interface {
	ConvertToFLAC(ctx context.Context, mp3Path string, sampleRate int) (string, error)
}

// FFmpeg is the Converter backed by the external ffmpeg binary.
type FFmpeg struct {
	log *logrus.Logger
}

func NewFFmpeg(log *logrus.Logger) *FFmpeg {
	return &FFmpeg{log: log}
}

// Duration probes the audio length in seconds via ffprobe. Used only to
// scale the conversion progress bar; failure is not fatal.
func Duration(ctx context.Context, path string) (float64, error) {
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration: %w", err)
	}
	return d, nil
}

// FLACPath derives the sibling .flac path for an input file.
func FLACPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".flac"
}

// ConvertToFLAC resamples mp3Path to a sibling FLAC file at the given
// sample rate and returns its path. Partial output is removed on failure;
// the original file is never touched.
func (f *FFmpeg) ConvertToFLAC(ctx context.Context, mp3Path string, sampleRate int) (string, error) {
	if _, err := os.Stat(mp3Path); err != nil {
		return "", fmt.Errorf("input file: %w", err)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "", ErrFFmpegMissing
	}

	flacPath := FLACPath(mp3Path)
	f.log.WithFields(logrus.Fields{
		"input":       mp3Path,
		"output":      flacPath,
		"sample_rate": sampleRate,
	}).Info("converting MP3 to FLAC")

	// Probe for an estimate; without one the bar degrades to a spinner.
	estimate, err := Duration(ctx, mp3Path)
	if err != nil {
		f.log.WithError(err).Debug("could not determine audio duration")
		estimate = 0
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", mp3Path,
		"-ar", strconv.Itoa(sampleRate),
		"-y",
		"-hide_banner", "-loglevel", "error",
		flacPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stop := animateConversion(estimate)
	runErr := cmd.Run()
	stop()

	if runErr != nil {
		os.Remove(flacPath)
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("ffmpeg conversion: %s: %w", msg, runErr)
		}
		return "", fmt.Errorf("ffmpeg conversion: %w", runErr)
	}
	return flacPath, nil
}

// animateConversion draws a progress bar scaled by the duration estimate
// (or a spinner when none is available) until the returned stop func runs.
func animateConversion(estimate float64) func() {
	if estimate <= 0 {
		sp := progress.NewSpinner(os.Stderr, "Converting")
		sp.Start()
		return sp.Stop
	}
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		bar := progress.NewBarReporter(os.Stderr, "Converting")
		start := time.Now()
		tick := time.NewTicker(200 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-done:
				bar.Done()
				return
			case <-tick.C:
				percent := int(time.Since(start).Seconds() / estimate * 100)
				if percent > 99 {
					percent = 99 // the estimate is wall-clock, not codec speed
				}
				bar.Update(percent)
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
