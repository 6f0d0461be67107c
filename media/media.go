// Package media preprocesses audio for transcription backends. The only
// operation today is an ffmpeg transcode to the mono 16 kHz WAV shape
// speech models expect.
package media

import (
	"context"
	"strings"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/process"
)

// Transcoder converts audio files via an ffmpeg binary.
type Transcoder struct {
	bin string
	log *logger.Logger
}

// NewTranscoder creates a Transcoder. An empty bin defaults to "ffmpeg"
// resolved via PATH.
func NewTranscoder(bin string) *Transcoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &Transcoder{bin: bin, log: logger.Get("media")}
}

// TranscodeToWAV16kMono converts inputPath to a mono 16 kHz WAV next to
// the input and returns the derived path. The input file is left intact.
func (t *Transcoder) TranscodeToWAV16kMono(ctx context.Context, inputPath string) (string, error) {
	outputPath := derivedPath(inputPath)

	result, err := process.Run(ctx, process.Command{
		Binary: t.bin,
		Args:   []string{"-y", "-i", inputPath, "-ac", "1", "-ar", "16000", "-f", "wav", outputPath},
	})
	if err != nil {
		cause := err.Error()
		if result != nil {
			if stderr := strings.TrimSpace(string(result.Stderr)); stderr != "" {
				cause = lastLine(stderr)
			}
		}
		return "", errors.Internal(err).WithDetail("ffmpeg", cause)
	}

	t.log.Debug("audio transcoded", logger.Fields(logger.FieldFile, outputPath))
	return outputPath, nil
}

// derivedPath appends the WAV suffix rather than replacing the extension,
// so distinct inputs never collide on the derived name.
func derivedPath(inputPath string) string {
	return inputPath + ".16k.wav"
}

// lastLine trims ffmpeg's banner noise down to its final message, which is
// where it reports the actual failure.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
