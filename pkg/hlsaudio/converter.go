package hlsaudio

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

const (
	defaultFFmpeg = "ffmpeg"
	defaultFormat = "mp3"
)

// Converter re-encodes a concatenated transport stream into the target
// audio container by piping it through ffmpeg.
type Converter struct {
	// FFmpegPath is the ffmpeg executable, "ffmpeg" if empty.
	FFmpegPath string
	// Format is the target container format, "mp3" if empty.
	Format string
}

// Convert pipes in through ffmpeg and writes the converted audio to out.
func (c *Converter) Convert(ctx context.Context, in io.Reader, out io.Writer) error {
	ffmpeg := c.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = defaultFFmpeg
	}
	format := c.Format
	if format == "" {
		format = defaultFormat
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vn",
		"-f", format,
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	cmd.Stdin = in
	cmd.Stdout = out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ConversionError{
			Tool:   ffmpeg,
			Output: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}
