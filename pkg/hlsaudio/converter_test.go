package hlsaudio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestConverterErrors(t *testing.T) {
	tests := []struct {
		name   string
		ffmpeg string
	}{
		{
			name:   "tool exits non-zero",
			ffmpeg: "false",
		},
		{
			name:   "tool does not exist",
			ffmpeg: "no-such-conversion-tool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converter := &Converter{FFmpegPath: tt.ffmpeg}
			err := converter.Convert(context.Background(), strings.NewReader("data"), io.Discard)
			if err == nil {
				t.Fatal("expected an error")
			}
			var convErr *ConversionError
			if !errors.As(err, &convErr) {
				t.Fatalf("expected a ConversionError, got %T: %v", err, err)
			}
			if convErr.Tool != tt.ffmpeg {
				t.Errorf("expected tool %q, got %q", tt.ffmpeg, convErr.Tool)
			}
		})
	}
}
