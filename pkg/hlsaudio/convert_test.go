package hlsaudio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunEndToEnd(t *testing.T) {
	ss, server := newSegmentServer(map[string]string{
		"/media/index.m3u8": mediaPlaylistText,
		"/media/a.ts":       "payload-a",
		"/media/b.ts":       "payload-b",
	})
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		Input:  server.URL + "/media/index.m3u8",
		Raw:    true,
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.String() != "payload-apayload-b" {
		t.Errorf("expected concatenated payloads, got %q", out.String())
	}

	want := []string{"/media/index.m3u8", "/media/a.ts", "/media/b.ts"}
	requests := ss.requestLog()
	if len(requests) != len(want) {
		t.Fatalf("expected %d requests, got %d: %v", len(want), len(requests), requests)
	}
	for i, path := range want {
		if requests[i] != path {
			t.Errorf("request %d: expected %q, got %q", i, path, requests[i])
		}
	}
}

func TestRunStdinWithBaseURL(t *testing.T) {
	_, server := newSegmentServer(map[string]string{
		"/media/a.ts": "payload-a",
		"/media/b.ts": "payload-b",
	})
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		BaseURL: server.URL + "/media/index.m3u8",
		Raw:     true,
		Stdin:   strings.NewReader(mediaPlaylistText),
		Stdout:  &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.String() != "payload-apayload-b" {
		t.Errorf("expected concatenated payloads, got %q", out.String())
	}
}

func TestRunAbortsBeforeOutput(t *testing.T) {
	_, server := newSegmentServer(map[string]string{
		"/media/index.m3u8": mediaPlaylistText,
		"/media/a.ts":       "payload-a",
		// b.ts is missing, its fetch returns 404
	})
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		Input:  server.URL + "/media/index.m3u8",
		Raw:    true,
		Stdout: &out,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected a NetworkError, got %T: %v", err, err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output after a failed fetch, got %d bytes", out.Len())
	}
}

func TestRunFileOutputMatchesStdout(t *testing.T) {
	_, server := newSegmentServer(map[string]string{
		"/media/index.m3u8": mediaPlaylistText,
		"/media/a.ts":       "payload-a",
		"/media/b.ts":       "payload-b",
	})
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "out.ts")
	err := Run(context.Background(), Options{
		Input:  server.URL + "/media/index.m3u8",
		Output: outPath,
		Raw:    true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	fromFile, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	var fromStdout bytes.Buffer
	err = Run(context.Background(), Options{
		Input:  server.URL + "/media/index.m3u8",
		Raw:    true,
		Stdout: &fromStdout,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !bytes.Equal(fromFile, fromStdout.Bytes()) {
		t.Errorf("file output and stdout output differ: %q vs %q", fromFile, fromStdout.Bytes())
	}
}

// writeFakeTool writes an executable shell script standing in for ffmpeg.
func writeFakeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunRemovesOutputOnConversionFailure(t *testing.T) {
	_, server := newSegmentServer(map[string]string{
		"/media/index.m3u8": mediaPlaylistText,
		"/media/a.ts":       "payload-a",
		"/media/b.ts":       "payload-b",
	})
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "out.mp3")
	err := Run(context.Background(), Options{
		Input:      server.URL + "/media/index.m3u8",
		Output:     outPath,
		FFmpegPath: writeFakeTool(t, "printf partial-bytes\nexit 1"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected a ConversionError, got %T: %v", err, err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Errorf("expected output file to be removed after a failed conversion, stat: %v", statErr)
	}
}

func TestRunConvertsThroughTool(t *testing.T) {
	_, server := newSegmentServer(map[string]string{
		"/media/index.m3u8": mediaPlaylistText,
		"/media/a.ts":       "payload-a",
		"/media/b.ts":       "payload-b",
	})
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "out.mp3")
	err := Run(context.Background(), Options{
		Input:      server.URL + "/media/index.m3u8",
		Output:     outPath,
		FFmpegPath: writeFakeTool(t, "cat >/dev/null\nprintf converted-bytes"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "converted-bytes" {
		t.Errorf("expected converted output, got %q", data)
	}
}

func TestRunCacheSaveFailureDoesNotAbort(t *testing.T) {
	_, server := newSegmentServer(map[string]string{
		"/media/index.m3u8": mediaPlaylistText,
		"/media/a.ts":       "payload-a",
		"/media/b.ts":       "payload-b",
	})
	defer server.Close()

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		Input:     server.URL + "/media/index.m3u8",
		Raw:       true,
		CacheFile: filepath.Join(t.TempDir(), "no-such-dir", "playlist.json"),
		Stdout:    &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "payload-apayload-b" {
		t.Errorf("expected concatenated payloads, got %q", out.String())
	}
}

func TestRunMissingInput(t *testing.T) {
	err := Run(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "nope.m3u8"),
		Raw:   true,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected a NotFoundError, got %T: %v", err, err)
	}
}

func TestRunLocalPlaylistWithLocalSegments(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte("local-a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.ts"), []byte("local-b"), 0644); err != nil {
		t.Fatal(err)
	}
	playlistPath := filepath.Join(dir, "index.m3u8")
	if err := os.WriteFile(playlistPath, []byte(mediaPlaylistText), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		Input:  playlistPath,
		Raw:    true,
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "local-alocal-b" {
		t.Errorf("expected concatenated local segments, got %q", out.String())
	}
}
