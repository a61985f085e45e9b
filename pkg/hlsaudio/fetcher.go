package hlsaudio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Fetcher yields segment payloads one at a time, in playlist order. Fetches
// are strictly sequential so that output order always matches playlist
// order; any failure aborts the whole run.
type Fetcher struct {
	client   *http.Client
	segments []Segment
	next     int
}

// NewFetcher creates a fetcher over the playlist's segments.
func NewFetcher(client *http.Client, segments []Segment) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, segments: segments}
}

// Len returns the total number of segments.
func (f *Fetcher) Len() int { return len(f.segments) }

// More reports whether segments remain to be fetched.
func (f *Fetcher) More() bool { return f.next < len(f.segments) }

// Next fetches the next segment and returns its payload. It returns io.EOF
// once all segments have been fetched.
func (f *Fetcher) Next(ctx context.Context) ([]byte, error) {
	if !f.More() {
		return nil, io.EOF
	}
	seg := f.segments[f.next]
	f.next++
	return f.fetch(ctx, seg)
}

func (f *Fetcher) fetch(ctx context.Context, seg Segment) ([]byte, error) {
	u, err := url.Parse(seg.URI)
	if err != nil {
		return nil, &NetworkError{URL: seg.URI, Err: err}
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, seg.URI)
	case "", "file":
		return readLocal(u.Path)
	default:
		return nil, &NetworkError{URL: seg.URI, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	Vprint("Downloading segment %s", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	return data, nil
}

func readLocal(path string) ([]byte, error) {
	Vprint("Reading segment %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	return data, nil
}
