package hlsaudio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Source is a resolved playlist input: its raw text plus the location it
// was loaded from, used to resolve relative segment URIs. Base is nil when
// the playlist came from stdin.
type Source struct {
	Text []byte
	Base *url.URL
}

// ResolveInput obtains the playlist text. The input may be an http(s) URL,
// a local file path, or empty, in which case stdin is read fully before
// parsing begins.
func ResolveInput(ctx context.Context, client *http.Client, input string, stdin io.Reader) (*Source, error) {
	if input == "" {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &IOError{Path: "stdin", Err: err}
		}
		return &Source{Text: text}, nil
	}

	u, err := url.Parse(input)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return fetchPlaylist(ctx, client, u)
	}

	text, err := os.ReadFile(input)
	if err != nil {
		return nil, &NotFoundError{Path: input, Err: err}
	}

	// URL reference resolution yields rooted paths, so the local base must
	// be absolute for sibling segment files to resolve correctly.
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	return &Source{Text: text, Base: &url.URL{Path: abs}}, nil
}

func fetchPlaylist(ctx context.Context, client *http.Client, u *url.URL) (*Source, error) {
	Vprint("Downloading playlist %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &NetworkError{URL: u.String(), Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: u.String(), Err: err}
	}

	return &Source{Text: text, Base: u}, nil
}
