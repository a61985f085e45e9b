package hlsaudio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Options configures a single conversion run.
type Options struct {
	// Input is the playlist location: an http(s) URL, a local path, or
	// empty to read the playlist from Stdin.
	Input string
	// Output is the destination file; empty writes to Stdout.
	Output string
	// BaseURL overrides the base location used to resolve relative
	// segment URIs.
	BaseURL string

	// FFmpegPath and Format configure the conversion step. Raw skips
	// conversion and writes the concatenated segments as-is.
	FFmpegPath string
	Format     string
	Raw        bool

	// HeadersFile is an optional JSON file of request headers.
	HeadersFile string
	// CacheFile, when set, caches the parsed playlist as JSON so repeated
	// runs skip downloading and parsing it.
	CacheFile string
	// Timeout bounds each HTTP request; zero means no timeout.
	Timeout time.Duration

	// Stdin and Stdout default to os.Stdin and os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer
	// Progress, when non-nil, receives a progress bar during the fetch
	// loop. It must not be the same stream as the output.
	Progress io.Writer
}

// Run executes the whole pipeline: resolve the playlist, parse it, fetch
// every segment in order, then convert and write the result. The full
// stream is collected in memory before the first output byte is written,
// so a failed fetch never leaves partial output behind.
func Run(ctx context.Context, opts Options) error {
	client := &http.Client{Timeout: opts.Timeout}
	if opts.HeadersFile != "" {
		headers, err := LoadHeaders(opts.HeadersFile)
		if err != nil {
			return err
		}
		client.Transport = &HeaderMapTransport{Headers: headers}
	}

	playlist, err := loadPlaylist(ctx, client, opts)
	if err != nil {
		return err
	}
	Vprint("Found %d segments", len(playlist.Segments))

	stream, err := fetchAll(ctx, client, playlist, opts.Progress)
	if err != nil {
		return err
	}

	return writeOutput(ctx, opts, stream)
}

// loadPlaylist obtains the ordered segment list, from the cache file when
// one is set and present, otherwise by resolving and parsing the input.
func loadPlaylist(ctx context.Context, client *http.Client, opts Options) (*Playlist, error) {
	if opts.CacheFile != "" {
		if playlist, err := loadPlaylistCache(opts.CacheFile); err == nil {
			Vprint("Using cached playlist %s", opts.CacheFile)
			return playlist, nil
		}
	}

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	src, err := ResolveInput(ctx, client, opts.Input, stdin)
	if err != nil {
		return nil, err
	}

	base := src.Base
	if opts.BaseURL != "" {
		base, err = url.Parse(opts.BaseURL)
		if err != nil {
			return nil, &ParseError{Reason: "invalid base URL", Err: err}
		}
	}

	playlist, err := ParsePlaylist(src.Text, base)
	if err != nil {
		return nil, err
	}

	if opts.CacheFile != "" {
		// Best effort, a failed cache write must not abort the run.
		if err := savePlaylistCache(opts.CacheFile, playlist); err != nil {
			Vprint("Failed to cache playlist: %v", err)
		}
	}
	return playlist, nil
}

// fetchAll drains the fetcher into a single buffer, segments concatenated
// in playlist order.
func fetchAll(ctx context.Context, client *http.Client, playlist *Playlist, progress io.Writer) (*bytes.Buffer, error) {
	fetcher := NewFetcher(client, playlist.Segments)

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(fetcher.Len(),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("Downloading segments"),
			progressbar.OptionShowCount(),
		)
	}

	var stream bytes.Buffer
	for fetcher.More() {
		data, err := fetcher.Next(ctx)
		if err != nil {
			return nil, err
		}
		stream.Write(data)
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	return &stream, nil
}

func writeOutput(ctx context.Context, opts Options, stream *bytes.Buffer) error {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	name := "stdout"
	var file *os.File
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return &IOError{Path: opts.Output, Err: err}
		}
		file = f
		out = f
		name = opts.Output
	}

	if err := convertStream(ctx, opts, stream, out); err != nil {
		if file != nil {
			// Discard the partial file, a failed run must leave no output.
			file.Close()
			os.Remove(opts.Output)
		}
		return err
	}

	if file != nil {
		if err := file.Close(); err != nil {
			return &IOError{Path: name, Err: err}
		}
	}

	Vprint("Wrote %s", name)
	return nil
}

func convertStream(ctx context.Context, opts Options, stream *bytes.Buffer, out io.Writer) error {
	if opts.Raw {
		if _, err := out.Write(stream.Bytes()); err != nil {
			return &IOError{Path: outputName(opts), Err: err}
		}
		return nil
	}

	converter := &Converter{FFmpegPath: opts.FFmpegPath, Format: opts.Format}
	return converter.Convert(ctx, stream, out)
}

func outputName(opts Options) string {
	if opts.Output != "" {
		return opts.Output
	}
	return "stdout"
}
