package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollowness-inside/m3u82mp3/pkg/hlsaudio"
)

var (
	input       string
	output      string
	baseURL     string
	format      string
	raw         bool
	ffmpegPath  string
	headersFile string
	cacheFile   string
	timeout     time.Duration
	verbose     bool
)

func runE(cmd *cobra.Command, args []string) error {
	hlsaudio.SetVerbose(verbose)

	opts := hlsaudio.Options{
		Input:       input,
		Output:      output,
		BaseURL:     baseURL,
		Format:      format,
		Raw:         raw,
		FFmpegPath:  ffmpegPath,
		HeadersFile: headersFile,
		CacheFile:   cacheFile,
		Timeout:     timeout,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
	}

	// The bar goes to stderr, but suppress it entirely when the audio
	// itself goes to stdout, so piped runs stay quiet.
	if output != "" {
		opts.Progress = os.Stderr
	}

	return hlsaudio.Run(cmd.Context(), opts)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "m3u82mp3",
		Short:        "Convert an M3U8 audio stream to a single audio file",
		Args:         cobra.NoArgs,
		RunE:         runE,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "Input playlist path or URL (default: stdin)")
	flags.StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVar(&baseURL, "base-url", "", "Base URL for resolving relative segment URIs")
	flags.StringVar(&format, "format", "mp3", "Target audio container format")
	flags.BoolVar(&raw, "raw", false, "Write the concatenated segments without conversion")
	flags.StringVar(&ffmpegPath, "ffmpeg", "", "Path to ffmpeg executable")
	flags.StringVar(&headersFile, "headers", "", "Path to JSON file containing request headers")
	flags.StringVar(&cacheFile, "cache", "", "Path to cache the parsed playlist")
	flags.DurationVar(&timeout, "timeout", 0, "HTTP request timeout (0 disables the timeout)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
