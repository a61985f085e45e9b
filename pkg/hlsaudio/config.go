package hlsaudio

import (
	"fmt"
	"os"
)

// Config holds global configuration
type Config struct {
	verbose bool
}

var config Config

// Vprint prints a progress message to stderr if verbose mode is enabled.
// Messages go to stderr so they never mix with audio bytes on stdout.
func Vprint(format string, a ...interface{}) {
	if config.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}
}

// SetVerbose sets the verbose mode for logging
func SetVerbose(verbose bool) {
	config.verbose = verbose
}
