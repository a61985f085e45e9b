package hlsaudio

import (
	"encoding/json"
	"fmt"
	"os"
)

// loadPlaylistCache loads a previously parsed playlist from a JSON file.
func loadPlaylistCache(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var segments []Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached playlist: %w", err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("cached playlist is empty")
	}

	return &Playlist{Segments: segments}, nil
}

// savePlaylistCache writes the parsed playlist to a JSON file so later runs
// can skip downloading and parsing it.
func savePlaylistCache(path string, playlist *Playlist) error {
	data, err := json.Marshal(playlist.Segments)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
