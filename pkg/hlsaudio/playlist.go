package hlsaudio

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/grafov/m3u8"
)

// Segment is one playlist entry with its URI resolved absolute.
type Segment struct {
	URI      string
	Duration float64
}

// Playlist is the ordered segment list of a media playlist. Segment order
// is the final audio order.
type Playlist struct {
	Segments []Segment
}

// ParsePlaylist parses M3U8 text into an ordered list of segments, resolving
// relative URIs against base. Master playlists and encrypted streams are
// rejected as unsupported.
func ParsePlaylist(data []byte, base *url.URL) (*Playlist, error) {
	text := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(bytes.TrimSpace(text), []byte("#EXTM3U")) {
		return nil, &ParseError{Reason: "file does not start with #EXTM3U"}
	}

	decoded, listType, err := m3u8.DecodeFrom(bytes.NewReader(text), true)
	if err != nil {
		return nil, &ParseError{Reason: "failed to decode m3u8", Err: err}
	}

	if listType != m3u8.MEDIA {
		return nil, &ParseError{Reason: "master playlists are not supported, pass a media playlist"}
	}

	media := decoded.(*m3u8.MediaPlaylist)
	if encrypted(media.Key) {
		return nil, &ParseError{Reason: "encrypted streams are not supported"}
	}

	segments := make([]Segment, 0, media.Count())
	for i := uint(0); i < media.Count(); i++ {
		seg := media.Segments[i]
		if seg == nil {
			continue
		}
		if encrypted(seg.Key) {
			return nil, &ParseError{Reason: "encrypted streams are not supported"}
		}

		uri, err := resolveReference(seg.URI, base)
		if err != nil {
			return nil, err
		}
		segments = append(segments, Segment{URI: uri, Duration: seg.Duration})
	}

	return &Playlist{Segments: segments}, nil
}

func encrypted(key *m3u8.Key) bool {
	return key != nil && key.Method != "" && key.Method != "NONE"
}

func resolveReference(uri string, base *url.URL) (string, error) {
	ref, err := url.Parse(uri)
	if err != nil {
		return "", &ParseError{Reason: fmt.Sprintf("invalid segment URI %q", uri), Err: err}
	}

	switch ref.Scheme {
	case "", "http", "https", "file":
	default:
		return "", &ParseError{Reason: fmt.Sprintf("unsupported segment URI scheme %q", ref.Scheme)}
	}

	if ref.IsAbs() {
		return ref.String(), nil
	}
	if base == nil {
		return "", &ParseError{Reason: fmt.Sprintf("relative segment URI %q with no base URL, use --base-url", uri)}
	}
	return base.ResolveReference(ref).String(), nil
}
