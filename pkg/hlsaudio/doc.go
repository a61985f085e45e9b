// Package hlsaudio downloads the media segments listed in a VOD M3U8
// playlist and concatenates them into a single audio file, optionally
// transcoding the result to a target format with ffmpeg.
package hlsaudio
