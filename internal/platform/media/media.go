// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media inspects uploaded audio files.

Chapter uploads need a duration for the listener app and a title for the
panel. Both are read from the file itself: the duration by walking the MP3
frames (tcolgate/mp3), the title from ID3/MP4/FLAC tags (dhowden/tag).
*/
package media

import (
	"errors"
	"io"
	"math"
	"path"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"

	"github.com/taibuivan/navaadmin/pkg/persian"
)

// AudioInfo is what could be learned from an audio file.
type AudioInfo struct {
	// DurationSeconds is 0 when the format has no frame decoder.
	DurationSeconds int
	Title           string
	Artist          string
	Album           string
}

// ErrNoFrames is returned when an .mp3 file contains no decodable frame.
var ErrNoFrames = errors.New("media: no mp3 frames found")

/*
ProbeAudio reads tags and duration from an uploaded file.

The result is best effort: tag errors are ignored, and non-MP3 formats
report a zero duration.

Parameters:
  - reader: io.ReadSeeker positioned anywhere; it is rewound before returning
  - filename: string (used to choose the decoder)

Returns:
  - AudioInfo: Whatever could be read
  - error: ErrNoFrames for an .mp3 without frames, or a seek failure
*/
func ProbeAudio(reader io.ReadSeeker, filename string) (AudioInfo, error) {
	var info AudioInfo

	// ── 1. Tags ───────────────────────────────────────────────────────────
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return info, err
	}
	if metadata, err := tag.ReadFrom(reader); err == nil {
		info.Title = clean(metadata.Title())
		info.Artist = clean(metadata.Artist())
		info.Album = clean(metadata.Album())
	}

	// ── 2. Duration ───────────────────────────────────────────────────────
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return info, err
	}
	if strings.EqualFold(path.Ext(filename), ".mp3") {
		seconds, err := mp3Duration(reader)
		if err != nil {
			_, _ = reader.Seek(0, io.SeekStart)
			return info, err
		}
		info.DurationSeconds = int(math.Round(seconds))
	}

	_, err := reader.Seek(0, io.SeekStart)
	return info, err
}

// mp3Duration sums the duration of every frame. A truncated final frame ends the stream.
func mp3Duration(reader io.Reader) (float64, error) {
	var (
		decoder = mp3.NewDecoder(reader)
		frame   mp3.Frame
		skipped int
		total   float64
		frames  int
	)

	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			if frames == 0 {
				return 0, err
			}
			break
		}
		total += frame.Duration().Seconds()
		frames++
	}

	if frames == 0 {
		return 0, ErrNoFrames
	}
	return total, nil
}

// TitleFromFilename derives a chapter title from an upload name
// ("01_فصل-اول.mp3" becomes "01 فصل اول").
func TitleFromFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(persian.Normalize(base)), " ")
}

func clean(value string) string {
	return strings.TrimSpace(strings.Trim(value, "\x00"))
}
