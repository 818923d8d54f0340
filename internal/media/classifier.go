// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media classifies and rewrites the media URLs attached to
// showcase projects. It recognizes Google Drive share links and YouTube
// links in their common shapes, extracts the stable asset ID and builds
// the direct-download or embed URL that the gallery actually serves.
package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Kind is the transport family a media URL resolves to.
type Kind string

const (
	KindDrive   Kind = "drive"
	KindYouTube Kind = "youtube"
	KindDirect  Kind = "direct"
	KindNone    Kind = "none"
)

var (
	// Matches file/d/<id>, open?id=<id> and uc?...id=<id> Drive URL shapes.
	driveRe = regexp.MustCompile(`(?:drive\.google\.com/(?:file/d/|open\?id=)|drive\.google\.com/uc\?.*id=)([a-zA-Z0-9_-]+)`)

	// Matches watch?v=, embed/, v/, e/ and youtu.be short links. YouTube
	// video IDs are exactly 11 characters.
	youtubeRe = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)
)

// DriveID extracts the file ID from a Google Drive URL. Returns the
// empty string when the URL is not a recognizable Drive link.
func DriveID(rawURL string) string {
	m := driveRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// YouTubeID extracts the 11-character video ID from a YouTube URL.
// Returns the empty string when the URL is not a recognizable YouTube
// link.
func YouTubeID(rawURL string) string {
	m := youtubeRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// Classify reports which transport family a URL belongs to. An empty
// URL classifies as KindNone; anything that is neither Drive nor
// YouTube is treated as a direct file URL.
func Classify(rawURL string) Kind {
	switch {
	case strings.TrimSpace(rawURL) == "":
		return KindNone
	case DriveID(rawURL) != "":
		return KindDrive
	case YouTubeID(rawURL) != "":
		return KindYouTube
	default:
		return KindDirect
	}
}

// NormalizeDriveURL rewrites a Drive share link into its direct-download
// form. URLs that do not contain a Drive file ID pass through unchanged,
// so it is safe to call on every stored URL.
func NormalizeDriveURL(rawURL string) string {
	id := DriveID(rawURL)
	if id == "" {
		return rawURL
	}
	return "https://drive.google.com/uc?export=download&id=" + id
}

// DrivePreviewURL builds the iframe-embeddable preview form of a Drive
// file. Returns the empty string for non-Drive URLs.
func DrivePreviewURL(rawURL string) string {
	id := DriveID(rawURL)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", id)
}

// EmbedOptions control the player parameters of a YouTube embed URL.
type EmbedOptions struct {
	Autoplay bool
	Mute     bool
	Loop     bool
	Controls bool
}

// YouTubeEmbedURL builds the embeddable player URL for a YouTube video.
// Looping requires the playlist parameter set to the video's own ID,
// which is how the embed player implements single-video loops. Returns
// the empty string for non-YouTube URLs.
func YouTubeEmbedURL(rawURL string, opts EmbedOptions) string {
	id := YouTubeID(rawURL)
	if id == "" {
		return ""
	}

	q := url.Values{}
	if opts.Autoplay {
		q.Set("autoplay", "1")
	}
	if opts.Mute {
		q.Set("mute", "1")
	}
	if opts.Loop {
		q.Set("loop", "1")
		q.Set("playlist", id)
	}
	if opts.Controls {
		q.Set("controls", "1")
	} else {
		q.Set("controls", "0")
	}

	return "https://www.youtube.com/embed/" + id + "?" + q.Encode()
}
