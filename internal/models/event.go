package models

import (
	"path/filepath"
	"strings"
)

// ShareEvent is the inbound notification that a file was shared in a channel
type ShareEvent struct {
	FileID    string
	UserID    string
	ChannelID string
}

// Key identifies the event for duplicate suppression
func (e ShareEvent) Key() string {
	return e.ChannelID + ":" + e.FileID
}

// FileMetadata is the subset of the platform's file object the pipeline reads
type FileMetadata struct {
	ID       string
	URL      string
	Name     string
	Mimetype string
	Filetype string
	Size     int
}

// Result is only produced when every stage succeeded
type Result struct {
	Summary    string
	Transcript string
}

var mediaExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv",
	".m4a", ".mp3", ".wav", ".ogg",
}

// IsMedia reports whether a file looks like audio or video, by mimetype
// first and extension second.
func IsMedia(name, mimetype string) bool {
	mt := strings.ToLower(mimetype)
	if strings.HasPrefix(mt, "video/") || strings.HasPrefix(mt, "audio/") {
		return true
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range mediaExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
