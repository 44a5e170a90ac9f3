// Package ioutils provides file system utilities for the downloader.
//
// # Atomic Writes
//
// WriteFileAtomic writes into a temporary file in the destination
// directory and renames it into place, so a concurrent reader never
// observes a partial file under the final name:
//
//	err := ioutils.WriteFileAtomic("/music/test-album", "01. Opening.mp3", data)
//
// # Filename Sanitization
//
// SanitizeFileName strips characters that are invalid in file names:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // "Song_ Part 1_2"
package ioutils
