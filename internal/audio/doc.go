// Package audio provides post-download services for audio files:
// ID3 tag writing and playlist generation.
//
// # ID3 Tagging
//
// The Tagger stamps album-level metadata onto downloaded MP3 files:
//
//	tagger := audio.NewTagger()
//	err := tagger.Tag("/music/test-album/01. Opening.mp3", track)
//
// Only MP3 files are tagged; other formats pass through untouched.
//
// # Playlist Generation
//
// Playlist renders an M3U playlist for an album:
//
//	content := audio.Playlist(album)
//	os.WriteFile(filepath.Join(dir, audio.PlaylistName), []byte(content), 0644)
package audio
