package audio

import (
	"strings"

	"github.com/khdl/khinsider-dl/internal/ioutils"
	"github.com/khdl/khinsider-dl/internal/khinsider"
	"github.com/khdl/khinsider-dl/internal/model"
)

// PlaylistName is the file name an album playlist is written under,
// inside the album's download directory.
const PlaylistName = "playlist.m3u"

// Playlist renders an M3U playlist for the album, one line per track
// in page order. Entries are decoded and then sanitized exactly like
// the download path, so every line names the file as it exists on
// disk, relative to the album directory.
//
// khinsider exposes no track durations, so the playlist carries no
// EXTINF lines beyond the header.
func Playlist(album *model.Album) string {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, ref := range album.TrackRefs {
		b.WriteString(ioutils.SanitizeFileName(khinsider.DecodeTrackName(ref.TrackName)))
		b.WriteByte('\n')
	}
	return b.String()
}
