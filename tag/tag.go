// Package tag implements the cross-format unified tag facade (spec.md
// §4.9): a single typed view over whichever container-specific tag kinds a
// file actually carries, with a fixed read-precedence order per container
// family and write-through to every tag kind present on rewrite.
package tag

import (
	"strconv"
	"strings"

	"github.com/soundcodec/tagio/apetag"
	"github.com/soundcodec/tagio/format/aiff"
	"github.com/soundcodec/tagio/format/apecarrier"
	"github.com/soundcodec/tagio/format/dff"
	"github.com/soundcodec/tagio/format/dsf"
	"github.com/soundcodec/tagio/format/flac"
	"github.com/soundcodec/tagio/format/oggflac"
	"github.com/soundcodec/tagio/format/oggopus"
	"github.com/soundcodec/tagio/format/oggvorbis"
	"github.com/soundcodec/tagio/format/wav"
	"github.com/soundcodec/tagio/id3v2"
	"github.com/soundcodec/tagio/riffchunk"
	"github.com/soundcodec/tagio/vorbiscomment"
)

// Fields is the common set of tag values exposed across every format,
// independent of how the underlying container stores them.
type Fields struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	Comment     string
	Year        string
	TrackNum    int
	TrackTotal  int
}

// FromFLAC reads Fields from a FLAC file's Vorbis Comment block (spec.md
// §4.9: FLAC/Ogg read precedence is Vorbis Comment).
func FromFLAC(f *flac.File) Fields {
	c := f.Comment()
	if c == nil {
		return Fields{}
	}
	return fieldsFromComment(c)
}

// ApplyToFLAC writes fields back into f's Vorbis Comment block, creating
// one if absent.
func ApplyToFLAC(f *flac.File, fields Fields) {
	c := f.Comment()
	if c == nil {
		c = &vorbiscomment.Comment{}
	}
	applyToComment(c, fields)
	f.SetComment(c)
}

// FromOggVorbis/FromOggOpus/FromOggFlac mirror FromFLAC for the Ogg
// container family, whose tag kind is always Vorbis Comment.
func FromOggVorbis(f *oggvorbis.File) Fields { return fieldsFromComment(f.Comment) }
func FromOggOpus(f *oggopus.File) Fields     { return fieldsFromComment(f.Comment) }
func FromOggFlac(f *oggflac.File) Fields {
	c := f.Comment()
	if c == nil {
		return Fields{}
	}
	return fieldsFromComment(c)
}

func fieldsFromComment(c *vorbiscomment.Comment) Fields {
	if c == nil {
		return Fields{}
	}
	n, of := 0, 0
	trackNum(c.Get("TRACKNUMBER"), &n, &of)
	return Fields{
		Title:       c.Get("TITLE"),
		Artist:      c.Get("ARTIST"),
		Album:       c.Get("ALBUM"),
		AlbumArtist: c.Get("ALBUMARTIST"),
		Genre:       c.Get("GENRE"),
		Comment:     c.Get("COMMENT"),
		Year:        c.Get("DATE"),
		TrackNum:    n,
		TrackTotal:  of,
	}
}

func applyToComment(c *vorbiscomment.Comment, f Fields) {
	setIfNonEmpty(c, "TITLE", f.Title)
	setIfNonEmpty(c, "ARTIST", f.Artist)
	setIfNonEmpty(c, "ALBUM", f.Album)
	setIfNonEmpty(c, "ALBUMARTIST", f.AlbumArtist)
	setIfNonEmpty(c, "GENRE", f.Genre)
	setIfNonEmpty(c, "COMMENT", f.Comment)
	setIfNonEmpty(c, "DATE", f.Year)
	if f.TrackNum != 0 {
		c.Set("TRACKNUMBER", formatNofM(f.TrackNum, f.TrackTotal))
	}
}

func setIfNonEmpty(c *vorbiscomment.Comment, key, value string) {
	if value != "" {
		c.Set(key, value)
	}
}

// FromWAV reads Fields with ID3v2 taking precedence over the RIFF INFO
// list when both are present (spec.md §4.9).
func FromWAV(f *wav.File) Fields {
	if f.ID3 != nil {
		return fieldsFromID3(f.ID3)
	}
	if f.Info != nil {
		return Fields{
			Title:   f.Info.Get(riffchunk.InfoTitle),
			Artist:  f.Info.Get(riffchunk.InfoArtist),
			Album:   f.Info.Get(riffchunk.InfoAlbum),
			Comment: f.Info.Get(riffchunk.InfoComments),
			Year:    f.Info.Get(riffchunk.InfoYear),
			Genre:   f.Info.Get(riffchunk.InfoGenre),
		}
	}
	return Fields{}
}

// ApplyToWAV writes fields to both ID3v2 and INFO when both are present,
// so external readers see consistent values regardless of which kind they
// read (spec.md §4.9 "writes update all present tag kinds").
func ApplyToWAV(f *wav.File, fields Fields) {
	if f.ID3 != nil {
		applyToID3(f.ID3, fields)
	}
	if f.Info != nil {
		if fields.Title != "" {
			f.Info.Set(riffchunk.InfoTitle, fields.Title)
		}
		if fields.Artist != "" {
			f.Info.Set(riffchunk.InfoArtist, fields.Artist)
		}
		if fields.Album != "" {
			f.Info.Set(riffchunk.InfoAlbum, fields.Album)
		}
		if fields.Comment != "" {
			f.Info.Set(riffchunk.InfoComments, fields.Comment)
		}
		if fields.Year != "" {
			f.Info.Set(riffchunk.InfoYear, fields.Year)
		}
		if fields.Genre != "" {
			f.Info.Set(riffchunk.InfoGenre, fields.Genre)
		}
	}
}

// FromAIFF reads Fields from an AIFF file's ID3v2 tag, if present.
func FromAIFF(f *aiff.File) Fields {
	if f.ID3 == nil {
		return Fields{}
	}
	return fieldsFromID3(f.ID3)
}

// ApplyToAIFF writes fields back to f's ID3v2 tag, creating one at v2.4 if
// absent.
func ApplyToAIFF(f *aiff.File, fields Fields) {
	if f.ID3 == nil {
		f.ID3 = &id3v2.Tag{Header: id3v2.Header{Major: 4}}
	}
	applyToID3(f.ID3, fields)
}

// FromDSF/FromDFF mirror FromAIFF for the DSD container family.
func FromDSF(f *dsf.File) Fields {
	if f.ID3 == nil {
		return Fields{}
	}
	return fieldsFromID3(f.ID3)
}

func FromDFF(f *dff.File) Fields {
	if f.ID3 == nil {
		return Fields{}
	}
	return fieldsFromID3(f.ID3)
}

func fieldsFromID3(t *id3v2.Tag) Fields {
	n, of := t.Track()
	return Fields{
		Title:       t.Title(),
		Artist:      t.Artist(),
		Album:       t.Album(),
		AlbumArtist: t.AlbumArtist(),
		Genre:       t.Genre(),
		Comment:     t.Comment(),
		Year:        t.Year(),
		TrackNum:    n,
		TrackTotal:  of,
	}
}

func applyToID3(t *id3v2.Tag, f Fields) {
	if f.Title != "" {
		t.SetTitle(f.Title)
	}
	if f.Artist != "" {
		t.SetArtist(f.Artist)
	}
	if f.Album != "" {
		t.SetAlbum(f.Album)
	}
	if f.AlbumArtist != "" {
		t.SetAlbumArtist(f.AlbumArtist)
	}
	if f.Genre != "" {
		t.SetGenre(f.Genre)
	}
	if f.Comment != "" {
		t.SetComment(f.Comment)
	}
	if f.Year != "" {
		t.SetYear(f.Year)
	}
	if f.TrackNum != 0 {
		t.SetTrack(f.TrackNum, f.TrackTotal)
	}
}

// FromAPECarrier reads Fields from a WavPack/Monkey's Audio/Musepack
// file's APEv2 tag (spec.md §4.9: APE carriers read precedence is APE).
func FromAPECarrier(f *apecarrier.File) Fields {
	if f.Tag == nil {
		return Fields{}
	}
	title, _ := f.Tag.GetText("Title")
	artist, _ := f.Tag.GetText("Artist")
	album, _ := f.Tag.GetText("Album")
	genre, _ := f.Tag.GetText("Genre")
	comment, _ := f.Tag.GetText("Comment")
	year, _ := f.Tag.GetText("Year")
	n, of := 0, 0
	if track, ok := f.Tag.GetText("Track"); ok {
		trackNum(track, &n, &of)
	}
	return Fields{Title: title, Artist: artist, Album: album, Genre: genre, Comment: comment, Year: year, TrackNum: n, TrackTotal: of}
}

// ApplyToAPECarrier writes fields back into f's APEv2 tag, creating one if
// absent.
func ApplyToAPECarrier(f *apecarrier.File, fields Fields) {
	if f.Tag == nil {
		f.Tag = &apetag.Tag{Version: apetag.Version2000}
	}
	setAPEText(f.Tag, "Title", fields.Title)
	setAPEText(f.Tag, "Artist", fields.Artist)
	setAPEText(f.Tag, "Album", fields.Album)
	setAPEText(f.Tag, "Genre", fields.Genre)
	setAPEText(f.Tag, "Comment", fields.Comment)
	setAPEText(f.Tag, "Year", fields.Year)
	if fields.TrackNum != 0 {
		f.Tag.SetText("Track", formatNofM(fields.TrackNum, fields.TrackTotal))
	}
}

func setAPEText(t *apetag.Tag, key, value string) {
	if value != "" {
		t.SetText(key, value)
	}
}

func trackNum(s string, n, of *int) {
	if s == "" {
		return
	}
	a, b, _ := strings.Cut(s, "/")
	*n, _ = strconv.Atoi(a)
	*of, _ = strconv.Atoi(b)
}

func formatNofM(n, of int) string {
	s := strconv.Itoa(n)
	if of > 0 {
		s += "/" + strconv.Itoa(of)
	}
	return s
}
