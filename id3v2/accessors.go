package id3v2

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soundcodec/tagio/internal/textcodec"
)

// The accessors in this file implement the ~60 high-level properties named
// in spec.md §4.3: title, artist, album, track N/of M, disc N/of M, year,
// genre, composer, conductor, compilation flag, lyrics, MusicBrainz IDs,
// ReplayGain, R128 gain with Q7.8 conversion, AcoustID, picture list, etc.
// They operate on the insertion-ordered Frames slice directly so that
// round-trip order (spec.md §8.1) is preserved for every frame the getters
// don't touch.

func (t *Tag) textFrame(id string) *TextFrame {
	for _, fr := range t.Frames {
		if tf, ok := fr.Body.(*TextFrame); ok && tf.ID == id {
			return tf
		}
	}
	return nil
}

func (t *Tag) getText(id string) string {
	if tf := t.textFrame(id); tf != nil && len(tf.Values) > 0 {
		return tf.Values[0]
	}
	return ""
}

func (t *Tag) setText(id, value string) {
	if tf := t.textFrame(id); tf != nil {
		tf.Values = []string{value}
		return
	}
	t.Frames = append(t.Frames, Frame{Header: FrameHeader{ID: id}, Body: &TextFrame{ID: id, Encoding: textcodec.UTF8, Values: []string{value}}})
}

// getTextSplit returns a v2.3-tag's single value split on " / " as a
// getter-only convenience; it is never re-emitted on write (spec.md §9
// Open Question (a)).
func (t *Tag) getTextSplit(id string) []string {
	tf := t.textFrame(id)
	if tf == nil || len(tf.Values) == 0 {
		return nil
	}
	if len(tf.Values) > 1 {
		return tf.Values
	}
	return strings.Split(tf.Values[0], " / ")
}

func (t *Tag) userTextFrame(desc string) *UserTextFrame {
	for _, fr := range t.Frames {
		if ut, ok := fr.Body.(*UserTextFrame); ok && strings.EqualFold(ut.Description, desc) {
			return ut
		}
	}
	return nil
}

func (t *Tag) getTXXX(desc string) (string, bool) {
	if ut := t.userTextFrame(desc); ut != nil && len(ut.Values) > 0 {
		return ut.Values[0], true
	}
	return "", false
}

func (t *Tag) setTXXX(desc, value string) {
	if ut := t.userTextFrame(desc); ut != nil {
		ut.Values = []string{value}
		return
	}
	t.Frames = append(t.Frames, Frame{Header: FrameHeader{ID: "TXXX"}, Body: &UserTextFrame{Encoding: textcodec.UTF8, Description: desc, Values: []string{value}}})
}

// Title, Artist, Album, AlbumArtist, Composer, Conductor, Genre, Copyright,
// EncodedBy, EncoderSettings map directly onto single ID3v2 text frames;
// Website uses the WOAR URL frame, Comment and Lyrics the COMM/USLT frames.
func (t *Tag) Title() string               { return t.getText("TIT2") }
func (t *Tag) SetTitle(v string)           { t.setText("TIT2", v) }
func (t *Tag) Artist() string              { return t.getText("TPE1") }
func (t *Tag) SetArtist(v string)          { t.setText("TPE1", v) }
func (t *Tag) Album() string               { return t.getText("TALB") }
func (t *Tag) SetAlbum(v string)           { t.setText("TALB", v) }
func (t *Tag) AlbumArtist() string         { return t.getText("TPE2") }
func (t *Tag) SetAlbumArtist(v string)     { t.setText("TPE2", v) }
func (t *Tag) Composer() string            { return t.getText("TCOM") }
func (t *Tag) SetComposer(v string)        { t.setText("TCOM", v) }
func (t *Tag) Conductor() string           { return t.getText("TPE3") }
func (t *Tag) SetConductor(v string)       { t.setText("TPE3", v) }
func (t *Tag) Genre() string               { return t.getText("TCON") }
func (t *Tag) SetGenre(v string)           { t.setText("TCON", v) }
func (t *Tag) Copyright() string           { return t.getText("TCOP") }
func (t *Tag) SetCopyright(v string)       { t.setText("TCOP", v) }
func (t *Tag) EncodedBy() string           { return t.getText("TENC") }
func (t *Tag) SetEncodedBy(v string)       { t.setText("TENC", v) }
func (t *Tag) EncoderSettings() string     { return t.getText("TSSE") }
func (t *Tag) SetEncoderSettings(v string) { t.setText("TSSE", v) }

func (t *Tag) Website() string {
	for _, fr := range t.Frames {
		if u, ok := fr.Body.(*URLFrame); ok && u.ID == "WOAR" {
			return u.URL
		}
	}
	return ""
}

func (t *Tag) SetWebsite(v string) {
	for _, fr := range t.Frames {
		if u, ok := fr.Body.(*URLFrame); ok && u.ID == "WOAR" {
			u.URL = v
			return
		}
	}
	t.Frames = append(t.Frames, Frame{Header: FrameHeader{ID: "WOAR"}, Body: &URLFrame{ID: "WOAR", URL: v}})
}

// Comment and Lyrics use the first COMM/USLT frame present, matching the
// read precedence other tag libraries use when multiple are present
// (duplicates are legal per spec.md §3).
func (t *Tag) Comment() string {
	for _, fr := range t.Frames {
		if c, ok := fr.Body.(*CommentFrame); ok {
			return c.Text
		}
	}
	return ""
}

func (t *Tag) SetComment(v string) {
	for _, fr := range t.Frames {
		if c, ok := fr.Body.(*CommentFrame); ok {
			c.Text = v
			return
		}
	}
	t.Frames = append(t.Frames, Frame{Header: FrameHeader{ID: "COMM"}, Body: &CommentFrame{Encoding: textcodec.UTF8, Language: "eng", Text: v}})
}

func (t *Tag) Lyrics() string {
	for _, fr := range t.Frames {
		if l, ok := fr.Body.(*LyricsFrame); ok {
			return l.Text
		}
	}
	return ""
}

func (t *Tag) SetLyrics(v string) {
	for _, fr := range t.Frames {
		if l, ok := fr.Body.(*LyricsFrame); ok {
			l.Text = v
			return
		}
	}
	t.Frames = append(t.Frames, Frame{Header: FrameHeader{ID: "USLT"}, Body: &LyricsFrame{Encoding: textcodec.UTF8, Language: "eng", Text: v}})
}

// Track/Disc: stored as "N" or "N/M" (spec.md §4.3 "Encoded value
// conversions").
func parseNofM(s string) (n, of int) {
	parts := strings.SplitN(s, "/", 2)
	n, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		of, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return n, of
}

func formatNofM(n, of int) string {
	if of > 0 {
		return fmt.Sprintf("%d/%d", n, of)
	}
	return fmt.Sprintf("%d", n)
}

func (t *Tag) Track() (n, of int) { return parseNofM(t.getText("TRCK")) }
func (t *Tag) SetTrack(n, of int) { t.setText("TRCK", formatNofM(n, of)) }
func (t *Tag) Disc() (n, of int)  { return parseNofM(t.getText("TPOS")) }
func (t *Tag) SetDisc(n, of int)  { t.setText("TPOS", formatNofM(n, of)) }

// Year reads TDRC (v2.4) first, falling back to TYER (v2.3).
func (t *Tag) Year() int {
	if y := t.getText("TDRC"); len(y) >= 4 {
		if n, err := strconv.Atoi(y[:4]); err == nil {
			return n
		}
	}
	if y := t.getText("TYER"); len(y) >= 4 {
		if n, err := strconv.Atoi(y[:4]); err == nil {
			return n
		}
	}
	return 0
}

func (t *Tag) SetYear(y int) {
	if t.Header.Major >= 4 {
		t.setText("TDRC", strconv.Itoa(y))
		return
	}
	t.setText("TYER", strconv.Itoa(y))
}

// Compilation reports the TCMP ("iTunes compilation") flag.
func (t *Tag) Compilation() bool  { return t.getText("TCMP") == "1" }
func (t *Tag) SetCompilation(v bool) {
	if v {
		t.setText("TCMP", "1")
	} else {
		t.setText("TCMP", "0")
	}
}

// Pictures returns every APIC frame in insertion order.
func (t *Tag) Pictures() []*PictureFrame {
	var out []*PictureFrame
	for _, fr := range t.Frames {
		if p, ok := fr.Body.(*PictureFrame); ok {
			out = append(out, p)
		}
	}
	return out
}

// AddPicture appends a new APIC frame.
func (t *Tag) AddPicture(p *PictureFrame) {
	t.Frames = append(t.Frames, Frame{Header: FrameHeader{ID: "APIC"}, Body: p})
}

// ClearPictures removes every APIC frame.
func (t *Tag) ClearPictures() {
	out := t.Frames[:0]
	for _, fr := range t.Frames {
		if _, ok := fr.Body.(*PictureFrame); ok {
			continue
		}
		out = append(out, fr)
	}
	t.Frames = out
}

// MusicBrainz identifiers: TrackID lives in UFID with the MusicBrainz
// owner, the rest in TXXX descriptions, matching the de facto convention
// used by taggers across the ecosystem. UUID shape is never validated here
// (spec.md Non-goals).
const musicBrainzOwner = "http://musicbrainz.org"

func (t *Tag) MusicBrainzTrackID() string {
	for _, fr := range t.Frames {
		if u, ok := fr.Body.(*UFIDFrame); ok && u.Owner == musicBrainzOwner {
			return string(u.Identifier)
		}
	}
	return ""
}

func (t *Tag) SetMusicBrainzTrackID(id string) {
	for _, fr := range t.Frames {
		if u, ok := fr.Body.(*UFIDFrame); ok && u.Owner == musicBrainzOwner {
			u.Identifier = []byte(id)
			return
		}
	}
	t.Frames = append(t.Frames, Frame{Header: FrameHeader{ID: "UFID"}, Body: &UFIDFrame{Owner: musicBrainzOwner, Identifier: []byte(id)}})
}

func (t *Tag) MusicBrainzAlbumID() string {
	v, _ := t.getTXXX("MusicBrainz Album Id")
	return v
}
func (t *Tag) SetMusicBrainzAlbumID(v string) { t.setTXXX("MusicBrainz Album Id", v) }

func (t *Tag) MusicBrainzArtistID() string {
	v, _ := t.getTXXX("MusicBrainz Artist Id")
	return v
}
func (t *Tag) SetMusicBrainzArtistID(v string) { t.setTXXX("MusicBrainz Artist Id", v) }

func (t *Tag) MusicBrainzReleaseGroupID() string {
	v, _ := t.getTXXX("MusicBrainz Release Group Id")
	return v
}
func (t *Tag) SetMusicBrainzReleaseGroupID(v string) {
	t.setTXXX("MusicBrainz Release Group Id", v)
}

// AcoustID.
func (t *Tag) AcoustID() string {
	v, _ := t.getTXXX("Acoustid Id")
	return v
}
func (t *Tag) SetAcoustID(v string) { t.setTXXX("Acoustid Id", v) }

func (t *Tag) AcoustIDFingerprint() string {
	v, _ := t.getTXXX("Acoustid Fingerprint")
	return v
}
func (t *Tag) SetAcoustIDFingerprint(v string) { t.setTXXX("Acoustid Fingerprint", v) }

// ReplayGain is stored verbatim as "-6.50 dB"-style strings (spec.md
// §4.3 "Encoded value conversions").
func (t *Tag) ReplayGainTrackGain() string { v, _ := t.getTXXX("REPLAYGAIN_TRACK_GAIN"); return v }
func (t *Tag) SetReplayGainTrackGain(v string) { t.setTXXX("REPLAYGAIN_TRACK_GAIN", v) }
func (t *Tag) ReplayGainTrackPeak() string { v, _ := t.getTXXX("REPLAYGAIN_TRACK_PEAK"); return v }
func (t *Tag) SetReplayGainTrackPeak(v string) { t.setTXXX("REPLAYGAIN_TRACK_PEAK", v) }
func (t *Tag) ReplayGainAlbumGain() string { v, _ := t.getTXXX("REPLAYGAIN_ALBUM_GAIN"); return v }
func (t *Tag) SetReplayGainAlbumGain(v string) { t.setTXXX("REPLAYGAIN_ALBUM_GAIN", v) }
func (t *Tag) ReplayGainAlbumPeak() string { v, _ := t.getTXXX("REPLAYGAIN_ALBUM_PEAK"); return v }
func (t *Tag) SetReplayGainAlbumPeak(v string) { t.setTXXX("REPLAYGAIN_ALBUM_PEAK", v) }

// R128 gain is stored as a decimal integer string in Q7.8 (spec.md §4.3,
// scenario S2): dB = stored / 256. Setting dB clamps to the signed 16-bit
// range [-32768, 32767] before storing.
func (t *Tag) R128TrackGain() string { v, _ := t.getTXXX("R128_TRACK_GAIN"); return v }
func (t *Tag) SetR128TrackGain(raw string) { t.setTXXX("R128_TRACK_GAIN", raw) }

func (t *Tag) R128TrackGainDb() (float64, bool) {
	return q78ToDb(t.R128TrackGain())
}
func (t *Tag) SetR128TrackGainDb(db float64) {
	t.SetR128TrackGain(dbToQ78(db))
}

func (t *Tag) R128AlbumGain() string { v, _ := t.getTXXX("R128_ALBUM_GAIN"); return v }
func (t *Tag) SetR128AlbumGain(raw string) { t.setTXXX("R128_ALBUM_GAIN", raw) }

func (t *Tag) R128AlbumGainDb() (float64, bool) {
	return q78ToDb(t.R128AlbumGain())
}
func (t *Tag) SetR128AlbumGainDb(db float64) {
	t.SetR128AlbumGain(dbToQ78(db))
}

func q78ToDb(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return float64(n) / 256.0, true
}

func dbToQ78(db float64) string {
	v := db * 256.0
	const maxQ78 = 32767
	const minQ78 = -32768
	if v > maxQ78 {
		v = maxQ78
	}
	if v < minQ78 {
		v = minQ78
	}
	return strconv.Itoa(int(v))
}
