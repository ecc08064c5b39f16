package id3v2

import (
	"strings"

	"github.com/soundcodec/tagio/internal/binio"
	"github.com/soundcodec/tagio/internal/tagerr"
	"github.com/soundcodec/tagio/internal/textcodec"
)

const op = "id3v2"

// readTerminated reads an encoding-appropriate NUL-terminated string from r,
// leaving the cursor just past the terminator. If no terminator is found
// before the slice given by limit bytes remain, the whole remainder (up to
// limit) is treated as the string (tolerant of malformed producers).
func readTerminated(r *binio.Reader, enc textcodec.Encoding, limit int) (string, error) {
	if limit > r.Len() {
		limit = r.Len()
	}
	region := r.Remaining()[:limit]
	idx := enc.FindTerminator(region)
	if idx < 0 {
		b, err := r.Take(op, limit)
		if err != nil {
			return "", err
		}
		return textcodec.Decode(op, enc, b)
	}
	b, err := r.Take(op, idx)
	if err != nil {
		return "", err
	}
	r.Skip(enc.TerminatorWidth())
	return textcodec.Decode(op, enc, b)
}

// parseFrameBody dispatches to a typed parser by canonical (v2.3/2.4) frame
// id. payload is exactly the frame's declared size. id22 is true if the
// frame arrived under a 3-character v2.2 identifier (affects APIC parsing).
func parseFrameBody(canonicalID string, id22 bool, payload []byte, major int) (FrameBody, error) {
	r := binio.NewReader(payload)
	switch {
	case canonicalID == "TXXX":
		return parseUserText(r)
	case canonicalID == "WXXX":
		return parseUserURL(r)
	case canonicalID == "COMM":
		return parseCommentLike(r, false)
	case canonicalID == "USLT":
		return parseCommentLike(r, true)
	case canonicalID == "APIC":
		return parsePicture(r, id22)
	case canonicalID == "UFID":
		return parseUFID(r)
	case canonicalID == "TIPL" || canonicalID == "TMCL" || canonicalID == "IPLS":
		return parsePeopleList(r, canonicalID)
	case canonicalID == "PCNT":
		return parsePlayCounter(r)
	case canonicalID == "POPM":
		return parsePopularimeter(r)
	case canonicalID == "PRIV":
		return parsePrivate(r)
	case canonicalID == "RVA2":
		return parseRelativeVolume(r)
	case len(canonicalID) > 0 && canonicalID[0] == 'T':
		return parseText(r, canonicalID, major)
	case len(canonicalID) > 0 && canonicalID[0] == 'W':
		return parseURL(r, canonicalID)
	default:
		return &UnknownFrame{ID: canonicalID, Data: payload}, nil
	}
}

func parseText(r *binio.Reader, id string, major int) (*TextFrame, error) {
	encByte, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	enc := textcodec.Encoding(encByte)
	if !enc.Valid(major) {
		return nil, tagerr.Newf(tagerr.InvalidField, op, "invalid text encoding %d for v2.%d", encByte, major)
	}
	raw := r.Remaining()
	var values []string
	if major >= 4 {
		values, err = splitEncodedNUL(raw, enc)
		if err != nil {
			return nil, err
		}
	} else {
		s, err := textcodec.Decode(op, enc, trimTrailingTerminator(raw, enc))
		if err != nil {
			return nil, err
		}
		values = []string{s}
	}
	return &TextFrame{ID: id, Encoding: enc, Values: values}, nil
}

// splitEncodedNUL splits raw on encoding-appropriate NUL boundaries,
// decoding each segment (v2.4 multi-value text frames, spec.md §3).
func splitEncodedNUL(raw []byte, enc textcodec.Encoding) ([]string, error) {
	w := enc.TerminatorWidth()
	raw = trimTrailingTerminator(raw, enc)
	var segs [][]byte
	start := 0
	if w == 1 {
		for i, b := range raw {
			if b == 0 {
				segs = append(segs, raw[start:i])
				start = i + 1
			}
		}
	} else {
		for i := 0; i+1 < len(raw); i += 2 {
			if raw[i] == 0 && raw[i+1] == 0 {
				segs = append(segs, raw[start:i])
				start = i + 2
			}
		}
	}
	segs = append(segs, raw[start:])
	out := make([]string, len(segs))
	for i, seg := range segs {
		s, err := textcodec.Decode(op, enc, seg)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func trimTrailingTerminator(raw []byte, enc textcodec.Encoding) []byte {
	w := enc.TerminatorWidth()
	if len(raw) >= w {
		if w == 1 && raw[len(raw)-1] == 0 {
			return raw[:len(raw)-1]
		}
		if w == 2 && raw[len(raw)-2] == 0 && raw[len(raw)-1] == 0 {
			return raw[:len(raw)-2]
		}
	}
	return raw
}

func parseUserText(r *binio.Reader) (*UserTextFrame, error) {
	encByte, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	enc := textcodec.Encoding(encByte)
	desc, err := readTerminated(r, enc, r.Len())
	if err != nil {
		return nil, err
	}
	values, err := splitEncodedNUL(r.Remaining(), enc)
	if err != nil {
		return nil, err
	}
	return &UserTextFrame{Encoding: enc, Description: desc, Values: values}, nil
}

func parseURL(r *binio.Reader, id string) (*URLFrame, error) {
	b := r.Remaining()
	// URL frames are always Latin-1/ASCII with no encoding byte; some
	// writers still NUL-terminate them.
	if idx := textcodec.Latin1.FindTerminator(b); idx >= 0 {
		b = b[:idx]
	}
	return &URLFrame{ID: id, URL: string(b)}, nil
}

func parseUserURL(r *binio.Reader) (*UserURLFrame, error) {
	encByte, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	enc := textcodec.Encoding(encByte)
	desc, err := readTerminated(r, enc, r.Len())
	if err != nil {
		return nil, err
	}
	url := r.Remaining()
	if idx := textcodec.Latin1.FindTerminator(url); idx >= 0 {
		url = url[:idx]
	}
	return &UserURLFrame{Encoding: enc, Description: desc, URL: string(url)}, nil
}

func parseCommentLike(r *binio.Reader, lyrics bool) (FrameBody, error) {
	encByte, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	enc := textcodec.Encoding(encByte)
	lang, err := r.FixedASCII(op, 3)
	if err != nil {
		return nil, err
	}
	short, err := readTerminated(r, enc, r.Len())
	if err != nil {
		return nil, err
	}
	full, err := textcodec.Decode(op, enc, trimTrailingTerminator(r.Remaining(), enc))
	if err != nil {
		return nil, err
	}
	if lyrics {
		return &LyricsFrame{Encoding: enc, Language: lang, Short: short, Text: full}, nil
	}
	return &CommentFrame{Encoding: enc, Language: lang, Short: short, Text: full}, nil
}

func parsePicture(r *binio.Reader, id22 bool) (*PictureFrame, error) {
	encByte, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	enc := textcodec.Encoding(encByte)
	var mime string
	if id22 {
		code, err := r.FixedASCII(op, 3)
		if err != nil {
			return nil, err
		}
		m, ok := v22PictureFormatToMIME[strings.ToUpper(code)]
		if !ok {
			m = "image/" + strings.ToLower(code)
		}
		mime = m
	} else {
		mime, err = readTerminated(r, textcodec.Latin1, r.Len())
		if err != nil {
			return nil, err
		}
	}
	ptype, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	desc, err := readTerminated(r, enc, r.Len())
	if err != nil {
		return nil, err
	}
	data, err := r.Take(op, r.Len())
	if err != nil {
		return nil, err
	}
	return &PictureFrame{Encoding: enc, MIME: mime, PictureType: ptype, Description: desc, Data: append([]byte(nil), data...)}, nil
}

func parseUFID(r *binio.Reader) (*UFIDFrame, error) {
	owner, err := readTerminated(r, textcodec.Latin1, r.Len())
	if err != nil {
		return nil, err
	}
	ident, err := r.Take(op, r.Len())
	if err != nil {
		return nil, err
	}
	if len(ident) > 64 {
		ident = ident[:64]
	}
	return &UFIDFrame{Owner: owner, Identifier: append([]byte(nil), ident...)}, nil
}

func parsePeopleList(r *binio.Reader, id string) (*PeopleListFrame, error) {
	encByte, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	enc := textcodec.Encoding(encByte)
	var pairs [][2]string
	for r.Len() > 0 {
		role, err := readTerminated(r, enc, r.Len())
		if err != nil {
			return nil, err
		}
		if r.Len() == 0 {
			// Trailing role with no paired person: keep it, person empty.
			pairs = append(pairs, [2]string{role, ""})
			break
		}
		person, err := readTerminated(r, enc, r.Len())
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]string{role, person})
	}
	return &PeopleListFrame{ID: id, Encoding: enc, Pairs: pairs}, nil
}

func parsePlayCounter(r *binio.Reader) (*PlayCounterFrame, error) {
	b, err := r.Take(op, r.Len())
	if err != nil {
		return nil, err
	}
	var v uint64
	for _, by := range b {
		v = v<<8 | uint64(by)
	}
	return &PlayCounterFrame{Count: v}, nil
}

func parsePopularimeter(r *binio.Reader) (*PopularimeterFrame, error) {
	email, err := readTerminated(r, textcodec.Latin1, r.Len())
	if err != nil {
		return nil, err
	}
	rating, err := r.U8(op)
	if err != nil {
		return nil, err
	}
	rest := r.Remaining()
	var count uint64
	has := len(rest) > 0
	for _, by := range rest {
		count = count<<8 | uint64(by)
	}
	return &PopularimeterFrame{Email: email, Rating: rating, PlayCount: count, HasPlayCount: has}, nil
}

func parsePrivate(r *binio.Reader) (*PrivateFrame, error) {
	owner, err := readTerminated(r, textcodec.Latin1, r.Len())
	if err != nil {
		return nil, err
	}
	data, err := r.Take(op, r.Len())
	if err != nil {
		return nil, err
	}
	return &PrivateFrame{Owner: owner, Data: append([]byte(nil), data...)}, nil
}

func parseRelativeVolume(r *binio.Reader) (*RelativeVolumeFrame, error) {
	ident, err := readTerminated(r, textcodec.Latin1, r.Len())
	if err != nil {
		return nil, err
	}
	f := &RelativeVolumeFrame{Identification: ident}
	for r.Len() >= 4 {
		chType, err := r.U8(op)
		if err != nil {
			return nil, err
		}
		adj, err := r.U16BE(op)
		if err != nil {
			return nil, err
		}
		peakBits, err := r.U8(op)
		if err != nil {
			return nil, err
		}
		nbytes := int(peakBits+7) / 8
		var peakData []byte
		if nbytes > 0 {
			peakData, err = r.Take(op, nbytes)
			if err != nil {
				return nil, err
			}
			peakData = append([]byte(nil), peakData...)
		}
		f.Channels = append(f.Channels, RVA2Channel{
			ChannelType:         chType,
			VolumeAdjustmentQ16: int16(adj),
			PeakBits:            peakBits,
			PeakData:            peakData,
		})
	}
	return f, nil
}
