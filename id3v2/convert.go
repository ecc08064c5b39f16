package id3v2

import "strings"

// v24OnlyTextIDs are text frames introduced in ID3v2.4 with no v2.3
// equivalent, aside from TDRC which is specially translated to/from
// TYER/TDAT/TIME (spec.md §4.3 "Rendering").
var v24OnlyTextIDs = map[string]bool{
	"TDRC": true, "TDOR": true, "TMOO": true,
	"TSOA": true, "TSOP": true, "TSOT": true, "TSO2": true, "TSOC": true,
}

// convertFrames adapts a frame list for rendering at targetVersion,
// translating or dropping version-specific frames.
func convertFrames(frames []Frame, targetVersion int) []Frame {
	if targetVersion == 4 {
		return upgradeToV4(frames)
	}
	return downgradeToV3(frames)
}

func downgradeToV3(frames []Frame) []Frame {
	out := make([]Frame, 0, len(frames))
	var tipl, tmcl *PeopleListFrame
	for _, fr := range frames {
		switch b := fr.Body.(type) {
		case *TextFrame:
			if b.ID == "TDRC" {
				out = append(out, tdrcToLegacy(b)...)
				continue
			}
			if v24OnlyTextIDs[b.ID] {
				continue // no v2.3 equivalent: drop
			}
			out = append(out, fr)
		case *PeopleListFrame:
			switch b.ID {
			case "TIPL":
				tipl = b
				continue
			case "TMCL":
				tmcl = b
				continue
			default:
				out = append(out, fr)
			}
		default:
			out = append(out, fr)
		}
	}
	if tipl != nil || tmcl != nil {
		merged := &PeopleListFrame{ID: "IPLS"}
		if tipl != nil {
			merged.Encoding = tipl.Encoding
			merged.Pairs = append(merged.Pairs, tipl.Pairs...)
		}
		if tmcl != nil {
			merged.Encoding = tmcl.Encoding
			merged.Pairs = append(merged.Pairs, tmcl.Pairs...)
		}
		out = append(out, Frame{Header: FrameHeader{ID: "IPLS"}, Body: merged})
	}
	return out
}

func upgradeToV4(frames []Frame) []Frame {
	out := make([]Frame, 0, len(frames))
	var tyer, tdat, ttime *TextFrame
	for _, fr := range frames {
		switch b := fr.Body.(type) {
		case *TextFrame:
			switch b.ID {
			case "TYER":
				tyer = b
				continue
			case "TDAT":
				tdat = b
				continue
			case "TIME":
				ttime = b
				continue
			}
			out = append(out, fr)
		case *PeopleListFrame:
			if b.ID == "IPLS" {
				renamed := &PeopleListFrame{ID: "TIPL", Encoding: b.Encoding, Pairs: b.Pairs}
				out = append(out, Frame{Header: FrameHeader{ID: "TIPL"}, Body: renamed})
				continue
			}
			out = append(out, fr)
		default:
			out = append(out, fr)
		}
	}
	if tyer != nil {
		if ts := legacyToTDRC(tyer, tdat, ttime); ts != "" {
			out = append(out, Frame{Header: FrameHeader{ID: "TDRC"}, Body: &TextFrame{ID: "TDRC", Encoding: tyer.Encoding, Values: []string{ts}}})
		}
	}
	return out
}

func firstValue(f *TextFrame) string {
	if f == nil || len(f.Values) == 0 {
		return ""
	}
	return f.Values[0]
}

// tdrcToLegacy splits an ID3v2.4 TDRC ISO-8601 timestamp ("2021-05-04T12:30")
// into the v2.3 TYER ("2021"), TDAT ("DDMM"), and TIME ("HHMM") frames it
// replaces. Missing components are omitted.
func tdrcToLegacy(tdrc *TextFrame) []Frame {
	ts := firstValue(tdrc)
	var out []Frame
	if len(ts) < 4 {
		return out
	}
	year := ts[:4]
	out = append(out, Frame{Header: FrameHeader{ID: "TYER"}, Body: &TextFrame{ID: "TYER", Encoding: tdrc.Encoding, Values: []string{year}}})
	rest := ts[4:]
	rest = strings.TrimPrefix(rest, "-")
	if len(rest) >= 5 && rest[2] == '-' {
		month, day := rest[0:2], rest[3:5]
		out = append(out, Frame{Header: FrameHeader{ID: "TDAT"}, Body: &TextFrame{ID: "TDAT", Encoding: tdrc.Encoding, Values: []string{day + month}}})
		rest = rest[5:]
	}
	rest = strings.TrimPrefix(rest, "T")
	if len(rest) >= 5 && rest[2] == ':' {
		hour, min := rest[0:2], rest[3:5]
		out = append(out, Frame{Header: FrameHeader{ID: "TIME"}, Body: &TextFrame{ID: "TIME", Encoding: tdrc.Encoding, Values: []string{hour + min}}})
	}
	return out
}

// legacyToTDRC combines v2.3 TYER/TDAT/TIME into an ISO-8601 TDRC value.
func legacyToTDRC(tyer, tdat, ttime *TextFrame) string {
	year := firstValue(tyer)
	if len(year) != 4 {
		return ""
	}
	ts := year
	if d := firstValue(tdat); len(d) == 4 {
		day, month := d[0:2], d[2:4]
		ts += "-" + month + "-" + day
		if t := firstValue(ttime); len(t) == 4 {
			hour, min := t[0:2], t[2:4]
			ts += "T" + hour + ":" + min
		}
	}
	return ts
}
