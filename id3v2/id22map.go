package id3v2

// v22to24 maps common ID3v2.2 3-character frame identifiers to their
// ID3v2.3/2.4 4-character canonical form, so a single set of typed body
// parsers can serve all three major versions. Entries a reader might
// plausibly encounter but this engine does not specially type are omitted
// and keep their 2.2 id: ids starting with T or W are still parsed as text
// or URL frames, all others become an UnknownFrame preserved verbatim.
var v22to24 = map[string]string{
	"TT1": "TIT1", "TT2": "TIT2", "TT3": "TIT3",
	"TP1": "TPE1", "TP2": "TPE2", "TP3": "TPE3", "TP4": "TPE4",
	"TAL": "TALB", "TRK": "TRCK", "TPA": "TPOS", "TYE": "TYER",
	"TDA": "TDAT", "TIM": "TIME", "TRD": "TRDA", "TCM": "TCOM",
	"TCO": "TCON", "TCR": "TCOP", "TLE": "TLEN", "TSI": "TSIZ",
	"TSS": "TSSE", "TEN": "TENC", "TKE": "TKEY", "TLA": "TLAN",
	"TMT": "TMED", "TOT": "TOAL", "TOF": "TOFN", "TOA": "TOPE",
	"TOL": "TOLY", "TOR": "TORY", "TBP": "TBPM", "TCP": "TCMP",
	"TXT": "TEXT", "TXX": "TXXX",
	"WAF": "WOAF", "WAR": "WOAR", "WAS": "WOAS", "WCM": "WCOM",
	"WCP": "WCOP", "WPB": "WPUB", "WXX": "WXXX",
	"COM": "COMM", "ULT": "USLT", "PIC": "APIC", "UFI": "UFID",
	"IPL": "IPLS", "CNT": "PCNT", "POP": "POPM", "PRV": "PRIV",
	"RVA": "RVA2",
}

// v22PictureFormatToMIME maps the 3-byte image-format code used by the
// ID3v2.2 "PIC" frame to a MIME type, per spec.md §4.3 picture parsing.
var v22PictureFormatToMIME = map[string]string{
	"PNG": "image/png",
	"JPG": "image/jpeg",
	"BMP": "image/bmp",
	"GIF": "image/gif",
	"-->": "-->",
}
