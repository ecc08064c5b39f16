// Command tagio prints the common tag fields of an audio file, dispatching
// to the right format decoder by file extension.
//
// Usage follows the teacher's cmd/go-metaflac convention: one or more file
// paths on the command line, flag-parsed options, one error per file
// logged via log.Println rather than aborting the whole run.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/soundcodec/tagio/format/aiff"
	"github.com/soundcodec/tagio/format/apecarrier"
	"github.com/soundcodec/tagio/format/dff"
	"github.com/soundcodec/tagio/format/dsf"
	"github.com/soundcodec/tagio/format/flac"
	"github.com/soundcodec/tagio/format/wav"
	"github.com/soundcodec/tagio/internal/fsio"
	"github.com/soundcodec/tagio/tag"
)

var flagSetTitle string

func init() {
	flag.StringVar(&flagSetTitle, "set-title", "", "If non-empty, set the title field and rewrite the file in place (FLAC, WAV and AIFF only; other formats are printed but not rewritten).")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tagio [OPTION]... FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if err := process(path); err != nil {
			log.Println(path+":", err)
		}
	}
}

func process(path string) error {
	osfs := fsio.OSFS{}
	data, err := osfs.Read(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		f, err := flac.Read(data)
		if err != nil {
			return err
		}
		fields := tag.FromFLAC(f)
		printFields(path, fields)
		if flagSetTitle == "" {
			return nil
		}
		fields.Title = flagSetTitle
		tag.ApplyToFLAC(f, fields)
		rendered, err := f.Render()
		if err != nil {
			return err
		}
		return osfs.Write(path, rendered)
	case ".wav":
		f, err := wav.Read(data)
		if err != nil {
			return err
		}
		fields := tag.FromWAV(f)
		printFields(path, fields)
		if flagSetTitle == "" {
			return nil
		}
		fields.Title = flagSetTitle
		tag.ApplyToWAV(f, fields)
		rendered, err := f.Render()
		if err != nil {
			return err
		}
		return osfs.Write(path, rendered)
	case ".aif", ".aiff", ".aifc":
		f, err := aiff.Read(data)
		if err != nil {
			return err
		}
		fields := tag.FromAIFF(f)
		printFields(path, fields)
		if flagSetTitle == "" {
			return nil
		}
		fields.Title = flagSetTitle
		tag.ApplyToAIFF(f, fields)
		rendered, err := f.Render()
		if err != nil {
			return err
		}
		return osfs.Write(path, rendered)
	case ".dsf":
		f, err := dsf.Read(data)
		if err != nil {
			return err
		}
		printFields(path, tag.FromDSF(f))
		return nil
	case ".dff":
		f, err := dff.Read(data)
		if err != nil {
			return err
		}
		printFields(path, tag.FromDFF(f))
		return nil
	case ".wv", ".ape", ".mpc":
		f, err := apecarrier.Read(data)
		if err != nil {
			return err
		}
		printFields(path, tag.FromAPECarrier(f))
		return nil
	default:
		fmt.Fprintf(os.Stderr, "%s: unrecognised extension\n", path)
		return nil
	}
}

func printFields(path string, f tag.Fields) {
	fmt.Println(path)
	fmt.Printf("  title:  %s\n", f.Title)
	fmt.Printf("  artist: %s\n", f.Artist)
	fmt.Printf("  album:  %s\n", f.Album)
	if f.TrackNum != 0 {
		fmt.Printf("  track:  %d/%d\n", f.TrackNum, f.TrackTotal)
	}
}
