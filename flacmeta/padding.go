package flacmeta

// Padding is a reserved-space block holding no data of its own, used to
// leave room for future in-place metadata growth (spec.md §4.6). Only its
// size is preserved; its bytes are always rendered as zero.
type Padding struct {
	Size int
}
