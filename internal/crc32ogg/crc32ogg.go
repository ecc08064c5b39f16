// Package crc32ogg implements the 32-bit CRC used by the Ogg container:
// polynomial 0x04C11DB7, MSB-first, initial value 0, no input/output
// reflection, no final XOR (spec.md §4.2). This differs from the IEEE
// polynomial used by the standard library's hash/crc32 (which is LSB-first
// / reflected), so the table is computed directly, following the
// table-driven shape of the teacher's internal/hashutil/crc8 and crc16
// packages.
package crc32ogg

// Poly is the Ogg CRC-32 polynomial.
const Poly uint32 = 0x04C11DB7

// Table is a 256-word table representing the polynomial for efficient
// MSB-first processing.
type Table [256]uint32

// OggTable is the precomputed table for Poly.
var OggTable = makeTable(Poly)

func makeTable(poly uint32) *Table {
	var table Table
	for i := range table {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return &table
}

// Update returns the result of adding the bytes in p to crc, using table.
func Update(crc uint32, table *Table, p []byte) uint32 {
	for _, v := range p {
		crc = crc<<8 ^ table[byte(crc>>24)^v]
	}
	return crc
}

// Checksum returns the Ogg CRC-32 checksum of data.
func Checksum(data []byte) uint32 {
	return Update(0, OggTable, data)
}
