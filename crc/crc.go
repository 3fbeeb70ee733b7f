// SPDX-License-Identifier: GPL-2.0-or-later

// Package crc computes the 16bit CRC-CCITT (FALSE) used to key cached
// results to the file they were computed from.
package crc

const (
	poly    = 0x1021
	initial = 0xffff
)

var table = func() (t [256]uint16) {
	for i := range t {
		c := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if c&0x8000 != 0 {
				c = c<<1 ^ poly
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}()

// Update continues the checksum crc with p.
func Update(crc uint16, p []byte) uint16 {
	for _, v := range p {
		crc = table[byte(crc>>8)^v] ^ crc<<8
	}
	return crc
}

// Checksum returns the checksum of p.
func Checksum(p []byte) uint16 {
	return Update(initial, p)
}

// Digest is an io.Writer accumulating a checksum.
type Digest struct {
	crc uint16
	n   int64
}

func New() *Digest {
	return &Digest{crc: initial}
}

func (d *Digest) Write(p []byte) (int, error) {
	d.crc = Update(d.crc, p)
	d.n += int64(len(p))
	return len(p), nil
}

func (d *Digest) Sum16() uint16 {
	return d.crc
}

// Size returns the number of bytes written.
func (d *Digest) Size() int64 {
	return d.n
}
