package cbtree

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"encoding/binary"

	"github.com/twmb/murmur3"
)

// Fingerprint returns a 32-bit digest of the shape and the values of the
// tree. Two trees with equal values in equal positions have the same
// fingerprint; this holds for incomplete trees as well.
func (t *Tree) Fingerprint() uint32 {
	h := murmur3.New32()
	var buf [9]byte
	eachNode(t.root, func(n *node, _ int) bool {
		binary.LittleEndian.PutUint64(buf[:8], uint64(n.value))
		buf[8] = 0 // slot occupancy bits
		if n.has(Left) {
			buf[8] |= 1
		}
		if n.has(Right) {
			buf[8] |= 2
		}
		h.Write(buf[:])
		return true
	})
	return h.Sum32()
}
