// Package triefst is a minimal, mmap-backed byte-keyed transducer.
//
// It plays the role the fuzzy-phrase design assumes an existing FST library
// fills: given a sorted set of (key []byte, output uint64) pairs, build an
// immutable structure that supports node-by-node traversal (root, find an
// outgoing edge for a byte, follow it, ask whether a node is final, read its
// output). No published Go package exposes exactly that primitive set, so
// this one is homegrown, using a flat-arrays-over-mmap layout modeled on a
// morphological DAWG reader: nodes and edges are
// built as an in-memory pointer trie, then flattened into two contiguous
// arrays that a reader can reinterpret directly over mapped bytes with no
// deserialization step.
//
// This is a trie, not a minimized FST: it does not share common suffixes.
// For the key spaces this module deals with (three-byte word-id codes and
// their phrase concatenations, or natural-language word strings) the lack of
// suffix sharing costs disk space, not correctness, and keeps the builder
// and reader simple enough to fit in one package.
package triefst

import "unsafe"

// magic identifies the on-disk format and catches accidental truncation or
// version skew.
var magic = [8]byte{'T', 'R', 'I', 'E', 'F', 'S', 'T', '1'}

// header is the fixed-size file map written at offset 0. Everything after
// it is the flat node array followed by the flat edge array.
type header struct {
	Magic      [8]byte
	NodesCount int64
	EdgesCount int64
}

// flatNode is the on-disk representation of one trie node. EdgesIdx/EdgesLen
// describe a contiguous window into the global edge array holding this
// node's outgoing transitions, sorted ascending by Byte.
type flatNode struct {
	EdgesIdx    uint32
	EdgesLen    uint32
	FinalOutput uint64
	IsFinal     bool
}

// flatEdge is one outgoing transition: on input Byte, move to node NodeID.
// Outputs live only on final nodes (see flatNode.FinalOutput) since this
// trie is not suffix- or output-minimized.
type flatEdge struct {
	Byte   byte
	NodeID uint32
}

var headerSize = int(unsafe.Sizeof(header{}))
var flatNodeSize = int(unsafe.Sizeof(flatNode{}))
var flatEdgeSize = int(unsafe.Sizeof(flatEdge{}))

// bytesToSlice reinterprets a byte slice as a slice of T with no copy, the
// same unsafe cast used by the mmap'd morphological dictionary reader this
// package is modeled on.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	n := len(b) / size
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// sliceToBytes is bytesToSlice's inverse: it reinterprets a []T as the raw
// bytes of its native in-memory layout, with no copy. WriteTo uses this
// instead of binary.Write-per-field so the bytes it writes are exactly what
// Open's bytesToSlice cast expects back: binary.Write packs struct fields
// with no padding, which disagrees with unsafe.Sizeof's natively-aligned
// stride the moment a struct mixes field widths (as flatNode does, with its
// trailing bool after two uint32s and a uint64).
func sliceToBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*size)
}
