package triefst

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	mmap "github.com/edsrzf/mmap-go"
)

// Reader is an opened, memory-mapped triefst file. Its node and edge slices
// point directly into mapped memory; no bytes are copied into the Go heap
// at open time, the same zero-copy posture the morphological dictionary
// reader uses for its DAWG.
type Reader struct {
	file  *os.File
	data  mmap.MMap
	nodes []flatNode
	edges []flatEdge
}

// Open memory-maps path and validates its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("triefst: open %s: %w", path, err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("triefst: mmap %s: %w", path, err)
	}

	if len(data) < headerSize {
		data.Unmap()
		f.Close()
		return nil, fmt.Errorf("triefst: %s: file too small for header", path)
	}

	var h header
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &h); err != nil {
		data.Unmap()
		f.Close()
		return nil, fmt.Errorf("triefst: %s: read header: %w", path, err)
	}
	if h.Magic != magic {
		data.Unmap()
		f.Close()
		return nil, fmt.Errorf("triefst: %s: bad magic", path)
	}

	nodesStart := int64(headerSize)
	nodesEnd := nodesStart + h.NodesCount*int64(flatNodeSize)
	edgesEnd := nodesEnd + h.EdgesCount*int64(flatEdgeSize)
	if edgesEnd > int64(len(data)) {
		data.Unmap()
		f.Close()
		return nil, fmt.Errorf("triefst: %s: truncated file", path)
	}

	nodes := bytesToSlice[flatNode](data[nodesStart:nodesEnd])
	edges := bytesToSlice[flatEdge](data[nodesEnd:edgesEnd])

	return &Reader{file: f, data: data, nodes: nodes, edges: edges}, nil
}

// Close unmaps the file. The Reader and any NodeRef/EdgeRef derived from it
// must not be used afterward.
func (r *Reader) Close() error {
	if err := r.data.Unmap(); err != nil {
		r.file.Close()
		return fmt.Errorf("triefst: unmap: %w", err)
	}
	return r.file.Close()
}

// NodeRef is a lightweight handle to one node in an opened Reader.
type NodeRef struct {
	r   *Reader
	idx uint32
}

// Root returns the transducer's start state.
func (r *Reader) Root() NodeRef { return NodeRef{r: r, idx: 0} }

// IsFinal reports whether n accepts the path that led to it.
func (n NodeRef) IsFinal() bool { return n.r.nodes[n.idx].IsFinal }

// FinalOutput returns the output stored at n. Only meaningful when IsFinal
// is true.
func (n NodeRef) FinalOutput() uint64 { return n.r.nodes[n.idx].FinalOutput }

// OutDegree returns the number of outgoing edges from n.
func (n NodeRef) OutDegree() int { return int(n.r.nodes[n.idx].EdgesLen) }

// Edges returns every outgoing edge from n, sorted ascending by input byte.
func (n NodeRef) Edges() []EdgeRef {
	fn := n.r.nodes[n.idx]
	out := make([]EdgeRef, fn.EdgesLen)
	for i := range out {
		out[i] = EdgeRef{r: n.r, idx: fn.EdgesIdx + uint32(i)}
	}
	return out
}

// FindInput looks for an outgoing edge labeled b, using binary search over
// the node's sorted edge window exactly as the dictionary DAWG's
// findChildGeneral does.
func (n NodeRef) FindInput(b byte) (EdgeRef, bool) {
	fn := n.r.nodes[n.idx]
	if fn.EdgesLen == 0 {
		return EdgeRef{}, false
	}
	edges := n.r.edges[fn.EdgesIdx : fn.EdgesIdx+uint32(fn.EdgesLen)]
	i := sort.Search(len(edges), func(i int) bool { return edges[i].Byte >= b })
	if i < len(edges) && edges[i].Byte == b {
		return EdgeRef{r: n.r, idx: fn.EdgesIdx + uint32(i)}, true
	}
	return EdgeRef{}, false
}

// Walk follows key byte-by-byte from n, returning the node reached and
// whether the whole key matched a path in the transducer.
func (n NodeRef) Walk(key []byte) (NodeRef, bool) {
	cur := n
	for _, b := range key {
		e, ok := cur.FindInput(b)
		if !ok {
			return NodeRef{}, false
		}
		cur = e.Transition()
	}
	return cur, true
}

// EdgeRef is a lightweight handle to one outgoing transition.
type EdgeRef struct {
	r   *Reader
	idx uint32
}

// Input returns the byte this edge is labeled with.
func (e EdgeRef) Input() byte { return e.r.edges[e.idx].Byte }

// Transition follows e and returns the node it leads to.
func (e EdgeRef) Transition() NodeRef {
	return NodeRef{r: e.r, idx: e.r.edges[e.idx].NodeID}
}
