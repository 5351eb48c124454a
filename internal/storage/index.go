// ABOUTME: FlatIndex is an exact brute-force vector index under squared L2 distance
// ABOUTME: Persists to a versioned little-endian binary file for rebuild-equivalent reloads
package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
)

// Index file layout: magic, version, dimension, vector count, then raw
// float32 vector data in handle order.
const (
	indexMagic   = "MSIX"
	indexVersion = uint32(1)

	// Upper bound on a stored vector's dimension. Embedding models top out
	// in the low thousands; a header past this is a corrupt file, not data.
	maxIndexDim = 1 << 16
)

// Neighbor is one k-NN search result: the stored vector's handle (its
// position in the metadata store) and its squared L2 distance to the query.
type Neighbor struct {
	Handle   int     `json:"handle"`
	Distance float32 `json:"distance"`
}

// FlatIndex stores fixed-dimension float32 vectors and answers exact
// nearest-neighbor queries by scanning all of them. Appropriate for
// personal-scale archives; no approximate structure, so identical queries
// always return identical results.
type FlatIndex struct {
	dim  int
	data []float32 // len = dim * count, vector i at data[i*dim : (i+1)*dim]
}

// NewFlatIndex creates an empty index for vectors of the given dimension.
func NewFlatIndex(dim int) (*FlatIndex, error) {
	if dim < 1 {
		return nil, fmt.Errorf("invalid index dimension %d", dim)
	}
	return &FlatIndex{dim: dim}, nil
}

// Dimension returns the fixed vector dimension.
func (ix *FlatIndex) Dimension() int { return ix.dim }

// Len returns the number of stored vectors.
func (ix *FlatIndex) Len() int { return len(ix.data) / ix.dim }

// Add appends vectors to the index in order. Handles are assigned
// sequentially, so vector j of this call gets handle Len()+j.
func (ix *FlatIndex) Add(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("vector %d has dimension %d, index expects %d", i, len(v), ix.dim)
		}
	}
	for _, v := range vectors {
		ix.data = append(ix.data, v...)
	}
	return nil
}

// Search returns the k stored vectors closest to query by squared L2
// distance, ascending. Ties break on the lower handle. Fewer than k stored
// vectors returns all of them; an empty index returns an empty result.
func (ix *FlatIndex) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query has dimension %d, index expects %d", len(query), ix.dim)
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	n := ix.Len()
	neighbors := make([]Neighbor, 0, n)
	for i := 0; i < n; i++ {
		vec := ix.data[i*ix.dim : (i+1)*ix.dim]
		var dist float64
		for j, q := range query {
			d := float64(q) - float64(vec[j])
			dist += d * d
		}
		neighbors = append(neighbors, Neighbor{Handle: i, Distance: float32(dist)})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Handle < neighbors[j].Handle
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// WriteTo serializes the index.
func (ix *FlatIndex) WriteTo(w io.Writer) error {
	if _, err := w.Write([]byte(indexMagic)); err != nil {
		return err
	}
	for _, v := range []uint32{indexVersion, uint32(ix.dim), uint32(ix.Len())} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, ix.data)
}

// ReadIndexFrom deserializes an index written by WriteTo.
func ReadIndexFrom(r io.Reader) (*FlatIndex, error) {
	magic := make([]byte, len(indexMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	if string(magic) != indexMagic {
		return nil, fmt.Errorf("not an index file (bad magic %q)", magic)
	}

	var version, dim, count uint32
	for _, p := range []*uint32{&version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("reading index header: %w", err)
		}
	}
	if version != indexVersion {
		return nil, fmt.Errorf("unsupported index version %d", version)
	}
	if dim < 1 || dim > maxIndexDim {
		return nil, fmt.Errorf("index file corrupt: implausible dimension %d", dim)
	}

	// The header's count is untrusted, so vectors are read one at a time:
	// memory grows only with data actually present, and a count past the end
	// of the file surfaces as a read error instead of an oversized or
	// overflowed allocation.
	var data []float32
	vec := make([]float32, dim)
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("index file corrupt: header declares %d vectors, read failed at %d: %w", count, i, err)
		}
		data = append(data, vec...)
	}
	return &FlatIndex{dim: int(dim), data: data}, nil
}

// SaveIndex writes the index to path atomically.
func SaveIndex(ix *FlatIndex, path string) error {
	return atomicWrite(path, func(w io.Writer) error {
		return ix.WriteTo(w)
	})
}

// LoadIndex reads an index file from disk.
func LoadIndex(path string) (*FlatIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()
	ix, err := ReadIndexFrom(f)
	if err != nil {
		return nil, fmt.Errorf("loading index %s: %w", path, err)
	}
	return ix, nil
}
