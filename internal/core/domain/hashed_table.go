package domain

import (
	"encoding/binary"
	"iter"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Row is a table row that can contribute to a content hash.
// The interface is sealed: only rows defined in this package qualify.
type Row[R any] interface {
	writeHash(d *xxhash.Digest, w *hashWriter)
	clone() R
}

// HashedTable wraps immutable rows together with their content hash.
//
// The hash is the XOR of per-row xxhash digests, each seeded with the row's
// position, so equal content in equal order always yields an equal hash.
// Rows are copied in and out; the only way to obtain a hash is NewHashedTable.
type HashedTable[R Row[R]] struct {
	rows []R
	hash uint64
}

// NewHashedTable copies rows and computes their content hash.
func NewHashedTable[R Row[R]](rows []R) HashedTable[R] {
	owned := make([]R, len(rows))
	for i, row := range rows {
		owned[i] = row.clone()
	}
	return HashedTable[R]{
		rows: owned,
		hash: hashRows(owned),
	}
}

// Hash returns the content hash.
func (t HashedTable[R]) Hash() uint64 {
	return t.hash
}

// Len returns the number of rows.
func (t HashedTable[R]) Len() int {
	return len(t.rows)
}

// Row returns a copy of the i-th row.
func (t HashedTable[R]) Row(i int) R {
	return t.rows[i].clone()
}

// All yields copies of the rows in order.
func (t HashedTable[R]) All() iter.Seq2[int, R] {
	return func(yield func(int, R) bool) {
		for i, row := range t.rows {
			if !yield(i, row.clone()) {
				return
			}
		}
	}
}

// Rows returns a copy of all rows.
func (t HashedTable[R]) Rows() []R {
	out := make([]R, len(t.rows))
	for i, row := range t.rows {
		out[i] = row.clone()
	}
	return out
}

func hashRows[R Row[R]](rows []R) uint64 {
	var (
		sum uint64
		w   hashWriter
	)
	d := xxhash.New()
	for i, row := range rows {
		d.Reset()
		// Positional index, so permutations hash differently.
		w.putUint64(d, uint64(i))
		row.writeHash(d, &w)
		sum ^= d.Sum64()
	}
	return sum
}

// hashWriter feeds fixed-width little-endian encodings into a digest.
type hashWriter struct {
	buf [8]byte
}

func (w *hashWriter) putUint64(d *xxhash.Digest, v uint64) {
	binary.LittleEndian.PutUint64(w.buf[:], v)
	_, _ = d.Write(w.buf[:])
}

func (w *hashWriter) putFloat64(d *xxhash.Digest, v float64) {
	w.putUint64(d, math.Float64bits(v))
}

func (w *hashWriter) putBool(d *xxhash.Digest, v bool) {
	if v {
		w.buf[0] = 1
	} else {
		w.buf[0] = 0
	}
	_, _ = d.Write(w.buf[:1])
}

func (w *hashWriter) putOptionalFloat32(d *xxhash.Digest, v Optional[float32]) {
	w.putBool(d, v.Valid)
	if !v.Valid {
		w.putUint64(d, 0)
		return
	}
	w.putUint64(d, uint64(math.Float32bits(v.Value)))
}

func (w *hashWriter) putOptionalFloat64(d *xxhash.Digest, v Optional[float64]) {
	w.putBool(d, v.Valid)
	if !v.Valid {
		w.putUint64(d, 0)
		return
	}
	w.putFloat64(d, v.Value)
}
