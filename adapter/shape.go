// Package adapter supplies the non-target request-shape logic (full / block
// / indexed) that sits between the matrix façade and a dense or sparse
// core, plus the densify and sparsify transforms that let either storage
// kind serve either extractor flavor. Adapters are deliberately thin: per
// the polymorphism design note, storage x request-shape x caching-policy is
// four independent axes, and an adapter only ever owns the request-shape
// axis — it builds the non-target Selection and, for sparse results,
// rebases core-local positions back to real foreign column ids.
package adapter

import "github.com/katalvlaran/tatamigo/host"

// Shape builds the non-target host.Selection for one request flavor and
// rebases a sparse core's local, 0-based non-target positions back to the
// real foreign column id they correspond to.
type Shape interface {
	Selection() host.Selection
	Rebase(localPos int64) int64
	Len() int64
}

// Full requests the entire non-target axis.
type Full struct{ N int64 }

func (f Full) Selection() host.Selection { return host.Full(f.N) }
func (f Full) Rebase(p int64) int64      { return p }
func (f Full) Len() int64                { return f.N }

// Block requests a contiguous [Start, Start+Length) range of the non-target
// axis.
type Block struct{ Start, Length int64 }

func (b Block) Selection() host.Selection { return host.Block(b.Start, b.Length) }
func (b Block) Rebase(p int64) int64      { return b.Start + p }
func (b Block) Len() int64                { return b.Length }

// Indexed requests an arbitrary, caller-supplied (possibly duplicate,
// possibly unsorted) list of non-target indices.
type Indexed struct{ Indices []int64 }

func (x Indexed) Selection() host.Selection { return host.Indexed(x.Indices) }
func (x Indexed) Rebase(p int64) int64      { return x.Indices[p] }
func (x Indexed) Len() int64                { return int64(len(x.Indices)) }
