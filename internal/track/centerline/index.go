package centerline

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/banshee-data/trackgeo/internal/track"
)

// Index answers nearest-point queries against a fixed candidate set.
// Nearest returns the index of the candidate closest to q in Euclidean
// distance; ties go to the lowest index.
type Index interface {
	Nearest(q track.Point) int
}

// Strategy builds an Index over a candidate path. Implementations must agree
// on every answer, including ties, so callers can swap them freely.
type Strategy interface {
	Build(candidates track.Path) Index
}

// Strategy names accepted by ParseStrategy.
const (
	StrategyBrute  = "brute"
	StrategyKDTree = "kdtree"
)

// ParseStrategy maps a config string to a Strategy. The empty string selects
// brute force.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", StrategyBrute:
		return BruteForce{}, nil
	case StrategyKDTree:
		return KDTree{}, nil
	default:
		return nil, fmt.Errorf("centerline: %w: unknown nearest strategy %q", track.ErrInvalidParameter, name)
	}
}

// ============================================================================
// Brute force
// ============================================================================

// BruteForce scans every candidate for every query.
type BruteForce struct{}

// Build implements Strategy.
func (BruteForce) Build(candidates track.Path) Index {
	return bruteIndex(candidates)
}

type bruteIndex track.Path

func (b bruteIndex) Nearest(q track.Point) int {
	best := -1
	bestD := 0.0
	for i, c := range b {
		d := sqDist(q, c)
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func sqDist(a, b track.Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

// ============================================================================
// k-d tree
// ============================================================================

// KDTree answers queries from a gonum k-d tree. After the nearest distance
// is found, every candidate at that exact distance is collected and the
// lowest index wins, so answers match BruteForce.
type KDTree struct{}

// Build implements Strategy.
func (KDTree) Build(candidates track.Path) Index {
	pts := make(indexedPoints, len(candidates))
	for i, c := range candidates {
		pts[i] = indexedPoint{Point: c, idx: i}
	}
	if len(pts) == 0 {
		return bruteIndex(nil)
	}
	return &kdIndex{tree: kdtree.New(pts, false)}
}

type kdIndex struct {
	tree *kdtree.Tree
}

func (k *kdIndex) Nearest(q track.Point) int {
	query := indexedPoint{Point: q, idx: -1}
	_, d := k.tree.Nearest(query)

	keep := kdtree.NewDistKeeper(d)
	k.tree.NearestSet(keep, query)

	best := -1
	for _, cd := range keep.Heap {
		p, ok := cd.Comparable.(indexedPoint)
		if !ok {
			continue
		}
		if best < 0 || p.idx < best {
			best = p.idx
		}
	}
	return best
}

// indexedPoint carries its position in the candidate path through the tree.
type indexedPoint struct {
	track.Point
	idx int
}

func (p indexedPoint) coord(d kdtree.Dim) float64 {
	switch d {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Compare implements kdtree.Comparable.
func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coord(d) - c.(indexedPoint).coord(d)
}

// Dims implements kdtree.Comparable.
func (p indexedPoint) Dims() int { return 3 }

// Distance implements kdtree.Comparable. It returns the squared distance.
func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	return sqDist(p.Point, c.(indexedPoint).Point)
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p indexedPoints) Len() int                      { return len(p) }
func (p indexedPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{dim: d, pts: p}, kdtree.MedianOfMedians(plane{dim: d, pts: p}))
}

// plane sorts points along one dimension for pivot selection.
type plane struct {
	dim kdtree.Dim
	pts indexedPoints
}

func (p plane) Len() int { return len(p.pts) }
func (p plane) Less(i, j int) bool {
	return p.pts[i].coord(p.dim) < p.pts[j].coord(p.dim)
}
func (p plane) Swap(i, j int) { p.pts[i], p.pts[j] = p.pts[j], p.pts[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{dim: p.dim, pts: p.pts[start:end]}
}
