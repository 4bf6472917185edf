package octree

// ChunkTree is a sparse grid of octree roots, one per 1024^3 chunk. A
// save that spans a huge, sparsely-populated coordinate range never
// allocates more octree structure than the chunks it actually touches.
//
// Insert takes a volume rather than a point, so a single call can
// touch several chunk roots at once: it decomposes the range across
// every chunk its bounding box overlaps and inserts the same range
// into each, relying on Node.Insert to clip against that chunk's own
// cube.
type ChunkTree[T comparable] struct {
	chunks map[Point]*Node[T]
}

// NewChunkTree returns an empty ChunkTree.
func NewChunkTree[T comparable]() *ChunkTree[T] {
	return &ChunkTree[T]{chunks: map[Point]*Node[T]{}}
}

// forEachChunk calls fn with the origin of every chunk whose cube
// overlaps rng.
func forEachChunk(rng Bounds, fn func(origin Point)) {
	loChunk := ChunkOf(rng.Min)
	hiChunk := ChunkOf(Point{rng.Max.X - 1, rng.Max.Y - 1, rng.Max.Z - 1})
	for cx := loChunk.X; cx <= hiChunk.X; cx += ChunkSize {
		for cy := loChunk.Y; cy <= hiChunk.Y; cy += ChunkSize {
			for cz := loChunk.Z; cz <= hiChunk.Z; cz += ChunkSize {
				fn(Point{cx, cy, cz})
			}
		}
	}
}

// Insert marks every unit cell of rng, across however many chunks it
// spans, as holding value.
func (t *ChunkTree[T]) Insert(rng Bounds, value T) {
	forEachChunk(rng, func(origin Point) {
		root, ok := t.chunks[origin]
		if !ok {
			root = &Node[T]{}
			t.chunks[origin] = root
		}
		root.Insert(origin, ChunkSize, rng, value)
	})
}

// Query returns the distinct values of every leaf overlapping region,
// across every chunk that intersects it.
func (t *ChunkTree[T]) Query(region Bounds) []T {
	seen := map[T]struct{}{}
	var out []T
	forEachChunk(region, func(origin Point) {
		root, ok := t.chunks[origin]
		if !ok {
			return
		}
		root.Collect(origin, ChunkSize, region, seen, &out)
	})
	return out
}

// Len reports the number of non-empty chunk roots.
func (t *ChunkTree[T]) Len() int {
	return len(t.chunks)
}
