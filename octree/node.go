package octree

// Node is one cube in a sparse volumetric octree. A Node with no
// children is either empty or a leaf uniformly holding a single value
// across its whole cube; a Node with children has split its cube into
// eight equal octants, indexed by the low three bits of
// (high-x, high-y, high-z).
//
// Insert takes a range, not a point: a value occupies every unit cell
// in [rng.Min, rng.Max), which in general overlaps many octants at
// once. A node only splits lazily, the first time an inserted range
// covers part but not all of its cube; when it does, its existing
// leaf value (if any) is copied down into all eight fresh children
// first, so the portion of the cube the new range doesn't touch keeps
// its old value instead of silently reverting to empty.
type Node[T comparable] struct {
	value    *T
	children *[8]*Node[T]
}

// octantMin returns the minimum corner of child octant i (0-7) of the
// cube [min, min+2*half)^3.
func octantMin(min Point, half int32, i int) Point {
	childMin := min
	if i&1 != 0 {
		childMin.X += half
	}
	if i&2 != 0 {
		childMin.Y += half
	}
	if i&4 != 0 {
		childMin.Z += half
	}
	return childMin
}

// Insert marks every unit cell of rng within this node's cube
// [min, min+side)^3 as holding value.
func (n *Node[T]) Insert(min Point, side int32, rng Bounds, value T) {
	nodeBounds := Bounds{Min: min, Max: Point{min.X + side, min.Y + side, min.Z + side}}
	if !nodeBounds.Intersects(rng) {
		return
	}
	if rng.Covers(nodeBounds) {
		n.children = nil
		v := value
		n.value = &v
		return
	}
	if side <= 1 {
		v := value
		n.value = &v
		n.children = nil
		return
	}

	if n.children == nil {
		n.children = &[8]*Node[T]{}
		for i := range n.children {
			var inherited *T
			if n.value != nil {
				v := *n.value
				inherited = &v
			}
			n.children[i] = &Node[T]{value: inherited}
		}
		n.value = nil
	}

	half := side / 2
	for i, child := range n.children {
		child.Insert(octantMin(min, half, i), half, rng, value)
	}
}

// Collect appends to out the distinct values of every leaf within this
// node's cube [min, min+side)^3 that overlaps region, deduplicated
// against seen.
func (n *Node[T]) Collect(min Point, side int32, region Bounds, seen map[T]struct{}, out *[]T) {
	nodeBounds := Bounds{Min: min, Max: Point{min.X + side, min.Y + side, min.Z + side}}
	if !nodeBounds.Intersects(region) {
		return
	}
	if n.children == nil {
		if n.value == nil {
			return
		}
		if _, ok := seen[*n.value]; !ok {
			seen[*n.value] = struct{}{}
			*out = append(*out, *n.value)
		}
		return
	}
	half := side / 2
	for i, child := range n.children {
		child.Collect(octantMin(min, half, i), half, region, seen, out)
	}
}
