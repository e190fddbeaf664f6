// Package unionfind implements a disjoint-set forest over dense indices.
package unionfind

// UnionFind tracks which of n elements belong to the same set. The root of
// every set is its smallest element, so set identities do not depend on the
// order of Union calls.
type UnionFind struct {
	parent []int
	size   []int
}

// New creates n singleton sets
func New(n int) *UnionFind {
	u := &UnionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

// Find returns the root of the set containing i
func (u *UnionFind) Find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

// Union merges the sets containing a and b
func (u *UnionFind) Union(a, b int) {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}

// Size returns the number of elements in the set containing i
func (u *UnionFind) Size(i int) int {
	return u.size[u.Find(i)]
}
