package cache

import (
	"cmp"
	"container/heap"
	"slices"
)

// tileHeap is a min-heap of tiles ordered by priority.
type tileHeap []*Tile

func (h tileHeap) Len() int           { return len(h) }
func (h tileHeap) Less(i, j int) bool { return h[i].Priority < h[j].Priority }
func (h tileHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *tileHeap) Push(x any) {
	t := x.(*Tile)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *tileHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// generation is a priority-ordered set of tiles with lookup by key.
type generation struct {
	heap  tileHeap
	byKey map[Key]*Tile
}

func newGeneration() *generation {
	return &generation{byKey: make(map[Key]*Tile)}
}

func (g *generation) len() int { return len(g.heap) }

func (g *generation) get(k Key) (*Tile, bool) {
	t, ok := g.byKey[k]
	return t, ok
}

func (g *generation) push(t *Tile) {
	heap.Push(&g.heap, t)
	g.byKey[t.Key()] = t
}

// popLowest removes the tile with the lowest priority.
func (g *generation) popLowest() *Tile {
	if len(g.heap) == 0 {
		return nil
	}
	t := heap.Pop(&g.heap).(*Tile)
	delete(g.byKey, t.Key())
	return t
}

func (g *generation) remove(t *Tile) {
	heap.Remove(&g.heap, t.index)
	delete(g.byKey, t.Key())
}

// sorted returns the tiles in ascending priority.
func (g *generation) sorted() []*Tile {
	out := slices.Clone([]*Tile(g.heap))
	slices.SortFunc(out, func(a, b *Tile) int { return cmp.Compare(a.Priority, b.Priority) })
	return out
}
