package codegen

import (
	"fmt"

	"cfgbench/graph"
)

// Partition is a non-empty, ordered subset of node ids assigned to one
// translation unit. Partitions are disjoint and their union is the full
// node set; a node's partition is independent of its callers'.
type Partition struct {
	Index int
	IDs   []uint32
}

// Filename returns the partition's translation unit name.
func (p Partition) Filename() string {
	return fmt.Sprintf("%d.c", p.Index)
}

// ObjectFile returns the partition's object file name in the build recipe.
func (p Partition) ObjectFile() string {
	return fmt.Sprintf("%d.o", p.Index)
}

// Partitions assigns the graph's nodes to numFiles contiguous blocks over
// the stable node order, root first. numFiles is clamped to [1, node
// count], so every returned partition is non-empty and the root always
// lands in partition 0. The first (nodes mod numFiles) partitions take one
// extra node so exactly numFiles partitions come back.
func Partitions(g *graph.Graph, numFiles int) []Partition {
	order := g.Order()
	n := len(order)
	if numFiles < 1 {
		numFiles = 1
	}
	if numFiles > n {
		numFiles = n
	}

	base := n / numFiles
	extra := n % numFiles

	parts := make([]Partition, 0, numFiles)
	pos := 0
	for i := 0; i < numFiles; i++ {
		size := base
		if i < extra {
			size++
		}
		parts = append(parts, Partition{
			Index: i,
			IDs:   order[pos : pos+size],
		})
		pos += size
	}
	return parts
}
