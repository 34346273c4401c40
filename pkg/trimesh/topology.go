package trimesh

import "sort"

// EdgeSet partitions the undirected edges of a mesh by how many
// triangles use them: boundary edges belong to exactly one triangle,
// internal edges to two or more. Pairs are normalized (low index first)
// and sorted.
type EdgeSet struct {
	Boundary [][2]int
	Internal [][2]int
}

// UVs maps pixel-space vertices to normalized texture coordinates with
// the image origin at the top left: u = x/w, v = y/h, no Y flip. A
// non-positive dimension yields all-zero coordinates.
func UVs(vertices [][2]float64, w, h int) [][2]float64 {
	uvs := make([][2]float64, len(vertices))
	if w <= 0 || h <= 0 {
		return uvs
	}
	fw, fh := float64(w), float64(h)
	for i, v := range vertices {
		uvs[i] = [2]float64{v[0] / fw, v[1] / fh}
	}
	return uvs
}

// ClassifyEdges counts triangle edge usage and splits the edges into
// boundary and internal sets.
func ClassifyEdges(triangles [][3]int) EdgeSet {
	counts := make(map[[2]int]int, len(triangles)*3/2)
	for _, t := range triangles {
		counts[normEdge(t[0], t[1])]++
		counts[normEdge(t[1], t[2])]++
		counts[normEdge(t[2], t[0])]++
	}

	var set EdgeSet
	for e, n := range counts {
		if n == 1 {
			set.Boundary = append(set.Boundary, e)
		} else {
			set.Internal = append(set.Internal, e)
		}
	}
	sortEdges(set.Boundary)
	sortEdges(set.Internal)
	return set
}

func normEdge(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func sortEdges(edges [][2]int) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
}
