package mesh

// Result is the mesh generated for a single image: geometry in
// image-pixel space, normalized UVs, edge topology and the parameters
// that produced it. X and Y carry the image center, the downstream
// anchor for rig placement.
type Result struct {
	ImagePath string `json:"image_path"`
	ImageName string `json:"image_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`

	Vertices        [][2]float64 `json:"vertices"`
	Triangles       [][3]int     `json:"triangles"`
	UVs             [][2]float64 `json:"uvs"`
	BoundaryIndices []int        `json:"boundary_indices"`
	BoundaryEdges   [][2]int     `json:"boundary_edges"`
	InternalEdges   [][2]int     `json:"internal_edges"`

	ParamsUsed Params  `json:"params_used"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}
