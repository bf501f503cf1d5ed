package walkabout

// Mesh is a list of unique vertices shared by the faces of a model.
type Mesh struct {
	Points     []Vector3
	pointIndex map[[3]float64]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     make([]Vector3, 0, 64),
		pointIndex: make(map[[3]float64]int),
	}
}

// AddPoint returns the index of point, adding it if it is not already part
// of the mesh.
func (m *Mesh) AddPoint(point Vector3) int {
	pointKey := point.Array()

	if index, found := m.pointIndex[pointKey]; found {
		return index
	}

	m.Points = append(m.Points, point)
	newIndex := len(m.Points) - 1
	m.pointIndex[pointKey] = newIndex

	return newIndex
}

func (m *Mesh) Len() int {
	return len(m.Points)
}
