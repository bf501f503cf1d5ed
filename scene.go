package walkabout

import (
	"image/color"
	"slices"
)

// Scene is the set of models and lights drawn by a Renderer.
type Scene struct {
	Background color.RGBA

	nodes  []*Model
	lights []Light
}

func NewScene(background color.RGBA) *Scene {
	return &Scene{Background: background}
}

// Add appends a model. Adding a model that is already present is a no-op.
func (s *Scene) Add(m *Model) {
	if m == nil || s.Contains(m) {
		return
	}
	s.nodes = append(s.nodes, m)
}

// Remove reports whether m was part of the scene.
func (s *Scene) Remove(m *Model) bool {
	i := slices.Index(s.nodes, m)
	if i < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	return true
}

func (s *Scene) Contains(m *Model) bool {
	return slices.Contains(s.nodes, m)
}

func (s *Scene) Nodes() []*Model {
	return s.nodes
}

func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

func (s *Scene) Lights() []Light {
	return s.lights
}
