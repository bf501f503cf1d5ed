package walkabout

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

var defaultFaceColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

type plyVertex struct {
	pos   Vector3
	color color.RGBA
}

func LoadObjectFromPLYFile(fileName string, flip bool) (*Model, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	obj, err := LoadObjectFromPLYReader(file, flip)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}

	return obj, nil
}

// LoadObjectFromPLYReader reads an ASCII PLY model. Colors are taken from
// the faces if present, otherwise averaged from the vertices, otherwise grey.
// flip reverses the winding of every face.
func LoadObjectFromPLYReader(reader io.Reader, flip bool) (*Model, error) {
	obj := NewModel("ply")
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var hasVertexColor, hasFaceColor, sawHeaderEnd bool
	var currentElement string

	for !sawHeaderEnd && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) > 1 && parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", parts[1])
			}
		case "element":
			if len(parts) == 3 {
				currentElement = parts[1]
				n, err := strconv.Atoi(parts[2])
				if err != nil {
					return nil, fmt.Errorf("bad element count %q: %w", parts[2], err)
				}
				switch parts[1] {
				case "vertex":
					vertexCount = n
				case "face":
					faceCount = n
				}
			}
		case "property":
			if len(parts) > 2 && (parts[2] == "red" || parts[2] == "diffuse_red") {
				switch currentElement {
				case "vertex":
					hasVertexColor = true
				case "face":
					hasFaceColor = true
				}
			}
		case "end_header":
			sawHeaderEnd = true
		}
	}
	if !sawHeaderEnd {
		return nil, fmt.Errorf("missing end_header")
	}

	vertices := make([]plyVertex, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 || (hasVertexColor && len(parts) < 6) {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}

		var xyz [3]float64
		for j := range xyz {
			v, err := strconv.ParseFloat(parts[j], 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			xyz[j] = v
		}
		vert := plyVertex{pos: NewVector3(xyz[0], xyz[1], xyz[2]), color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
		if hasVertexColor {
			c, err := parseRGB(parts[3:6])
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			vert.color = c
		}
		vertices = append(vertices, vert)
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}

		points := make([]Vector3, 0, numFaceVerts)
		var r, g, b uint32
		for j := 1; j <= numFaceVerts; j++ {
			idx, err := strconv.Atoi(parts[j])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: bad vertex index %q", i, parts[j])
			}
			vert := vertices[idx]
			points = append(points, vert.pos)
			r += uint32(vert.color.R)
			g += uint32(vert.color.G)
			b += uint32(vert.color.B)
		}

		faceColor := defaultFaceColor
		switch {
		case hasFaceColor:
			if len(parts) < numFaceVerts+4 {
				return nil, fmt.Errorf("invalid face-color data on line %d", i)
			}
			faceColor, err = parseRGB(parts[numFaceVerts+1 : numFaceVerts+4])
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
		case hasVertexColor && numFaceVerts > 0:
			n := uint32(numFaceVerts)
			faceColor = color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
		}

		if flip {
			reversePoints(points)
		}
		obj.AddFace(points, faceColor)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	return obj, nil
}

func parseRGB(parts []string) (color.RGBA, error) {
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("bad color component %q: %w", p, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

func reversePoints(points []Vector3) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
