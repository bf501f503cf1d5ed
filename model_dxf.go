package walkabout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func LoadObjectFromDXFFile(fileName string, flip bool) (*Model, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	obj, err := NewObjectFromDXF(file, flip)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}

	return obj, nil
}

// NewObjectFromDXF reads the 3DFACE entities of a simplified ASCII DXF file.
// Each face is expected to be laid out as a layer group followed by four
// vertices of (code, x, code, y, code, z).
func NewObjectFromDXF(reader io.Reader, flip bool) (*Model, error) {
	obj := NewModel("dxf")

	scanner := bufio.NewScanner(reader)

	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", scanner.Text(), err)
		}
		return val, nil
	}

	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected end of file while parsing 3DFACE header")
			}
		}

		points := make([]Vector3, 0, 4)
		for c := 0; c < 4; c++ {
			var xyz [3]float64
			for axis := range xyz {
				v, err := readFloatLine()
				if err != nil {
					return nil, fmt.Errorf("error reading coordinate %d for vertex %d: %w", axis, c, err)
				}
				xyz[axis] = v
				scanner.Scan() // group code of the next value
			}
			points = append(points, NewVector3(xyz[0], xyz[1], xyz[2]))
		}

		if flip {
			reversePoints(points)
		}
		obj.AddFace(points, defaultFaceColor)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}

	return obj, nil
}
