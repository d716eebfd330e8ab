// Package utils contains small shared helpers.
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s within the given epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// SpaceDelimitedStringToFloatSlice converts a space-delimited number string,
// e.g. a URDF "x y z" attribute, into a float slice. Any entry that fails to
// parse is an error rather than being dropped, so a typo cannot silently shift
// or shrink the result.
func SpaceDelimitedStringToFloatSlice(s string) ([]float64, error) {
	var floats []float64
	for _, field := range strings.Fields(s) {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Errorf("unparseable number %q in %q", field, s)
		}
		floats = append(floats, f)
	}
	return floats, nil
}
