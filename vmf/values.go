package vmf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedValue is wrapped by every accessor that parses a raw string
// field into numbers.
var ErrMalformedValue = errors.New("malformed value")

// Vec3 is a point or direction.
type Vec3 [3]float64

// String formats v the way the editor writes bare vectors, e.g. "0 -16.5 64".
func (v Vec3) String() string {
	return formatFloat(v[0]) + " " + formatFloat(v[1]) + " " + formatFloat(v[2])
}

// ParseVec3 parses three space separated numbers, optionally wrapped in
// parentheses or square brackets.
func ParseVec3(s string) (Vec3, error) {
	nums, err := parseFloats(trimBrackets(s))
	if err != nil {
		return Vec3{}, err
	}
	if len(nums) != 3 {
		return Vec3{}, fmt.Errorf("%w: vector %q has %d components", ErrMalformedValue, s, len(nums))
	}
	return Vec3{nums[0], nums[1], nums[2]}, nil
}

// ParsePlane parses the "(x y z) (x y z) (x y z)" form of a side plane.
func ParsePlane(s string) ([3]Vec3, error) {
	var out [3]Vec3
	rest := strings.TrimSpace(s)
	for i := range out {
		if !strings.HasPrefix(rest, "(") {
			return out, fmt.Errorf("%w: plane %q", ErrMalformedValue, s)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return out, fmt.Errorf("%w: plane %q", ErrMalformedValue, s)
		}
		v, err := ParseVec3(rest[:end+1])
		if err != nil {
			return out, err
		}
		out[i] = v
		rest = strings.TrimSpace(rest[end+1:])
	}
	if rest != "" {
		return out, fmt.Errorf("%w: plane %q has trailing text", ErrMalformedValue, s)
	}
	return out, nil
}

// FormatPlane is the inverse of ParsePlane.
func FormatPlane(p [3]Vec3) string {
	return "(" + p[0].String() + ") (" + p[1].String() + ") (" + p[2].String() + ")"
}

// Axis is a texture axis: "[x y z shift] scale".
type Axis struct {
	Dir   Vec3
	Shift float64
	Scale float64
}

// ParseAxis parses a uaxis or vaxis value.
func ParseAxis(s string) (Axis, error) {
	open, end := strings.IndexByte(s, '['), strings.IndexByte(s, ']')
	if open < 0 || end < open {
		return Axis{}, fmt.Errorf("%w: axis %q", ErrMalformedValue, s)
	}
	inner, err := parseFloats(s[open+1 : end])
	if err != nil {
		return Axis{}, err
	}
	if len(inner) != 4 {
		return Axis{}, fmt.Errorf("%w: axis %q needs four components", ErrMalformedValue, s)
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(s[end+1:]), 64)
	if err != nil {
		return Axis{}, fmt.Errorf("%w: axis %q scale: %w", ErrMalformedValue, s, err)
	}
	return Axis{Dir: Vec3{inner[0], inner[1], inner[2]}, Shift: inner[3], Scale: scale}, nil
}

// String formats the axis in editor form.
func (a Axis) String() string {
	return "[" + a.Dir.String() + " " + formatFloat(a.Shift) + "] " + formatFloat(a.Scale)
}

func trimBrackets(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '(' && s[len(s)-1] == ')' || s[0] == '[' && s[len(s)-1] == ']') {
		return s[1 : len(s)-1]
	}
	return s
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedValue, f)
		}
		out[i] = n
	}
	return out, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
