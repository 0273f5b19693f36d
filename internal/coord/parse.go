package coord

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseProjection rebuilds a projection from its name: "corners",
// "corners:0,1,2" or "edges:0,1,2,3,4,5".
func ParseProjection(name string) (Projection, error) {
	if name == "corners" {
		return Corners(), nil
	}
	kindName, list, ok := strings.Cut(name, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProjection, name)
	}

	var kind Kind
	switch kindName {
	case Corner.String():
		kind = Corner
	case Edge.String():
		kind = Edge
	default:
		return nil, fmt.Errorf("%w: unknown piece kind in %q", ErrInvalidProjection, name)
	}

	var pieces []int
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidProjection, name, err)
		}
		pieces = append(pieces, v)
	}
	p, err := NewPieces(kind, pieces)
	if err != nil {
		return nil, err
	}
	return p, nil
}
