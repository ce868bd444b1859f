package similarity

import (
	"fmt"
	"strings"
)

// Strategy selects a similarity formula.
type Strategy int

const (
	// Legacy is the layer-coefficient formula.
	Legacy Strategy = iota + 1
	// Density2013 blends path length with taxonomy word density.
	Density2013
	// Distance2016 uses weighted level distances.
	Distance2016
)

var strategyNames = map[Strategy]string{
	Legacy:       "legacy",
	Density2013:  "density2013",
	Distance2016: "distance2016",
}

// Strategies returns every defined strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Legacy, Density2013, Distance2016}
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is a defined strategy.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// ParseStrategy maps a name to a Strategy. Accepts the canonical names and
// the short forms "2013" and "2016".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy", "":
		return Legacy, nil
	case "density2013", "2013":
		return Density2013, nil
	case "distance2016", "2016":
		return Distance2016, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
