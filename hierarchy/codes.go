package hierarchy

import (
	"fmt"

	"github.com/poiesic/cilin/core"
)

// MaxLayer is the deepest layer: codes identical up to the terminal marker.
const MaxLayer = 5

// Decode splits a code into its six levels.
func Decode(code core.Code) core.Levels {
	return code.Levels()
}

// CommonPrefix returns the longest shared leading substring of two codes.
// A raw length of 3 or 6 falls inside a two-digit group and is rounded down
// to 2 or 5.
func CommonPrefix(c1, c2 core.Code) string {
	n := min(len(c1), len(c2))
	i := 0
	for i < n && c1[i] == c2[i] {
		i++
	}
	if i == 3 || i == 6 {
		i--
	}
	return string(c1[:i])
}

// LayerOf maps a common prefix length to its layer.
//
//	0 -> 0, 1 -> 1, 2 -> 2, 4 -> 3, 5 -> 4, 7 -> 5, 8 -> 0
//
// Identical codes (length 8) fall back to the top layer, so the tree distance
// of a code to itself is the maximum. Other lengths cannot come out of
// CommonPrefix and return core.ErrInvalidLayer.
func LayerOf(prefixLen int) (int, error) {
	switch prefixLen {
	case 0, core.CodeLength:
		return 0, nil
	case 1:
		return 1, nil
	case 2:
		return 2, nil
	case 4:
		return 3, nil
	case 5:
		return 4, nil
	case 7:
		return 5, nil
	default:
		return 0, fmt.Errorf("%w: no layer for prefix length %d", core.ErrInvalidLayer, prefixLen)
	}
}

// BranchDistance returns the separation of two codes at their first
// differing level: character distance for letter levels and numeric distance
// for digit groups. If the first four levels tie, the distance at the fifth
// level is returned, which is 0 for codes equal up to the marker.
func BranchDistance(c1, c2 core.Code) int {
	l1, l2 := c1.Levels(), c2.Levels()
	for level := core.LevelMajor; level < core.LevelAtom; level++ {
		if l1[level] != l2[level] {
			return levelDistance(level, l1[level], l2[level])
		}
	}
	return levelDistance(core.LevelAtom, l1[core.LevelAtom], l2[core.LevelAtom])
}

func levelDistance(level int, a, b string) int {
	switch level {
	case core.LevelMinor, core.LevelAtom:
		return abs(twoDigits(a) - twoDigits(b))
	default:
		return abs(int(a[0]) - int(b[0]))
	}
}

func twoDigits(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
