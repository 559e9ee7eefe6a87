package enums

import (
	"fmt"
	"strings"
)

// Size is the fixed garment size vocabulary: numeric children sizes and
// letter adult sizes.
type Size string

const (
	Size2  Size = "2"
	Size4  Size = "4"
	Size6  Size = "6"
	Size8  Size = "8"
	Size10 Size = "10"
	Size12 Size = "12"
	SizePP Size = "pp"
	SizeP  Size = "p"
	SizeM  Size = "m"
	SizeG  Size = "g"
	SizeGG Size = "gg"
)

// AllSizes lists the vocabulary in display order: children first, then adult.
var AllSizes = []Size{Size2, Size4, Size6, Size8, Size10, Size12, SizePP, SizeP, SizeM, SizeG, SizeGG}

var sizeSet = func() map[Size]struct{} {
	set := make(map[Size]struct{}, len(AllSizes))
	for _, s := range AllSizes {
		set[s] = struct{}{}
	}
	return set
}()

// ParseSize normalizes and validates a size string.
func ParseSize(value string) (Size, error) {
	s := Size(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := sizeSet[s]; !ok {
		return "", fmt.Errorf("unknown size %q", value)
	}
	return s, nil
}

func (s Size) IsValid() bool {
	_, ok := sizeSet[s]
	return ok
}

func (s Size) String() string {
	return string(s)
}
