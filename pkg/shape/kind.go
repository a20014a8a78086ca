package shape

import "fmt"

// Kind identifies a shape family.
type Kind int

const (
	KindCylinder Kind = iota
	KindEllipticalPrism
	KindCapsule
	KindCapsulePrism
	KindRoundedCornerBox
	KindSphere
	KindTorus
	KindBox
	KindPlane
	KindIrregularPrism
)

var kindNames = [...]string{
	KindCylinder:         "cylinder",
	KindEllipticalPrism:  "elliptical-prism",
	KindCapsule:          "capsule",
	KindCapsulePrism:     "capsule-prism",
	KindRoundedCornerBox: "rounded-corner-box",
	KindSphere:           "sphere",
	KindTorus:            "torus",
	KindBox:              "box",
	KindPlane:            "plane",
	KindIrregularPrism:   "irregular-prism",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every shape family in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a family name such as "rounded-corner-box" to its Kind.
// Underscores are accepted in place of hyphens.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name || underscored(n) == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("shape: unknown family %q", name)
}

func underscored(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == '-' {
			b[i] = '_'
		}
	}
	return string(b)
}
