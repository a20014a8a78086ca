package shape

// AutoSegments fills zero segment counts from the shape's dimensions instead
// of the fixed family defaults: roughly one axial segment per two units of
// height, one cap ring per two units of wall, one edge segment per two units
// of side length. Counts already set are kept. The result still needs New.
func AutoSegments(p Params) Params {
	switch s := p.(type) {
	case Cylinder:
		s.SegsA = keep(s.SegsA, span(s.Height))
		s.SegsTopCap = keep(s.SegsTopCap, ring(s.Radius-s.InnerRadius))
		s.SegsBottomCap = keep(s.SegsBottomCap, ring(s.Radius-s.InnerRadius))
		return s
	case Capsule:
		s.SegsA = keep(s.SegsA, span(s.Height))
		s.SegsTopCap = keep(s.SegsTopCap, ring(s.Radius-s.InnerRadius))
		s.SegsBottomCap = keep(s.SegsBottomCap, ring(s.Radius-s.InnerRadius))
		return s
	case EllipticalPrism:
		s.SegsA = keep(s.SegsA, span(s.Height))
		s.SegsTopCap = keep(s.SegsTopCap, ring(s.MinorAxis))
		s.SegsBottomCap = keep(s.SegsBottomCap, ring(s.MinorAxis))
		return s
	case CapsulePrism:
		s.SegsW = keep(s.SegsW, span(s.Width))
		s.SegsD = keep(s.SegsD, span(s.Depth))
		s.SegsZ = keep(s.SegsZ, span(s.Height))
		return s
	case RoundedCornerBox:
		s.SegsW = keep(s.SegsW, span(s.Width))
		s.SegsD = keep(s.SegsD, span(s.Depth))
		s.SegsZ = keep(s.SegsZ, span(s.Height))
		return s
	case Box:
		s.SegsW = keep(s.SegsW, span(s.Width))
		s.SegsD = keep(s.SegsD, span(s.Depth))
		s.SegsZ = keep(s.SegsZ, span(s.Height))
		return s
	case Plane:
		s.SegsW = keep(s.SegsW, span(s.Width))
		s.SegsD = keep(s.SegsD, span(s.Depth))
		return s
	case Sphere:
		n := 1
		if 2*s.Radius >= 3 {
			n = int(s.Radius)
		}
		s.SegsTopCap = keep(s.SegsTopCap, n)
		s.SegsBottomCap = keep(s.SegsBottomCap, n)
		return s
	case IrregularPrism:
		s.SegsA = keep(s.SegsA, span(s.Height))
		return s
	}
	return p
}

func keep(n, derived int) int {
	if n != 0 {
		return n
	}
	return derived
}

func span(length float64) int {
	if length >= 3 {
		return int(length / 2)
	}
	return 1
}

func ring(width float64) int {
	return max(int(width/2), 1)
}
