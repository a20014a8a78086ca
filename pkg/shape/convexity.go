package shape

// Convex classifies a parameter set for collision-shape selection. Hollow
// revolution shapes cut by a partial sweep have a reentrant notch; spheres
// and tori are always treated as concave. Elliptical prisms and the box
// family are tagged convex whatever their wall or sweep. Irregular prisms
// are convex exactly when their outline polygon is.
func Convex(p Params) bool {
	switch s := p.(type) {
	case Cylinder:
		return !(s.InnerRadius > 0 && s.RingSliceDeg > 0)
	case Capsule:
		return !(s.InnerRadius > 0 && s.RingSliceDeg > 0)
	case EllipticalPrism, CapsulePrism, RoundedCornerBox, Box, Plane:
		return true
	case Sphere, Torus:
		return false
	case IrregularPrism:
		return PolygonConvex(s.Points)
	}
	return false
}
