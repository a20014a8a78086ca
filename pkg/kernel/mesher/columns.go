package mesher

import (
	"math"
)

// column is one angular position of a sweep.
type column struct {
	cos, sin float64
	u        float64
}

// sweepColumns returns segs+1 angular columns from start sweeping by sweep
// radians. A closed sweep repeats column 0 bit for bit in the last column so
// the seam welds; multiples of a quarter turn are snapped to exact values.
func sweepColumns(start, sweep float64, segs int, closed bool) []column {
	cols := make([]column, segs+1)
	for j := 0; j <= segs; j++ {
		t := frac(j, segs)
		if closed && j == segs {
			cols[j] = cols[0]
			cols[j].u = 1
			continue
		}
		c, s := cosSin(start + sweep*t)
		cols[j] = column{cos: c, sin: s, u: t}
	}
	return cols
}

// sliceSweep converts a slice angle in degrees (the part removed) into the
// swept angle in radians and whether the sweep is closed.
func sliceSweep(sliceDeg float64) (sweep float64, closed bool) {
	if sliceDeg == 0 {
		return 2 * math.Pi, true
	}
	return (360 - sliceDeg) * math.Pi / 180, false
}

func cosSin(a float64) (float64, float64) {
	q := a / (math.Pi / 2)
	if r := math.Round(q); math.Abs(q-r) < 1e-12 {
		switch ((int(r) % 4) + 4) % 4 {
		case 0:
			return 1, 0
		case 1:
			return 0, 1
		case 2:
			return -1, 0
		case 3:
			return 0, -1
		}
	}
	return math.Cos(a), math.Sin(a)
}
