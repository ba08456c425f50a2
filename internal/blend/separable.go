package blend

import "math"

// separable returns the per-channel blend function B(Cb, Cs) for the given
// mode. Inputs and outputs are unmultiplied values in [0, 1].
func separable(mode Mode) func(cb, cs float64) float64 {
	switch mode {
	case Multiply:
		return func(cb, cs float64) float64 { return cb * cs }
	case Screen:
		return func(cb, cs float64) float64 { return cb + cs - cb*cs }
	case Overlay:
		// HardLight with the operands swapped.
		return func(cb, cs float64) float64 { return hardLight(cs, cb) }
	case Darken:
		return math.Min
	case Lighten:
		return math.Max
	case ColorDodge:
		return func(cb, cs float64) float64 {
			if cb == 0 {
				return 0
			}
			if cs == 1 {
				return 1
			}
			return math.Min(1, cb/(1-cs))
		}
	case ColorBurn:
		return func(cb, cs float64) float64 {
			if cb == 1 {
				return 1
			}
			if cs == 0 {
				return 0
			}
			return 1 - math.Min(1, (1-cb)/cs)
		}
	case HardLight:
		return hardLight
	case SoftLight:
		return softLight
	case Difference:
		return func(cb, cs float64) float64 { return math.Abs(cb - cs) }
	case Exclusion:
		return func(cb, cs float64) float64 { return cb + cs - 2*cb*cs }
	default:
		return func(cb, cs float64) float64 { return cs }
	}
}

// hardLight multiplies or screens depending on the source value.
func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	s := 2*cs - 1
	return cb + s - cb*s
}

// softLight is the W3C soft-light curve, a gentler hard light.
func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}
