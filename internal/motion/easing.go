package motion

// Easing names a timing curve applied within one command's duration.
type Easing string

const (
	EasingNone      Easing = ""
	EasingLinear    Easing = "linear"
	EasingEaseIn    Easing = "easeIn"
	EasingEaseOut   Easing = "easeOut"
	EasingEaseInOut Easing = "easeInOut"
)

// Known reports whether e is empty or one of the named curves.
func (e Easing) Known() bool {
	switch e {
	case EasingNone, EasingLinear, EasingEaseIn, EasingEaseOut, EasingEaseInOut:
		return true
	}
	return false
}

// Apply maps linear progress t in [0,1] through the curve. Unknown and empty
// names are linear.
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case EasingEaseIn:
		return t * t * t
	case EasingEaseOut:
		u := 1 - t
		return 1 - u*u*u
	case EasingEaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}
