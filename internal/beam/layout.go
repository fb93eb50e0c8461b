package beam

// Bar is one reinforcing bar in the cross-section (mm, origin at the
// bottom-left corner, y measured up from the tension face)
type Bar struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
}

// BarLayout is the arrangement of the tension bars across the width
type BarLayout struct {
	Bars    []Bar   `json:"bars"`
	Spacing float64 `json:"spacing"` // centre to centre, 0 for a single bar
}

// Layout places count bars evenly between cover and width - cover.
// A single bar sits exactly at mid-width; count below one is drawn as one bar.
func Layout(in BeamInput, count int) BarLayout {
	if count < 1 {
		count = 1
	}
	layout := BarLayout{Bars: make([]Bar, count)}

	if count == 1 {
		layout.Bars[0] = Bar{X: in.WidthMM / 2, Y: in.CoverMM, Diameter: in.BarDiameterMM}
		return layout
	}

	layout.Spacing = (in.WidthMM - 2*in.CoverMM) / float64(count-1)
	for i := range layout.Bars {
		layout.Bars[i] = Bar{
			X:        in.CoverMM + float64(i)*layout.Spacing,
			Y:        in.CoverMM,
			Diameter: in.BarDiameterMM,
		}
	}
	return layout
}

// ClearSpacing returns the gap between adjacent bar surfaces, 0 for a single bar
func (l BarLayout) ClearSpacing() float64 {
	if len(l.Bars) < 2 {
		return 0
	}
	return l.Spacing - l.Bars[0].Diameter
}
