package beam

// LoadCase is one entry of the formula table: the moment distribution and
// peak shear produced by a single load component on a given support.
type LoadCase struct {
	Support     Support
	Kind        LoadKind
	Description string

	// Moment returns M(x) in kN-m for load magnitude q on span L
	Moment func(q, L, x float64) float64
	// PeakShear returns the shear contribution in kN
	PeakShear func(q, L float64) float64
	// Critical returns the station of the peak moment
	Critical func(L float64) float64
}

// Formula table for the supported load cases.
// Cantilevers are fixed at x = 0 with the free end at x = L.
var loadCases = []LoadCase{
	{
		Support:     SimplySupported,
		Kind:        UniformLoad,
		Description: "w·x·(L−x)/2",
		Moment:      func(w, L, x float64) float64 { return w * x * (L - x) / 2 },
		PeakShear:   func(w, L float64) float64 { return w * L / 2 },
		Critical:    midspan,
	},
	{
		Support:     SimplySupported,
		Kind:        PointLoad,
		Description: "P at L/2",
		Moment: func(p, L, x float64) float64 {
			if x < L/2 {
				return p * x / 2
			}
			return p * (L - x) / 2
		},
		PeakShear: func(p, L float64) float64 { return p / 2 },
		Critical:  midspan,
	},
	{
		Support:     Cantilever,
		Kind:        UniformLoad,
		Description: "−w·x²/2",
		Moment:      func(w, L, x float64) float64 { return -w * x * x / 2 },
		PeakShear:   func(w, L float64) float64 { return w * L },
		Critical:    freeEnd,
	},
	{
		Support:     Cantilever,
		Kind:        PointLoad,
		Description: "P at tip",
		Moment: func(p, L, x float64) float64 {
			if x < L {
				return 0
			}
			return -p * L
		},
		PeakShear: func(p, L float64) float64 { return p },
		Critical:  freeEnd,
	},
}

func midspan(L float64) float64 { return L / 2 }
func freeEnd(L float64) float64 { return L }

// activeLoad pairs a table entry with its magnitude
type activeLoad struct {
	LoadCase
	Magnitude float64
}

// activeCases returns the table entries that contribute for this input.
// A component contributes only when its magnitude is positive.
func activeCases(in BeamInput) []activeLoad {
	var out []activeLoad
	for _, lc := range loadCases {
		if lc.Support != in.Support {
			continue
		}
		var q float64
		switch lc.Kind {
		case UniformLoad:
			q = in.UniformLoadKNm
		case PointLoad:
			q = in.PointLoadKN
		}
		if q > 0 {
			out = append(out, activeLoad{LoadCase: lc, Magnitude: q})
		}
	}
	return out
}

// LoadCases returns the formula table entries for a support condition
func LoadCases(s Support) []LoadCase {
	var out []LoadCase
	for _, lc := range loadCases {
		if lc.Support == s {
			out = append(out, lc)
		}
	}
	return out
}
