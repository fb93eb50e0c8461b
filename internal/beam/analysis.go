package beam

import (
	"math"

	"github.com/alexiusacademia/eurobeam/internal/eurocode"
)

// Stations is the number of sample points along the span
const Stations = 100

// AnalysisResult holds everything derived from one BeamInput
type AnalysisResult struct {
	// Distributions
	XCoordinates  []float64 `json:"x_coordinates"`  // m
	MomentProfile []float64 `json:"moment_profile"` // kN-m

	// Design actions
	MomentMaxKNm float64 `json:"moment_max_knm"`
	ShearMaxKN   float64 `json:"shear_max_kn"`

	// Reinforcement
	RequiredSteelAreaMM2 float64 `json:"required_steel_area_mm2"`
	SingleBarAreaMM2     float64 `json:"single_bar_area_mm2"`
	BarCount             int     `json:"bar_count"`
	ProvidedSteelAreaMM2 float64 `json:"provided_steel_area_mm2"`
	DevelopmentLengthMM  float64 `json:"development_length_mm"`

	// Materials
	DesignYieldMPa    float64 `json:"design_yield_mpa"`    // f_yd
	DesignConcreteMPa float64 `json:"design_concrete_mpa"` // f_cd

	// Shear check
	EffectiveDepthMM float64 `json:"effective_depth_mm"`
	ShearCapacityKN  float64 `json:"shear_capacity_kn"`
	ShearOK          bool    `json:"shear_ok"`

	// Span/depth check
	SpanDepthRatio float64 `json:"span_depth_ratio"`
	SpanDepthLimit float64 `json:"span_depth_limit"`
	DeflectionOK   bool    `json:"deflection_ok"`
}

// Analyze derives the design quantities for a beam. It performs no
// validation and never fails; out-of-domain input yields meaningless numbers.
func Analyze(in BeamInput) AnalysisResult {
	res := AnalysisResult{}
	cases := activeCases(in)

	// Moment distribution
	res.XCoordinates = stations(in.SpanM, Stations)
	res.MomentProfile = make([]float64, len(res.XCoordinates))
	for i, x := range res.XCoordinates {
		res.MomentProfile[i] = momentAt(cases, in.SpanM, x)
	}

	// Governing moment: sampled stations plus the critical sections,
	// which the even spacing does not always hit
	for _, m := range res.MomentProfile {
		res.MomentMaxKNm = math.Max(res.MomentMaxKNm, math.Abs(m))
	}
	for _, c := range cases {
		m := momentAt(cases, in.SpanM, c.Critical(in.SpanM))
		res.MomentMaxKNm = math.Max(res.MomentMaxKNm, math.Abs(m))
	}

	// Peak shears add up without cancelling
	for _, c := range cases {
		res.ShearMaxKN += c.PeakShear(c.Magnitude, in.SpanM)
	}

	// Reinforcement (SI units)
	hM := in.HeightMM / 1000
	phiM := in.BarDiameterMM / 1000
	z := eurocode.LeverArmFactor * hM
	res.DesignYieldMPa = eurocode.DesignYield(in.SteelFykMPa)
	res.DesignConcreteMPa = eurocode.DesignCompressive(in.ConcreteFckMPa)
	fyd := res.DesignYieldMPa * 1e6

	// Areas in m², moment in N-m
	asSingle := eurocode.BarArea(phiM)
	asReq := res.MomentMaxKNm * 1e3 / (z * fyd)
	res.BarCount = BarCount(asReq, asSingle)
	asProv := float64(res.BarCount) * asSingle

	res.RequiredSteelAreaMM2 = asReq * 1e6
	res.SingleBarAreaMM2 = asSingle * 1e6
	res.ProvidedSteelAreaMM2 = asProv * 1e6
	res.DevelopmentLengthMM = eurocode.DevelopmentLength(in.BarDiameterMM, in.SteelFykMPa)

	// Shear
	res.EffectiveDepthMM = in.EffectiveDepthMM()
	res.ShearCapacityKN = eurocode.ShearResistance(asProv, in.WidthMM, res.EffectiveDepthMM)
	res.ShearOK = res.ShearMaxKN < res.ShearCapacityKN

	// Span/depth in consistent units (mm/mm)
	res.SpanDepthRatio = in.SpanM * 1000 / in.HeightMM
	res.SpanDepthLimit = SpanDepthLimit(in.Support)
	res.DeflectionOK = res.SpanDepthRatio <= res.SpanDepthLimit

	return res
}

// BarCount returns the number of bars of area single needed to provide
// required, never fewer than one.
func BarCount(required, single float64) int {
	n := int(math.Ceil(required / single))
	if n < 1 {
		return 1
	}
	return n
}

// SpanDepthLimit returns the permitted span/depth ratio for a support condition
func SpanDepthLimit(s Support) float64 {
	if s == Cantilever {
		return eurocode.SpanDepthCantilever
	}
	return eurocode.SpanDepthSimplySupported
}

func momentAt(cases []activeLoad, L, x float64) float64 {
	var m float64
	for _, c := range cases {
		m += c.Moment(c.Magnitude, L, x)
	}
	return m
}

// stations returns n evenly spaced points on [0, L], the last exactly L
func stations(L float64, n int) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		return xs
	}
	step := L / float64(n-1)
	for i := range xs {
		xs[i] = float64(i) * step
	}
	xs[n-1] = L
	return xs
}
