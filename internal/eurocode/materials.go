package eurocode

import "math"

// Eurocode 2 simplified design constants

const (
	// Partial factors for materials (EN 1992-1-1 Table 2.1N)
	GammaC = 1.5  // concrete
	GammaS = 1.15 // reinforcing steel

	// Lever arm as a fraction of total depth (z = 0.9h)
	LeverArmFactor = 0.9

	// Simplified bond factor used in the anchorage length ld = φ·fyk / (4·BondFactor)
	BondFactor = 1.4

	// Coefficient of the concrete shear resistance V_Rd,c
	ShearCoefficient = 0.12

	// Span/depth limits used in place of a deflection calculation
	SpanDepthSimplySupported = 20.0
	SpanDepthCantilever      = 7.0
)

// Permitted selections
var (
	BarDiameters    = []float64{8, 10, 12, 14, 16, 20, 25, 32} // mm
	ConcreteClasses = []float64{20, 25, 30, 35, 40}            // fck, MPa
	SteelGrades     = []float64{500, 550}                      // fyk, MPa
)

// DesignYield returns f_yd = f_yk / γs in MPa
func DesignYield(fyk float64) float64 {
	return fyk / GammaS
}

// DesignCompressive returns f_cd = f_ck / γc in MPa
func DesignCompressive(fck float64) float64 {
	return fck / GammaC
}

// BarArea returns the cross-sectional area of one bar of diameter phi.
// The result is in the square of the unit of phi.
func BarArea(phi float64) float64 {
	return math.Pi * phi * phi / 4
}

// DevelopmentLength is the simplified anchorage length in mm
// for a bar of diameter phi (mm) and steel strength fyk (MPa).
func DevelopmentLength(phi, fyk float64) float64 {
	return phi * fyk / (4 * BondFactor)
}

// ShearResistance approximates V_Rd,c in kN.
// b and d are in mm; the steel ratio term takes the provided area in m².
func ShearResistance(asProvM2, b, d float64) float64 {
	ratio := 100 * asProvM2 / (b * d)
	return ShearCoefficient * 1000 * math.Cbrt(ratio) * b * d / 1000
}

// IsPermitted reports whether v is one of the allowed values
func IsPermitted(v float64, allowed []float64) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
