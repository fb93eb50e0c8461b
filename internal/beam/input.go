package beam

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/eurobeam/internal/eurocode"
)

// Support is the boundary condition of the beam
type Support int

const (
	SimplySupported Support = iota
	Cantilever
)

// String returns the text form used in flags, config files and JSON
func (s Support) String() string {
	switch s {
	case SimplySupported:
		return "simply-supported"
	case Cantilever:
		return "cantilever"
	default:
		return "Support(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseSupport accepts the text forms of a support condition
func ParseSupport(s string) (Support, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simply-supported", "simply supported", "simply_supported", "simple", "ss":
		return SimplySupported, nil
	case "cantilever", "cl":
		return Cantilever, nil
	}
	return 0, &ValidationError{Field: "support", Raw: s, Constraint: "must be simply-supported or cantilever"}
}

// MarshalText implements encoding.TextMarshaler
func (s Support) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Support) UnmarshalText(b []byte) error {
	v, err := ParseSupport(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// LoadKind selects which load component a single-load input carries
type LoadKind int

const (
	UniformLoad LoadKind = iota
	PointLoad
	CombinedLoad
)

func (k LoadKind) String() string {
	switch k {
	case UniformLoad:
		return "uniform"
	case PointLoad:
		return "point"
	case CombinedLoad:
		return "combined"
	default:
		return "LoadKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseLoadKind parses "uniform", "point" or "combined"
func ParseLoadKind(s string) (LoadKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform", "udl", "distributed":
		return UniformLoad, nil
	case "point", "concentrated":
		return PointLoad, nil
	case "combined", "both":
		return CombinedLoad, nil
	}
	return 0, &ValidationError{Field: "load_type", Raw: s, Constraint: "must be uniform, point or combined"}
}

// BeamInput holds one parameter set for a single beam.
// Values are passed around by copy and never modified by the engine.
type BeamInput struct {
	SpanM          float64 `json:"span_m"`
	Support        Support `json:"support"`
	UniformLoadKNm float64 `json:"uniform_load_knm"`
	PointLoadKN    float64 `json:"point_load_kn"`

	// Section (mm)
	WidthMM       float64 `json:"width_mm"`
	HeightMM      float64 `json:"height_mm"`
	CoverMM       float64 `json:"cover_mm"`
	BarDiameterMM float64 `json:"bar_diameter_mm"`

	// Materials (MPa)
	ConcreteFckMPa float64 `json:"concrete_fck_mpa"`
	SteelFykMPa    float64 `json:"steel_fyk_mpa"`
}

// DefaultInput returns the starting values of the input form
func DefaultInput() BeamInput {
	return BeamInput{
		SpanM:          5,
		Support:        SimplySupported,
		UniformLoadKNm: 10,
		PointLoadKN:    0,
		WidthMM:        300,
		HeightMM:       500,
		CoverMM:        25,
		BarDiameterMM:  16,
		ConcreteFckMPa: 30,
		SteelFykMPa:    500,
	}
}

// WithLoad returns a copy carrying a single load component of the given kind.
// CombinedLoad applies the magnitude to both components.
func (in BeamInput) WithLoad(kind LoadKind, magnitude float64) BeamInput {
	switch kind {
	case UniformLoad:
		in.UniformLoadKNm, in.PointLoadKN = magnitude, 0
	case PointLoad:
		in.UniformLoadKNm, in.PointLoadKN = 0, magnitude
	case CombinedLoad:
		in.UniformLoadKNm, in.PointLoadKN = magnitude, magnitude
	}
	return in
}

// EffectiveDepthMM returns d = h - cover - φ/2
func (in BeamInput) EffectiveDepthMM() float64 {
	return in.HeightMM - in.CoverMM - in.BarDiameterMM/2
}

// Range is an inclusive numeric interval
type Range struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

// Contains reports whether v lies in [Min, Max]
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Limits are the practical input ranges enforced at the input boundary
type Limits struct {
	Span        Range `toml:"span_m" json:"span_m"`
	UniformLoad Range `toml:"uniform_load_knm" json:"uniform_load_knm"`
	PointLoad   Range `toml:"point_load_kn" json:"point_load_kn"`
	Width       Range `toml:"width_mm" json:"width_mm"`
	Height      Range `toml:"height_mm" json:"height_mm"`
	Cover       Range `toml:"cover_mm" json:"cover_mm"`
}

// DefaultLimits returns the ranges offered by the input form
func DefaultLimits() Limits {
	return Limits{
		Span:        Range{Min: 1, Max: 20},
		UniformLoad: Range{Min: 0, Max: 100},
		PointLoad:   Range{Min: 0, Max: 100},
		Width:       Range{Min: 100, Max: 1000},
		Height:      Range{Min: 100, Max: 1500},
		Cover:       Range{Min: 10, Max: 100},
	}
}

// ErrInvalidInput is matched by every validation failure
var ErrInvalidInput = errors.New("invalid input")

// ValidationError describes one violated input constraint
type ValidationError struct {
	Field      string
	Value      float64
	Raw        string // set instead of Value for text inputs
	Constraint string
}

func (e *ValidationError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("invalid input: %s=%q: %s", e.Field, e.Raw, e.Constraint)
	}
	return fmt.Sprintf("invalid input: %s=%s: %s", e.Field, formatNumber(e.Value), e.Constraint)
}

// Is lets errors.Is(err, ErrInvalidInput) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Validate checks the input against DefaultLimits
func (in BeamInput) Validate() error {
	return in.ValidateWithin(DefaultLimits())
}

// ValidateWithin checks every field and reports all violations.
// Values are never clamped.
func (in BeamInput) ValidateWithin(lim Limits) error {
	var errs []error
	add := func(field string, v float64, constraint string) {
		errs = append(errs, &ValidationError{Field: field, Value: v, Constraint: constraint})
	}
	inRange := func(field string, v float64, r Range, positive bool) {
		switch {
		case positive && v <= 0:
			add(field, v, "must be greater than 0")
		case !positive && v < 0:
			add(field, v, "must not be negative")
		case !r.Contains(v):
			add(field, v, fmt.Sprintf("must be between %s and %s", formatNumber(r.Min), formatNumber(r.Max)))
		}
	}

	inRange("span_m", in.SpanM, lim.Span, true)
	if in.Support != SimplySupported && in.Support != Cantilever {
		add("support", float64(in.Support), "must be simply-supported or cantilever")
	}
	inRange("uniform_load_knm", in.UniformLoadKNm, lim.UniformLoad, false)
	inRange("point_load_kn", in.PointLoadKN, lim.PointLoad, false)
	inRange("width_mm", in.WidthMM, lim.Width, true)
	inRange("height_mm", in.HeightMM, lim.Height, true)
	inRange("cover_mm", in.CoverMM, lim.Cover, false)

	if !eurocode.IsPermitted(in.BarDiameterMM, eurocode.BarDiameters) {
		add("bar_diameter_mm", in.BarDiameterMM, "must be one of "+joinNumbers(eurocode.BarDiameters))
	}
	if !eurocode.IsPermitted(in.ConcreteFckMPa, eurocode.ConcreteClasses) {
		add("concrete_fck_mpa", in.ConcreteFckMPa, "must be one of "+joinNumbers(eurocode.ConcreteClasses))
	}
	if !eurocode.IsPermitted(in.SteelFykMPa, eurocode.SteelGrades) {
		add("steel_fyk_mpa", in.SteelFykMPa, "must be one of "+joinNumbers(eurocode.SteelGrades))
	}
	if d := in.EffectiveDepthMM(); d <= 0 {
		add("effective_depth_mm", d, "height must exceed cover + bar diameter / 2")
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinNumbers(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ", ")
}
