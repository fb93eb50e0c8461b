package beam_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/eurobeam/internal/beam"
)

func TestValidate_DefaultInputIsValid(t *testing.T) {
	assert.NoError(t, beam.DefaultInput().Validate())
}

func TestValidate_RejectsOutOfDomain(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*beam.BeamInput)
		field  string
	}{
		{"zero span", func(in *beam.BeamInput) { in.SpanM = 0 }, "span_m"},
		{"span too long", func(in *beam.BeamInput) { in.SpanM = 25 }, "span_m"},
		{"negative uniform load", func(in *beam.BeamInput) { in.UniformLoadKNm = -1 }, "uniform_load_knm"},
		{"point load too large", func(in *beam.BeamInput) { in.PointLoadKN = 150 }, "point_load_kn"},
		{"narrow section", func(in *beam.BeamInput) { in.WidthMM = 50 }, "width_mm"},
		{"zero height", func(in *beam.BeamInput) { in.HeightMM = 0 }, "height_mm"},
		{"negative cover", func(in *beam.BeamInput) { in.CoverMM = -5 }, "cover_mm"},
		{"unsupported bar", func(in *beam.BeamInput) { in.BarDiameterMM = 18 }, "bar_diameter_mm"},
		{"unsupported concrete", func(in *beam.BeamInput) { in.ConcreteFckMPa = 45 }, "concrete_fck_mpa"},
		{"unsupported steel", func(in *beam.BeamInput) { in.SteelFykMPa = 400 }, "steel_fyk_mpa"},
		{"unknown support", func(in *beam.BeamInput) { in.Support = beam.Support(7) }, "support"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := beam.DefaultInput()
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, beam.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)

			var verr *beam.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidate_EffectiveDepthMustBePositive(t *testing.T) {
	in := beam.DefaultInput()
	lim := beam.DefaultLimits()
	lim.Cover.Max = 1000
	in.HeightMM = 100
	in.CoverMM = 95
	in.BarDiameterMM = 12

	err := in.ValidateWithin(lim)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "effective_depth_mm")
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	in := beam.DefaultInput()
	in.SpanM = -1
	in.BarDiameterMM = 11
	in.SteelFykMPa = 420

	err := in.Validate()
	require.Error(t, err)
	for _, field := range []string{"span_m", "bar_diameter_mm", "steel_fyk_mpa"} {
		assert.Contains(t, err.Error(), field)
	}
	assert.Contains(t, err.Error(), "must be one of 8, 10, 12, 14, 16, 20, 25, 32")
}

func TestValidate_DoesNotClamp(t *testing.T) {
	in := beam.DefaultInput()
	in.SpanM = 30
	before := in

	require.Error(t, in.Validate())
	assert.Equal(t, before, in)
}

func TestValidateWithin_CustomLimits(t *testing.T) {
	in := beam.DefaultInput()
	in.SpanM = 25

	lim := beam.DefaultLimits()
	lim.Span.Max = 30
	assert.NoError(t, in.ValidateWithin(lim))
}

func TestWithLoad(t *testing.T) {
	in := beam.DefaultInput()

	u := in.WithLoad(beam.UniformLoad, 12)
	assert.Equal(t, 12.0, u.UniformLoadKNm)
	assert.Zero(t, u.PointLoadKN)

	p := in.WithLoad(beam.PointLoad, 40)
	assert.Zero(t, p.UniformLoadKNm)
	assert.Equal(t, 40.0, p.PointLoadKN)

	c := in.WithLoad(beam.CombinedLoad, 7)
	assert.Equal(t, 7.0, c.UniformLoadKNm)
	assert.Equal(t, 7.0, c.PointLoadKN)

	// the receiver is a copy
	assert.Equal(t, beam.DefaultInput(), in)
}

func TestParseSupport(t *testing.T) {
	for text, want := range map[string]beam.Support{
		"simply-supported": beam.SimplySupported,
		"Simply Supported": beam.SimplySupported,
		"ss":               beam.SimplySupported,
		" cantilever ":     beam.Cantilever,
		"CL":               beam.Cantilever,
	} {
		got, err := beam.ParseSupport(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	_, err := beam.ParseSupport("fixed")
	assert.ErrorIs(t, err, beam.ErrInvalidInput)
}

func TestParseLoadKind(t *testing.T) {
	k, err := beam.ParseLoadKind("Point")
	require.NoError(t, err)
	assert.Equal(t, beam.PointLoad, k)

	_, err = beam.ParseLoadKind("wind")
	assert.ErrorIs(t, err, beam.ErrInvalidInput)
}

func TestBeamInputJSON(t *testing.T) {
	body := `{"span_m":3,"support":"cantilever","uniform_load_knm":10,"point_load_kn":0,
		"width_mm":300,"height_mm":500,"cover_mm":25,"bar_diameter_mm":16,
		"concrete_fck_mpa":30,"steel_fyk_mpa":500}`

	var in beam.BeamInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	assert.Equal(t, beam.Cantilever, in.Support)
	assert.Equal(t, 3.0, in.SpanM)

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"support":"cantilever"`)
}
