package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/eurobeam/internal/beam"
	"github.com/alexiusacademia/eurobeam/internal/locale"
)

func sample(t *testing.T, in beam.BeamInput) (beam.AnalysisResult, beam.BarLayout) {
	t.Helper()
	require.NoError(t, in.Validate())
	res := beam.Analyze(in)
	return res, beam.Layout(in, res.BarCount)
}

func TestMomentASCII(t *testing.T) {
	res, _ := sample(t, beam.DefaultInput())
	en := locale.Lookup("en")

	out := MomentASCII(res, en, 40, 8)
	assert.Contains(t, out, en.MomentDiagram)
	assert.Contains(t, out, "31.2")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 8)
}

func TestMomentASCII_FlatProfile(t *testing.T) {
	in := beam.DefaultInput().WithLoad(beam.UniformLoad, 0)
	res, _ := sample(t, in)

	assert.NotEmpty(t, MomentASCII(res, locale.Lookup("en"), 0, 0))
	assert.Empty(t, MomentASCII(beam.AnalysisResult{}, locale.Lookup("en"), 0, 0))
}

func TestSectionASCII_DrawsEveryBar(t *testing.T) {
	in := beam.DefaultInput()
	layout := beam.Layout(in, 4)

	out := SectionASCII(in, layout, locale.Lookup("en"))
	assert.Equal(t, 4, strings.Count(out, "●"))
	assert.Contains(t, out, "4 Ø16")
	assert.Contains(t, out, "b = 300 mm")
	assert.Contains(t, out, "s = 83 mm (clear 67 mm)")
}

func TestSectionASCII_SingleBarInMiddle(t *testing.T) {
	in := beam.DefaultInput()
	out := SectionASCII(in, beam.Layout(in, 1), locale.Lookup("en"))

	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "●") {
			continue
		}
		inside := strings.SplitN(line, "│", 3)[1]
		left := strings.Index(inside, "●")
		assert.Equal(t, 15, runewidth.StringWidth(inside[:left]))
	}
}

func TestSummaryBox_Aligned(t *testing.T) {
	in := beam.DefaultInput()
	res := beam.Analyze(in)
	de := locale.Lookup("de")

	box := SummaryBox(de.Summary, SummaryLines(in, res, de))
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 3+7+1)

	width := runewidth.StringWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, runewidth.StringWidth(line), line)
	}
	assert.Contains(t, box, "Bemessungsübersicht")
}

func TestMomentPlot_RejectsMismatchedProfile(t *testing.T) {
	_, err := MomentPlot(beam.AnalysisResult{XCoordinates: []float64{0, 1}}, locale.Lookup("en"))
	assert.Error(t, err)
}

func TestExportAndRender(t *testing.T) {
	in := beam.DefaultInput()
	res, layout := sample(t, in)
	en := locale.Lookup("en")

	mp, err := MomentPlot(res, en)
	require.NoError(t, err)
	sp, err := SectionPlot(in, layout, en)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Export(mp, filepath.Join(dir, "moment.svg"), MomentWidth, MomentHeight))
	require.NoError(t, Export(sp, filepath.Join(dir, "nested", "section"), SectionWidth(in, SectionHeight), SectionHeight))

	_, err = os.Stat(filepath.Join(dir, "moment.svg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "nested", "section.png"))
	assert.NoError(t, err)

	png, err := RenderPNG(mp, MomentWidth, MomentHeight)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))
}

func TestSectionWidthKeepsProportion(t *testing.T) {
	in := beam.DefaultInput()
	in.WidthMM, in.HeightMM = 600, 600
	assert.Equal(t, SectionHeight, SectionWidth(in, SectionHeight))
}
