package trackplot

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackgeo/internal/testutil"
	"github.com/banshee-data/trackgeo/internal/track"
)

func stations(n int) []track.Station {
	c := testutil.Circle(95, n, 5)
	out := make([]track.Station, n)
	for i, p := range c {
		out[i] = track.Station{Position: p, Distance: float64(i), BankAngle: 0.01 * float64(i)}
	}
	return out
}

func TestWriteOverview(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOverview(&buf, testutil.Circle(90, 40, 0), testutil.Circle(100, 40, 10), stations(40))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "expected PNG signature")
}

func TestOverview_SkipsEmptySeries(t *testing.T) {
	p, err := Overview(testutil.Circle(90, 10, 0), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Track boundaries and centerline", p.Title.Text)
}

func TestWriteBankProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBankProfile(&buf, stations(25)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "expected PNG signature")

	err := WriteBankProfile(&bytes.Buffer{}, nil)
	assert.True(t, errors.Is(err, track.ErrEmptyBoundary))
}

func TestRenderBankMap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBankMap(&buf, stations(12), "Test Oval"))
	html := buf.String()
	assert.Contains(t, html, "Test Oval")
	assert.Contains(t, html, "#fde725")
	assert.True(t, strings.Contains(html, "bank_angle"))

	err := RenderBankMap(&buf, nil, "empty")
	assert.True(t, errors.Is(err, track.ErrEmptyBoundary))
}

func TestRenderBankMap_FlatBank(t *testing.T) {
	st := stations(5)
	for i := range st {
		st[i].BankAngle = 0
	}
	var buf bytes.Buffer
	require.NoError(t, RenderBankMap(&buf, st, "flat"))
}

func TestGenerateColors(t *testing.T) {
	assert.Nil(t, generateColors(0))

	colors := generateColors(3)
	require.Len(t, colors, 3)
	seen := map[color.RGBA]bool{}
	for _, c := range colors {
		rgba := c.(color.RGBA)
		assert.Equal(t, uint8(255), rgba.A)
		seen[rgba] = true
	}
	assert.Len(t, seen, 3)
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		r, g, b uint8
	}{
		{"grey", 0, 0, 0.5, 127, 127, 127},
		{"red", 0, 1, 0.5, 255, 0, 0},
		{"green", 1.0 / 3.0, 1, 0.5, 0, 255, 0},
		{"blue", 2.0 / 3.0, 1, 0.5, 0, 0, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := hslToRGB(tt.h, tt.s, tt.l)
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}
