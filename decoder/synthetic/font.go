package synthetic

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Parsed once; both values are read-only and safe for concurrent use.
var (
	parseOpenType = sync.OnceValues(func() (*opentype.Font, error) {
		return opentype.Parse(goregular.TTF)
	})
	parseShapingFont = sync.OnceValues(func() (*gtfont.Font, error) {
		face, err := gtfont.ParseTTF(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, err
		}
		return face.Font, nil
	})
)

// typesetter measures and rasterizes labels for one decoder. It is not
// safe for concurrent use.
type typesetter struct {
	shaper  shaping.HarfbuzzShaper
	shape   *gtfont.Face
	lang    language.Language
	hinting font.Hinting
	faces   map[fixed.Int26_6]font.Face
}

func newTypesetter(lang string, hinting font.Hinting) (*typesetter, error) {
	f, err := parseShapingFont()
	if err != nil {
		return nil, err
	}
	return &typesetter{
		shape:   gtfont.NewFace(f),
		lang:    language.NewLanguage(lang),
		hinting: hinting,
		faces:   make(map[fixed.Int26_6]font.Face),
	}, nil
}

// advance returns the shaped width of s at size pixels per em.
func (ts *typesetter) advance(s string, size fixed.Int26_6) fixed.Int26_6 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	out := ts.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      ts.shape,
		Size:      size,
		Script:    language.LookupScript(runes[0]),
		Language:  ts.lang,
	})
	return out.Advance
}

// face returns the rasterizing face for size, creating it on first use.
func (ts *typesetter) face(size fixed.Int26_6) (font.Face, error) {
	if f, ok := ts.faces[size]; ok {
		return f, nil
	}
	otf, err := parseOpenType()
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    float64(size) / 64,
		DPI:     72,
		Hinting: ts.hinting,
	})
	if err != nil {
		return nil, err
	}
	ts.faces[size] = f
	return f, nil
}

func (ts *typesetter) close() {
	for k, f := range ts.faces {
		_ = f.Close()
		delete(ts.faces, k)
	}
}
