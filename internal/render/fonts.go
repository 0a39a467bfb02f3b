package render

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const (
	// fontDPI makes one point equal one canvas pixel.
	fontDPI = 72

	// MaxFacePx is the largest face size handed out. Glyph masks are
	// allocated at face size.
	MaxFacePx = 1024

	maxCachedFaces = 16
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Fonts hands out faces of one typeface at arbitrary pixel sizes.
// Faces are cached per size. A Fonts value and its faces must not be used
// by two drawers at the same time.
type Fonts struct {
	mu     sync.Mutex
	data   []byte
	otFont *opentype.Font
	ttFont *truetype.Font
	ttDone bool
	faces  map[int]font.Face
	Logger logger
}

// LoadFonts parses data with the OpenType parser. The freetype TrueType
// parser is only tried when OpenType cannot use the data. When neither
// accepts it, every face is basicfont.
func LoadFonts(data []byte, l logger) *Fonts {
	f := &Fonts{data: data, faces: map[int]font.Face{}, Logger: l}
	if ot, err := opentype.Parse(data); err != nil {
		f.errorf("font parse failed: %v", err)
	} else {
		f.otFont = ot
		return f
	}
	if f.fallbackFont() == nil {
		f.errorf("no usable font, using basicfont")
	}
	return f
}

// Face returns a face for the given pixel size, rounded to a whole pixel
// and capped at MaxFacePx.
func (f *Fonts) Face(size float64) font.Face {
	px := facePx(size)

	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[px]; ok {
		return face
	}
	if len(f.faces) >= maxCachedFaces {
		f.faces = map[int]font.Face{}
	}
	face := f.newFace(px)
	f.faces[px] = face
	return face
}

func facePx(size float64) int {
	if math.IsNaN(size) || size < 1 {
		return 1
	}
	if size > MaxFacePx {
		return MaxFacePx
	}
	return int(math.Round(size))
}

func (f *Fonts) newFace(px int) font.Face {
	if f.otFont != nil {
		face, err := opentype.NewFace(f.otFont, &opentype.FaceOptions{Size: float64(px), DPI: fontDPI, Hinting: font.HintingFull})
		if err == nil {
			return face
		}
		f.errorf("font face create failed at %dpx: %v", px, err)
	}
	if tt := f.fallbackFont(); tt != nil {
		return truetype.NewFace(tt, &truetype.Options{Size: float64(px), DPI: fontDPI, Hinting: font.HintingFull})
	}
	return basicfont.Face7x13
}

// fallbackFont parses the font data with freetype once, on first use.
func (f *Fonts) fallbackFont() *truetype.Font {
	if f.ttDone {
		return f.ttFont
	}
	f.ttDone = true
	tt, err := truetype.Parse(f.data)
	if err != nil {
		f.errorf("truetype parse failed: %v", err)
		return nil
	}
	f.ttFont = tt
	return tt
}

func (f *Fonts) errorf(format string, args ...interface{}) {
	if f.Logger != nil {
		f.Logger.Errorf("fonts", format, args...)
	}
}
