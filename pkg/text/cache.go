package text

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/legenda-dev/legenda/pkg/errors"
	"github.com/legenda-dev/legenda/pkg/geom"
)

// measureDPI resolves one typographic point to one pixel so sizes agree
// between the SVG and raster painters.
const measureDPI = 72

// FontCache discovers and parses font files from a set of directories.
// Directories are scanned once, on first use. The zero set of directories
// means the platform's system font locations.
type FontCache struct {
	mu      sync.Mutex
	dirs    []string
	paths   map[string]string
	parsed  map[string]*sfnt.Font
	scanned bool
}

// NewFontCache returns a cache over the given directories, or the system
// font directories when none are given.
func NewFontCache(dirs ...string) *FontCache {
	if len(dirs) == 0 {
		dirs = systemFontDirs()
	}
	return &FontCache{
		dirs:   dirs,
		paths:  make(map[string]string),
		parsed: make(map[string]*sfnt.Font),
	}
}

func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	case "windows":
		return []string{`C:\Windows\Fonts`}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"),
		}
	}
}

// normalizeFontKey lowercases a family or file name and strips separators
// so "DejaVu Sans" matches "DejaVuSans.ttf".
func normalizeFontKey(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// styleCandidates lists lookup keys for a family and style, most specific
// first. Style variants fall back to the plain family file when no
// dedicated variant exists.
func styleCandidates(family string, bold, italic bool) []string {
	base := normalizeFontKey(family)
	switch {
	case bold && italic:
		return []string{base + "bolditalic", base + "boldoblique", base + "bold", base}
	case bold:
		return []string{base + "bold", base + "bd", base}
	case italic:
		return []string{base + "italic", base + "oblique", base}
	default:
		return []string{base, base + "regular"}
	}
}

// Load returns the parsed font for the family and style, scanning the
// configured directories on first use.
func (c *FontCache) Load(family string, bold, italic bool) (*sfnt.Font, error) {
	base := normalizeFontKey(family)
	if base == "" {
		return nil, errors.New(errors.ErrCodeFontNotFound, "empty font family")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.scanned {
		c.scanLocked()
	}

	for _, key := range styleCandidates(family, bold, italic) {
		if f, err := c.parseLocked(key); err == nil {
			return f, nil
		}
	}

	// Last resort: any discovered file whose key starts with the family
	// name, in sorted order so the pick is stable.
	var prefixed []string
	for key := range c.paths {
		if strings.HasPrefix(key, base) {
			prefixed = append(prefixed, key)
		}
	}
	sort.Strings(prefixed)
	for _, key := range prefixed {
		if f, err := c.parseLocked(key); err == nil {
			return f, nil
		}
	}

	return nil, errors.New(errors.ErrCodeFontNotFound,
		"no font file for family %q (bold=%v italic=%v)", family, bold, italic)
}

func (c *FontCache) parseLocked(key string) (*sfnt.Font, error) {
	if f, ok := c.parsed[key]; ok {
		return f, nil
	}
	path, ok := c.paths[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeFontNotFound, "no file for key %q", key)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "reading %s", path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parsing %s", path)
	}
	c.parsed[key] = f
	return f, nil
}

func (c *FontCache) scanLocked() {
	c.scanned = true
	for _, dir := range c.dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".ttf" && ext != ".otf" {
				return nil
			}
			key := normalizeFontKey(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
			if _, taken := c.paths[key]; !taken {
				c.paths[key] = path
			}
			return nil
		})
	}
}

// FaceMeasurer measures text with OpenType faces loaded from a FontCache.
// Two face sets are kept: unhinted faces for measurement, so advances stay
// fractional and platform-independent, and hinted faces for raster
// rendering. Families without a discoverable font file measure against the
// built-in fallback face.
type FaceMeasurer struct {
	mu    sync.Mutex
	cache *FontCache
	faces map[faceKey]font.Face

	// DefaultFamily is used when a Font has no family set.
	DefaultFamily string
}

type faceKey struct {
	family string
	size   float64
	bold   bool
	italic bool
	render bool
}

// NewFaceMeasurer returns a measurer over the given cache, or the system
// font cache when nil.
func NewFaceMeasurer(cache *FontCache) *FaceMeasurer {
	if cache == nil {
		cache = NewFontCache()
	}
	return &FaceMeasurer{
		cache:         cache,
		faces:         make(map[faceKey]font.Face),
		DefaultFamily: "DejaVu Sans",
	}
}

// Measure implements Measurer.
func (fm *FaceMeasurer) Measure(s string, f Font) geom.Size {
	face := fm.face(f, false)
	adv := font.MeasureString(face, s)
	met := face.Metrics()
	return geom.Size{
		W: float64(adv.Ceil()),
		H: float64((met.Ascent + met.Descent).Ceil()),
	}
}

// RenderFace returns a hinted face for raster painting.
func (fm *FaceMeasurer) RenderFace(f Font) font.Face {
	return fm.face(f, true)
}

func (fm *FaceMeasurer) face(f Font, render bool) font.Face {
	family := f.Family
	if family == "" {
		family = fm.DefaultFamily
	}
	key := faceKey{family: family, size: f.SizePt, bold: f.Bold, italic: f.Italic, render: render}

	fm.mu.Lock()
	defer fm.mu.Unlock()
	if face, ok := fm.faces[key]; ok {
		return face
	}
	face := fm.buildFace(key)
	fm.faces[key] = face
	return face
}

func (fm *FaceMeasurer) buildFace(key faceKey) font.Face {
	fnt, err := fm.cache.Load(key.family, key.bold, key.italic)
	if err != nil {
		return basicfont.Face7x13
	}
	hinting := font.HintingNone
	if key.render {
		hinting = font.HintingFull
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     measureDPI,
		Hinting: hinting,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
