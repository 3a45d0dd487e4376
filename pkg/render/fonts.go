package render

import (
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const fontDPI = 72

var fontExts = []string{".ttf", ".otf", ".woff", ".woff2"}

// NewLibrary returns a font library backed by a fonts directory. The fs may
// be nil, in which case only the built-in fonts are available.
func NewLibrary(fs afero.Fs, logger *zap.Logger) (*Library, error) {
	def, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}

	return &Library{
		fs:     fs,
		logger: logger,
		def:    def,
		parsed: make(map[string]*opentype.Font),
	}, nil
}

// Library resolves named fonts from a directory and owns the built-in
// default. Named fonts that fail to resolve are never an error: resolution
// walks an ordered source list and the built-in default always answers.
type Library struct {
	fs     afero.Fs
	logger *zap.Logger
	def    *opentype.Font

	mu     sync.Mutex
	parsed map[string]*opentype.Font
}

// source yields a face at the requested size, or reports absent.
type source func(size int) (font.Face, bool)

func (l *Library) sources(name string) []source {
	srcs := make([]source, 0, 2)
	if name != "" && !strings.EqualFold(name, "Default") {
		srcs = append(srcs, l.named(name))
	}
	return append(srcs, l.builtin)
}

// Face returns the named font at the given size, trying each resolution
// source in order and falling back to Fallback when all are absent.
func (l *Library) Face(name string, size int) font.Face {
	if face, ok := l.face(name, size); ok {
		return face
	}
	return Fallback()
}

func (l *Library) face(name string, size int) (font.Face, bool) {
	for _, src := range l.sources(name) {
		if face, ok := src(size); ok {
			return face, true
		}
	}
	return nil, false
}

func (l *Library) builtin(size int) (font.Face, bool) {
	face, err := opentype.NewFace(l.def, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, false
	}
	return face, true
}

func (l *Library) named(name string) source {
	return func(size int) (font.Face, bool) {
		f := l.lookup(name)
		if f == nil {
			return nil, false
		}

		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     fontDPI,
			Hinting: font.HintingNone,
		})
		if err != nil {
			l.logger.With(zap.String("font", name), zap.Int("size", size), zap.Error(err)).
				Warn("font face failed, using default")
			return nil, false
		}
		return face, true
	}
}

// lookup parses a named font at most once; a failed parse is remembered so
// the auto-fit search does not re-read the file for every candidate size.
func (l *Library) lookup(name string) *opentype.Font {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, hit := l.parsed[name]; hit {
		return f
	}

	f := l.load(name)
	l.parsed[name] = f
	return f
}

func (l *Library) load(name string) *opentype.Font {
	file := fontFilename(name)

	if l.fs == nil {
		l.logger.With(zap.String("font", file)).Warn("no fonts dir, using default")
		return nil
	}

	bs, err := afero.ReadFile(l.fs, file)
	if err != nil {
		l.logger.With(zap.String("font", file), zap.Error(err)).Warn("font not found, using default")
		return nil
	}

	f, err := opentype.Parse(bs)
	if err != nil {
		l.logger.With(zap.String("font", file), zap.Error(err)).Warn("font unreadable, using default")
		return nil
	}

	return f
}

// fontFilename defaults the extension to .ttf when the name carries none of
// the recognized font extensions.
func fontFilename(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range fontExts {
		if strings.HasSuffix(lower, ext) {
			return name
		}
	}
	return name + ".ttf"
}

// Fallback is the last-resort face at its native size, used when no sized
// font can be resolved at all.
func Fallback() font.Face {
	return basicfont.Face7x13
}
