package slideshow

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif"}

func newFs(path string) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, path); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.New("dir not exists")
	}
	return afero.NewBasePathFs(fs, path), nil
}

// NewDir lists and reads image files from a local directory.
func NewDir(path string) (*Dir, error) {
	fs, err := newFs(path)
	if err != nil {
		return nil, fmt.Errorf("open source dir failed: %w", err)
	}
	return &Dir{fs: fs}, nil
}

type Dir struct {
	fs afero.Fs
}

func (d *Dir) List() ([]Item, error) {
	infos, err := afero.ReadDir(d.fs, ".")
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(info.Name()))
		if !lo.Contains(imageExts, ext) {
			continue
		}
		items = append(items, Item{Name: info.Name(), Path: info.Name()})
	}

	return items, nil
}

func (d *Dir) Read(item Item) ([]byte, error) {
	return afero.ReadFile(d.fs, item.Path)
}

// NewDownloader fetches remote images, optionally persisting them into a
// save directory.
func NewDownloader(dir string, logger *zap.Logger) (*Downloader, error) {
	d := &Downloader{
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}

	if dir == "" {
		return d, nil
	}

	if fs, err := newFs(dir); err != nil {
		return nil, fmt.Errorf("create downloader failed: %w", err)
	} else {
		d.fs = fs
	}

	return d, nil
}

type Downloader struct {
	fs  afero.Fs
	cli *resty.Client
	log *zap.Logger
}

// Filename derives a local name from the URL path, falling back to a
// generated id when the path has no usable basename.
func Filename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return xid.New().String() + ".png"
	}

	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return xid.New().String() + ".png"
	}
	return base
}

func (d *Downloader) Get(rawURL string) ([]byte, error) {
	if d.fs != nil {
		file := Filename(rawURL)
		if exists, err := afero.Exists(d.fs, file); err != nil {
			return nil, err
		} else if exists {
			return afero.ReadFile(d.fs, file)
		}
	}

	resp, err := d.cli.R().Get(rawURL)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", rawURL))

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (d *Downloader) Save(rawURL string, bs []byte) error {
	if d.fs == nil {
		return errors.New("no save dir configured")
	}

	file := Filename(rawURL)
	if exists, err := afero.Exists(d.fs, file); err != nil {
		return err
	} else if exists {
		return errors.New("already saved")
	}

	if len(bs) == 0 {
		var err error
		bs, err = d.Get(rawURL)
		if err != nil {
			return fmt.Errorf("re-download failed: %w", err)
		}
	}

	if err := afero.WriteFile(d.fs, file, bs, 0644); err != nil {
		return err
	}

	d.log.With(zap.String("url", rawURL), zap.String("file", file)).Debug("image saved")
	return nil
}
