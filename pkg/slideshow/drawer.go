package slideshow

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"ipixel/pkg/device/ipixel"
	"ipixel/pkg/proto"
)

func NewDrawer(dev proto.Control, params *Params, dir *Dir, dl *Downloader, cache *Cache, history *History, logger *zap.Logger) *Drawer {
	return &Drawer{
		dev:     dev,
		params:  params,
		dir:     dir,
		dl:      dl,
		cache:   cache,
		history: history,
		logger:  logger,
	}
}

type Drawer struct {
	sync.Mutex
	dev     proto.Control
	params  *Params
	dir     *Dir
	dl      *Downloader
	cache   *Cache
	history *History
	logger  *zap.Logger
}

// Drawing advances the rotation by one frame: next item, fill to panel
// dimensions (cache permitting), push to the device.
func (d *Drawer) Drawing() error {
	d.Lock()
	defer d.Unlock()

	item, ok := d.params.Next()
	if !ok {
		return errors.New("no items to show")
	}

	filled, err := d.Filled(item)
	if err != nil {
		return fmt.Errorf("fill image failed: %w", err)
	}

	if err := d.dev.ShowImage(filled, ipixel.DefaultBuffer); err != nil {
		return fmt.Errorf("show image failed: %w", err)
	}

	d.logger.With(zap.String("item", item.Name)).Debug("drawn")
	return nil
}

// Filled resolves an item to a panel-sized image, going through the cache
// when possible.
func (d *Drawer) Filled(item Item) (image.Image, error) {
	w, h := d.params.Size()

	exists, cached, errL := d.cache.LoadImage(item.Name, w, h)
	if errL != nil {
		return nil, fmt.Errorf("load cache failed: %w", errL)
	}
	if exists {
		d.history.Add(item, cached, 0)
		return cached, nil
	}

	bs, errG := lo.Ternary(item.URL != "", d.byURL, d.byFile)(item)
	if errG != nil {
		return nil, fmt.Errorf("read image failed: %w", errG)
	}

	img, _, errD := image.Decode(bytes.NewBuffer(bs))
	if errD != nil {
		return nil, fmt.Errorf("image decode failed: %w", errD)
	}

	filled := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)

	if err := d.cache.SaveImage(item.Name, filled); err != nil {
		return filled, fmt.Errorf("save cache failed: %w", err)
	}

	d.history.Add(item, filled, len(bs))
	return filled, nil
}

func (d *Drawer) byFile(item Item) ([]byte, error) {
	if d.dir == nil {
		return nil, errors.New("no source dir configured")
	}
	return d.dir.Read(item)
}

func (d *Drawer) byURL(item Item) ([]byte, error) {
	if d.dl == nil {
		return nil, errors.New("no downloader configured")
	}
	return d.dl.Get(item.URL)
}
