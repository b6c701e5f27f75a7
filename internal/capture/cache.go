package capture

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"sync"

	"github.com/disintegration/imaging"
)

// Cache provides thread-safe caching of decoded capture files so repeated
// recognition requests for the same path skip disk I/O and decoding.
//
// Images are keyed by the exact path string. Rotation is not part of the key:
// the cached pixels are shared and each Load wraps them in a new Frame.
//
// Cached images remain in memory until removed via Evict or Clear.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
	}
}

// Load returns a Frame for the image at path, decoding it on first use.
//
// EXIF orientation is applied on decode, so rotation should describe any
// turn still needed after that.
func (c *Cache) Load(path string, rotation int) (Frame, error) {
	c.mu.RLock()
	img, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return NewFrame(img, rotation)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Frame{}, fmt.Errorf("failed to open image: %w", err)
	}

	// Another Load may have decoded the same path meanwhile; keep the first
	c.mu.Lock()
	if cached, ok := c.images[path]; ok {
		img = cached
	} else {
		c.images[path] = img
	}
	c.mu.Unlock()

	return NewFrame(img, rotation)
}

// Evict removes the image cached under path. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes all cached images.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Len reports the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}
