// Package cache provides a byte-size-bounded LRU cache for rendered
// note previews.
package cache

import (
	"container/list"
	"errors"
	"fmt"
)

var ErrInvalidSize = errors.New("cache size must be positive")

type Cache struct {
	maxBytes  int64
	usedBytes int64
	evictList *list.List
	items     map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

// New creates a cache bounded to maxSizeMB megabytes of stored values.
func New(maxSizeMB int64) (*Cache, error) {
	if maxSizeMB <= 0 {
		return nil, ErrInvalidSize
	}
	return &Cache{
		maxBytes:  maxSizeMB * 1024 * 1024,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}, nil
}

// Get returns the cached value and whether it was present.
func (c *Cache) Get(key string) (string, bool, error) {
	ele, hit := c.items[key]
	if !hit {
		return "", false, nil
	}
	c.evictList.MoveToFront(ele)
	return ele.Value.(*entry).value, true, nil
}

// Put stores a value, evicting least-recently-used entries when the
// byte budget is exceeded. Values larger than the whole budget are
// rejected.
func (c *Cache) Put(key, value string) error {
	size := int64(len(value))
	if size > c.maxBytes {
		return fmt.Errorf("value of %s exceeds cache capacity %s", ReadableSize(size), ReadableSize(c.maxBytes))
	}

	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		e := ele.Value.(*entry)
		c.usedBytes += size - int64(len(e.value))
		e.value = value
	} else {
		ele := c.evictList.PushFront(&entry{key: key, value: value})
		c.items[key] = ele
		c.usedBytes += size
	}

	for c.usedBytes > c.maxBytes {
		c.removeOldest()
	}
	return nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return c.evictList.Len()
}

func (c *Cache) removeOldest() {
	ele := c.evictList.Back()
	if ele == nil {
		return
	}
	c.evictList.Remove(ele)
	e := ele.Value.(*entry)
	delete(c.items, e.key)
	c.usedBytes -= int64(len(e.value))
}

// ReadableSize renders a byte count for status messages.
func ReadableSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
