package adapter

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	m "github.com/mouse-blink/codeaudit/internal/model"
	"github.com/mouse-blink/codeaudit/internal/scanner"
)

// DefaultScanCacheSize bounds the number of scan results kept in memory.
const DefaultScanCacheSize = 2048

type scanKey struct {
	hash    string
	kind    m.FileKind
	variant string
}

// ScanCache memoises scanner results by content hash so several analyzers
// (or repeated watch runs) scan an unchanged file only once. Safe for
// concurrent use.
type ScanCache struct {
	entries *lru.Cache[scanKey, *scanner.Result]
}

// NewScanCache creates a cache holding up to size results.
func NewScanCache(size int) (*ScanCache, error) {
	if size <= 0 {
		size = DefaultScanCacheSize
	}

	entries, err := lru.New[scanKey, *scanner.Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan cache: %w", err)
	}

	return &ScanCache{entries: entries}, nil
}

// Scan returns the cached result for content or scans and stores it. variant
// distinguishes scans of the same content made with different options.
func (c *ScanCache) Scan(content []byte, kind m.FileKind, variant string, opts ...scanner.Option) *scanner.Result {
	key := scanKey{hash: HashBytes(content), kind: kind, variant: variant}

	if r, ok := c.entries.Get(key); ok {
		return r
	}

	r := scanner.Scan(string(content), kind, opts...)
	c.entries.Add(key, r)

	return r
}

// Len returns the number of cached results.
func (c *ScanCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached result.
func (c *ScanCache) Purge() {
	c.entries.Purge()
}
