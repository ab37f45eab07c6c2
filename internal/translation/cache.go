package translation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache stores translations in memory for one-shot batch operations
type Cache struct {
	mu           sync.RWMutex
	translations map[Request]string
}

// NewCache creates a new translation cache
func NewCache() *Cache {
	return &Cache{
		translations: make(map[Request]string),
	}
}

// Add adds a translation to the cache
func (c *Cache) Add(req Request, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translations[req] = translated
}

// Get retrieves a translation from the cache
func (c *Cache) Get(req Request) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	translated, ok := c.translations[req]
	return translated, ok
}

// Len returns the number of cached translations
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.translations)
}

// GetAll returns a copy of all cached translations keyed by source text
func (c *Cache) GetAll() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]string, len(c.translations))
	for k, v := range c.translations {
		result[k.Text] = v
	}
	return result
}

// CachingTranslator answers repeated requests from a Cache
type CachingTranslator struct {
	next  Translator
	cache *Cache
}

// NewCachingTranslator wraps next with cache
func NewCachingTranslator(next Translator, cache *Cache) *CachingTranslator {
	return &CachingTranslator{next: next, cache: cache}
}

// Name returns the wrapped provider name
func (c *CachingTranslator) Name() string { return c.next.Name() }

// Translate returns a cached result or asks the wrapped translator. Only
// successful results are cached.
func (c *CachingTranslator) Translate(ctx context.Context, req Request) (string, error) {
	if out, ok := c.cache.Get(req); ok {
		return out, nil
	}
	out, err := c.next.Translate(ctx, req)
	if err != nil {
		return "", err
	}
	c.cache.Add(req, out)
	return out, nil
}

// OutputFileName is the file SaveTranslation writes
const OutputFileName = "translation.txt"

// SaveTranslation writes the translated text into dir/translation.txt
func SaveTranslation(dir, translated string) error {
	path := filepath.Join(dir, OutputFileName)
	if err := os.WriteFile(path, []byte(translated+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to save translation: %w", err)
	}
	return nil
}
