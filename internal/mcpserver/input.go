package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mikejonesguy/SlimSwagger/parser"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI or Swagger file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI or Swagger document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// specCacheStore caches parse results per session. Each source kind has its
// own size-bounded LRU with its own TTL. File entries are keyed by absolute
// path and modification time, so an edited file misses. Content entries are
// keyed by a SHA-256 hash, URL entries by the URL.
//
// Cached results are shared: callers that mutate a document must Copy it.
type specCacheStore struct {
	mu       sync.Mutex
	files    *expirable.LRU[string, *parser.ParseResult]
	urls     *expirable.LRU[string, *parser.ParseResult]
	contents *expirable.LRU[string, *parser.ParseResult]
}

var specCache = newSpecCache(cfg)

func newSpecCache(c *serverConfig) *specCacheStore {
	return &specCacheStore{
		files:    expirable.NewLRU[string, *parser.ParseResult](c.CacheMaxSize, nil, c.CacheFileTTL),
		urls:     expirable.NewLRU[string, *parser.ParseResult](c.CacheMaxSize, nil, c.CacheURLTTL),
		contents: expirable.NewLRU[string, *parser.ParseResult](c.CacheMaxSize, nil, c.CacheContentTTL),
	}
}

// lruFor returns the LRU that holds keys of the given kind.
func (c *specCacheStore) lruFor(key string) *expirable.LRU[string, *parser.ParseResult] {
	switch {
	case strings.HasPrefix(key, "file:"):
		return c.files
	case strings.HasPrefix(key, "url:"):
		return c.urls
	default:
		return c.contents
	}
}

// get returns a cached result or nil.
func (c *specCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result, ok := c.lruFor(key).Get(key); ok {
		return result
	}
	return nil
}

// put stores a result, evicting the least recently used entry of the same
// kind when that LRU is full.
func (c *specCacheStore) put(key string, result *parser.ParseResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lruFor(key).Add(key, result)
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files.Purge()
	c.urls.Purge()
	c.contents.Purge()
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files.Len() + c.urls.Len() + c.contents.Len()
}

// makeCacheKey creates a cache key for the given spec input, or "" when the
// input should not be cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// cache when it is enabled. The returned result may be shared.
func (s specInput) resolve(ctx context.Context) (*parser.ParseResult, error) {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SLIMSWAGGER_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []parser.Option{parser.WithContext(ctx), parser.WithLogger(serverLogger())}
	switch {
	case s.File != "":
		opts = append(opts, parser.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, parser.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(newSafeHTTPClient()))
		}
	case s.Content != "":
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("content"))
	}

	start := time.Now()
	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	serverLogger().Debug("parsed document", "source", result.SourcePath, "elapsed", time.Since(start))

	if key != "" {
		specCache.put(key, result)
	}
	return result, nil
}
