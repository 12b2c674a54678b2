// Package schemastore implements C5: fetching, caching, and resolving
// schemas, and matching source paths to the schema that governs them
// (spec.md §4.3). Grounded on original_source/crates/schema-store/src/
// store.rs's method surface (load_schemas, try_get_document_schema,
// try_get_source_schema, resolve), translated from tokio::sync::RwLock +
// AHashMap into sync.RWMutex + a plain map, and from "re-enter to ensure
// single cache population" into golang.org/x/sync/singleflight, which
// gives the same at-most-once-fetch contract directly (spec.md §4.3
// "Concurrent callers must observe at-most-once fetch per URI").
package schemastore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/tombi-toml/tombi/diagnostic"
	"github.com/tombi-toml/tombi/internal/globset"
	"github.com/tombi-toml/tombi/internal/tlog"
	"github.com/tombi-toml/tombi/schema"
)

// Options configures a Store's fetch behaviour (spec.md §4.3 "Options:
// offline, strict").
type Options struct {
	// Offline, when set, makes try_get_document_schema return (nil, nil)
	// for any http(s) URI instead of attempting a network fetch.
	Offline bool
	// Strict is consulted by the validator (C7), not the store itself;
	// carried here because spec.md §9 records it defaults to true.
	Strict bool
}

func DefaultOptions() Options { return Options{Strict: true} }

// DocumentSchema is a fully-decoded schema document: its root value
// schema, the URI it was fetched from, and the `$ref` definitions map
// reachable from it (spec.md §3 "resolved schema bundle").
type DocumentSchema struct {
	Root        *schema.Referable
	SchemaURI   string
	Definitions map[string]*schema.Referable
}

// CurrentSchema is the result of chasing a `$ref` to a concrete schema
// (spec.md glossary "CurrentSchema").
type CurrentSchema struct {
	Value       *schema.ValueSchema
	SchemaURI   string
	Definitions map[string]*schema.Referable
}

// Binding associates an `include` glob with a schema URI (spec.md §4.3
// "load_config_schemas").
type Binding struct {
	Glob *globset.Glob
	URI  string
}

type cacheEntry struct {
	doc *DocumentSchema
	err error
}

// Store is the shared, process-wide schema cache and binding table
// (spec.md §9 "Global process state": construct once, share an immutable
// handle, but tests may build a fresh Store per case).
type Store struct {
	opts Options
	log  *slog.Logger

	mu    sync.RWMutex
	cache map[string]*cacheEntry

	group singleflight.Group

	bindingsMu sync.RWMutex
	bindings   []Binding

	httpClient *http.Client
}

func New(opts Options, logger *slog.Logger) *Store {
	if logger == nil {
		logger = tlog.Discard()
	}
	return &Store{
		opts:       opts,
		log:        logger,
		cache:      map[string]*cacheEntry{},
		httpClient: http.DefaultClient,
	}
}

// LoadConfigSchemas registers include-pattern → URI bindings, resolving
// any filesystem-path URI against baseDir (spec.md §4.3
// "load_config_schemas").
func (s *Store) LoadConfigSchemas(bindings map[string]string, baseDir string) error {
	s.bindingsMu.Lock()
	defer s.bindingsMu.Unlock()
	for pattern, uri := range bindings {
		g, err := globset.Compile(pattern)
		if err != nil {
			return fmt.Errorf("schemastore: bad include pattern %q: %w", pattern, err)
		}
		s.bindings = append(s.bindings, Binding{Glob: g, URI: normalizeURI(uri, baseDir)})
	}
	return nil
}

func normalizeURI(uri, baseDir string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") || strings.HasPrefix(uri, "file://") {
		return uri
	}
	if filepath.IsAbs(uri) {
		return "file://" + uri
	}
	return "file://" + filepath.Join(baseDir, uri)
}

// TryGetDocumentSchema returns the cached or freshly-fetched schema at
// uri. A cache miss triggers exactly one in-flight fetch per uri across
// concurrent callers (spec.md §4.3 "at-most-once fetch per URI"); every
// other concurrent caller observes that fetch's result.
func (s *Store) TryGetDocumentSchema(ctx context.Context, uri string) (*DocumentSchema, error) {
	if s.opts.Offline && (strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")) {
		return nil, nil
	}

	s.mu.RLock()
	if e, ok := s.cache[uri]; ok {
		s.mu.RUnlock()
		return e.doc, e.err
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do(uri, func() (any, error) {
		s.mu.RLock()
		if e, ok := s.cache[uri]; ok {
			s.mu.RUnlock()
			return e.doc, e.err
		}
		s.mu.RUnlock()

		doc, ferr := s.fetchAndDecode(ctx, uri)
		s.mu.Lock()
		s.cache[uri] = &cacheEntry{doc: doc, err: ferr}
		s.mu.Unlock()
		if ferr != nil {
			s.log.Debug("schema fetch failed", "uri", uri, "error", ferr)
		} else {
			s.log.Debug("schema fetched", "uri", uri)
		}
		return doc, ferr
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*DocumentSchema), nil
}

// UpdateSchema clears a cached entry (including a cached failure) so the
// next lookup refetches (spec.md §7 "an explicit update_schema(uri) clears
// the failure").
func (s *Store) UpdateSchema(uri string) {
	s.mu.Lock()
	delete(s.cache, uri)
	s.mu.Unlock()
}

func (s *Store) fetchAndDecode(ctx context.Context, uri string) (*DocumentSchema, error) {
	data, err := s.fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	root, defs, err := schema.Parse(data, uri)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", diagnostic.SchemaFileParseFailed, err)
	}
	return &DocumentSchema{Root: root, SchemaURI: uri, Definitions: defs}, nil
}

func (s *Store) fetch(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", diagnostic.InvalidSchemaURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", diagnostic.SchemaFetchFailed, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("%s: %s returned %d", diagnostic.SchemaFetchFailed, uri, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	case "file":
		return os.ReadFile(u.Path)
	case "":
		data, err := os.ReadFile(uri)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", diagnostic.SchemaFileNotFound, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%s: scheme %q", diagnostic.UnsupportedSchemaURL, u.Scheme)
	}
}
