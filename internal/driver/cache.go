package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tabtidy/internal/diag"
	"tabtidy/internal/format"
)

// Bump when the payload layout changes; old entries then simply miss.
const cacheSchemaVersion uint16 = 1

// DiskCache memoizes formatting results keyed by content and options, so a
// re-run over an unchanged tree does no parsing at all. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is everything needed to reproduce one file's formatting
// outcome, diagnostics included.
type cachePayload struct {
	Schema  uint16
	Output  []byte
	Changed bool
	Diags   []diag.Diagnostic
}

// OpenDiskCache initializes the cache at the standard user location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory. Tests and
// sandboxed runs use this instead of the user cache.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	// подкаталог "files" — чтобы DropAll было безопасно
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload atomically (temp file + rename).
func (c *DiskCache) Put(key [32]byte, payload *cachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads a payload; a decode failure or schema mismatch is a miss, not
// an error (stale entries must never break a run).
func (c *DiskCache) Get(key [32]byte) (*cachePayload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &payload, true
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	err := os.RemoveAll(filepath.Join(c.dir, "files"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// cacheKey mixes the raw file bytes with the options fingerprint.
func cacheKey(raw []byte, optsHash [32]byte) [32]byte {
	h := sha256.New()
	h.Write(optsHash[:])
	h.Write(raw)
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

// optionsHash fingerprints the formatting options. Any change invalidates
// every entry produced under the old options.
func optionsHash(opts *format.Options) [32]byte {
	b, err := msgpack.Marshal(opts)
	if err != nil {
		// options are plain data; a marshal failure means a programming error
		panic(err)
	}
	h := sha256.Sum256(b)
	return h
}
