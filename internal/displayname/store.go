package displayname

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/asteroid-belt/parley/internal/config"
	"github.com/asteroid-belt/parley/internal/log"
)

func debugLog(format string, args ...interface{}) {
	log.DebugLog("displayname", format, args...)
}

// Preference is one stored display name.
type Preference struct {
	Key  Key
	Name string
}

// Store persists display names as a single JSON object in a state directory.
// The file is re-read on every call so names written by another process are
// picked up. Writes within one process are serialized per file, across every
// Store opened on it.
type Store struct {
	path string
	mu   *sync.Mutex
}

var (
	fileLocksMu sync.Mutex
	fileLocks   = make(map[string]*sync.Mutex)
)

// fileLock returns the process-wide write lock for path.
func fileLock(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fileLocksMu.Lock()
	defer fileLocksMu.Unlock()
	mu, ok := fileLocks[path]
	if !ok {
		mu = &sync.Mutex{}
		fileLocks[path] = mu
	}
	return mu
}

// NewStore creates a store backed by group-display-names.json in stateDir.
func NewStore(stateDir string) *Store {
	path := filepath.Join(stateDir, config.DisplayNamesFile)
	return &Store{path: path, mu: fileLock(path)}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the display name a sender picked, if any.
func (s *Store) Get(platform Platform, senderID string) (string, bool) {
	key, ok := DeriveKey(platform, senderID)
	if !ok {
		return "", false
	}
	name := strings.TrimSpace(s.load()[key])
	if name == "" {
		return "", false
	}
	return name, true
}

// Set stores name for the sender. A blank name clears the preference.
// A blank sender id is a silent no-op. Callers must only pass the
// authenticated sender's own id; the store does no authorization.
func (s *Store) Set(platform Platform, senderID, name string) error {
	key, ok := DeriveKey(platform, senderID)
	if !ok {
		debugLog("ignoring set with blank sender id on %q", platform)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.load()
	name = strings.TrimSpace(name)
	if name == "" {
		delete(names, key)
	} else {
		names[key] = name
	}
	return s.save(names)
}

// Clear removes the sender's preference.
func (s *Store) Clear(platform Platform, senderID string) error {
	return s.Set(platform, senderID, "")
}

// All returns every stored preference sorted by key.
func (s *Store) All() []Preference {
	names := s.load()
	prefs := make([]Preference, 0, len(names))
	for k, v := range names {
		if v = strings.TrimSpace(v); v != "" {
			prefs = append(prefs, Preference{Key: k, Name: v})
		}
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].Key < prefs[j].Key })
	return prefs
}

// SenderLabel returns the name to show for a sender: the chosen display name,
// else fallback, else the raw sender id.
func (s *Store) SenderLabel(platform Platform, senderID, fallback string) string {
	if name, ok := s.Get(platform, senderID); ok {
		return name
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return strings.TrimSpace(senderID)
}

// load reads the mapping. Any failure yields an empty mapping; the cause is
// only reported through debug logging.
func (s *Store) load() map[Key]string {
	names := make(map[Key]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			debugLog("read %s: %v", s.path, err)
		}
		return names
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return names
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Truncated text, arrays and scalars all land here.
		debugLog("parse %s: %v", s.path, err)
		return names
	}

	for k, v := range raw {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			debugLog("skip non-string entry %q", k)
			continue
		}
		names[Key(k)] = name
	}
	return names
}

// save writes the mapping atomically (caller must hold s.mu).
func (s *Store) save(names map[Key]string) error {
	data, err := encodeNames(names)
	if err != nil {
		return fmt.Errorf("encode display names: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".group-display-names-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write display names: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write display names: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write display names: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace display names: %w", err)
	}
	return nil
}

// encodeNames renders the mapping as compact JSON without HTML escaping,
// so names like "Tom & Jerry" are stored verbatim.
func encodeNames(names map[Key]string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(names); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
