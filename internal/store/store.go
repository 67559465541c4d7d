// Package store implements the filesystem-backed note store. It owns the
// universe of notes: walking the vault, parsing front matter, resolving
// ids to files, and answering title and content match queries.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/zetbrowse/zb/internal/note"
)

// ErrNotFound signals that an id no longer resolves to a vault file.
var ErrNotFound = errors.New("note not found")

// Config controls how the vault walk behaves.
type Config struct {
	IgnoredFolders []string
}

// VaultStore indexes the markdown notes under a single vault directory.
type VaultStore struct {
	vault string
	cfg   Config

	mu        sync.Mutex
	loaded    bool
	notes     map[string]note.Note
	bodies    map[string][]byte
	outbound  map[string][]string
	backlinks map[string][]string
	pending   map[string]struct{}
}

// NewVaultStore constructs a store rooted at the vault directory. The
// vault is walked lazily on first access.
func NewVaultStore(vault string, cfg Config) *VaultStore {
	return &VaultStore{
		vault:   filepath.Clean(vault),
		cfg:     cfg,
		pending: make(map[string]struct{}),
	}
}

// Vault returns the root directory the store is indexing.
func (s *VaultStore) Vault() string {
	return s.vault
}

// Load walks the vault and replaces the indexed contents.
func (s *VaultStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// QueueUpdate schedules a vault-relative path for incremental
// re-resolution before the next read.
func (s *VaultStore) QueueUpdate(rel string) {
	trimmed := strings.TrimSpace(rel)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		s.pending = make(map[string]struct{})
	}
	s.pending[filepath.ToSlash(trimmed)] = struct{}{}
}

// ListAll returns every note in the vault, ordered by id.
func (s *VaultStore) ListAll() ([]note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil, err
	}

	ids := s.sortedIDsLocked()
	out := make([]note.Note, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.notes[id])
	}
	return out, nil
}

// Get returns the indexed note for an id.
func (s *VaultStore) Get(id string) (note.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return note.Note{}, false
	}
	n, ok := s.notes[id]
	return n, ok
}

// UniverseSize reports how many notes the vault currently holds.
func (s *VaultStore) UniverseSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return 0
	}
	return len(s.notes)
}

// TitleMatches returns the ids of notes whose title matches the term as
// a case-sensitive substring, or as a regexp when the term compiles.
func (s *VaultStore) TitleMatches(term string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil, err
	}

	match := func(title string) bool { return strings.Contains(title, term) }
	if re, err := regexp.Compile(term); err == nil {
		match = re.MatchString
	}

	matched := make(map[string]struct{})
	for id, n := range s.notes {
		if match(n.DisplayTitle()) {
			matched[id] = struct{}{}
		}
	}
	return matched, nil
}

// ContentMatches returns the ids of notes whose full content matches the
// term under regexp semantics.
func (s *VaultStore) ContentMatches(term string) (map[string]struct{}, error) {
	re, err := regexp.Compile(term)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", term, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil, err
	}

	matched := make(map[string]struct{})
	for id := range s.notes {
		if re.Match(s.bodies[id]) {
			matched[id] = struct{}{}
		}
	}
	return matched, nil
}

// ResolvePath maps an id back to its current on-disk path.
func (s *VaultStore) ResolvePath(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return "", err
	}
	n, ok := s.notes[id]
	if !ok {
		return "", fmt.Errorf("resolve %q: %w", id, ErrNotFound)
	}
	return n.Path, nil
}

// Metadata re-stats the note file and returns its current attributes.
func (s *VaultStore) Metadata(id string) (note.Metadata, error) {
	path, err := s.ResolvePath(id)
	if err != nil {
		return note.Metadata{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return note.Metadata{}, fmt.Errorf("stat %q: %w", id, err)
	}

	created := info.ModTime()
	if t, ok := note.CreatedFromID(id); ok {
		created = t
	}

	return note.Metadata{
		ModifiedAt: info.ModTime(),
		CreatedAt:  created,
		SizeBytes:  info.Size(),
	}, nil
}

// Links returns the outbound link targets of a note, resolved to ids.
func (s *VaultStore) Links(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil
	}
	return append([]string(nil), s.outbound[id]...)
}

// Backlinks returns the ids of notes linking to the given note.
func (s *VaultStore) Backlinks(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil
	}
	return append([]string(nil), s.backlinks[id]...)
}

// Orphans returns the ids of notes with no outbound links.
func (s *VaultStore) Orphans() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFreshLocked(); err != nil {
		return nil
	}

	var orphans []string
	for _, id := range s.sortedIDsLocked() {
		if len(s.outbound[id]) == 0 {
			orphans = append(orphans, id)
		}
	}
	return orphans
}

func (s *VaultStore) ensureFreshLocked() error {
	if !s.loaded {
		return s.loadLocked()
	}
	if len(s.pending) == 0 {
		return nil
	}

	pending := s.pending
	s.pending = make(map[string]struct{})

	for rel := range pending {
		abs := filepath.Join(s.vault, filepath.FromSlash(rel))
		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			// Directory events carry no note payload.
		case err == nil:
			if loadErr := s.loadNoteLocked(abs); loadErr != nil && !errors.Is(loadErr, fs.ErrNotExist) {
				return loadErr
			}
		case errors.Is(err, fs.ErrNotExist):
			s.removeByPathLocked(abs)
		default:
			return fmt.Errorf("stat %s: %w", abs, err)
		}
	}

	s.rebuildRelationshipsLocked()
	return nil
}

func (s *VaultStore) loadLocked() error {
	paths, err := s.collectNotePaths()
	if err != nil {
		return err
	}

	s.notes = make(map[string]note.Note, len(paths))
	s.bodies = make(map[string][]byte, len(paths))
	for _, p := range paths {
		if err := s.loadNoteLocked(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}

	s.rebuildRelationshipsLocked()
	s.pending = make(map[string]struct{})
	s.loaded = true
	return nil
}

func (s *VaultStore) loadNoteLocked(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	fm, _ := splitFrontMatter(data)
	parsed, err := parseFrontMatter(fm)
	if err != nil {
		return fmt.Errorf("store: front matter of %s: %w", path, err)
	}

	id := note.StemFromFilename(filepath.Base(path))

	created := info.ModTime()
	if t, ok := note.CreatedFromID(id); ok {
		created = t
	} else if !parsed.Date.IsZero() {
		created = parsed.Date
	}

	if s.notes == nil {
		s.notes = make(map[string]note.Note)
	}
	if s.bodies == nil {
		s.bodies = make(map[string][]byte)
	}

	s.notes[id] = note.Note{
		ID:         id,
		Title:      parsed.Title,
		Path:       filepath.Clean(path),
		ModifiedAt: info.ModTime(),
		CreatedAt:  created,
		SizeBytes:  info.Size(),
		Tags:       parsed.Tags,
	}
	s.bodies[id] = data
	return nil
}

func (s *VaultStore) removeByPathLocked(path string) {
	cleaned := filepath.Clean(path)
	for id, n := range s.notes {
		if n.Path == cleaned {
			delete(s.notes, id)
			delete(s.bodies, id)
			return
		}
	}
}

func (s *VaultStore) rebuildRelationshipsLocked() {
	s.outbound = make(map[string][]string, len(s.notes))
	s.backlinks = make(map[string][]string, len(s.notes))

	for id := range s.notes {
		targets := make(map[string]struct{})
		for _, raw := range extractLinks(s.bodies[id]) {
			if raw == id {
				continue
			}
			if _, ok := s.notes[raw]; ok {
				targets[raw] = struct{}{}
			}
		}
		if len(targets) == 0 {
			continue
		}

		resolved := make([]string, 0, len(targets))
		for target := range targets {
			resolved = append(resolved, target)
		}
		sort.Strings(resolved)
		s.outbound[id] = resolved

		for _, target := range resolved {
			s.backlinks[target] = append(s.backlinks[target], id)
		}
	}

	for _, sources := range s.backlinks {
		sort.Strings(sources)
	}
}

func (s *VaultStore) collectNotePaths() ([]string, error) {
	if s.vault == "" {
		return nil, errors.New("vault directory cannot be empty")
	}

	ignored := make(map[string]struct{}, len(s.cfg.IgnoredFolders))
	for _, dir := range s.cfg.IgnoredFolders {
		ignored[strings.ToLower(dir)] = struct{}{}
	}

	paths := make([]string, 0)
	err := filepath.WalkDir(s.vault, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := strings.ToLower(d.Name())
			if strings.HasPrefix(name, ".") && path != s.vault {
				return filepath.SkipDir
			}
			if _, skip := ignored[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func (s *VaultStore) sortedIDsLocked() []string {
	ids := make([]string, 0, len(s.notes))
	for id := range s.notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
