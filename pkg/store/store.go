// Package store persists the business catalog as a JSON file.
//
// Loading never fails: a missing file is initialized with the seed catalog,
// and a corrupt or empty one is reset to it. Every save first copies the
// current file to a sibling backup. Outcomes are reported in LoadResult and
// SaveResult so the caller decides what to log.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
)

// Status describes how Load obtained the catalog.
type Status int

// Load statuses.
const (
	// StatusLoaded means the file parsed and held businesses.
	StatusLoaded Status = iota
	// StatusCreated means the file was absent and the seed catalog was written.
	StatusCreated
	// StatusReset means the file was corrupt or empty and was overwritten with the seed catalog.
	StatusReset
	// StatusUnreadable means the file exists but could not be read; it is left untouched.
	StatusUnreadable
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusCreated:
		return "created"
	case StatusReset:
		return "reset"
	case StatusUnreadable:
		return "unreadable"
	}
	return "unknown"
}

// LoadResult reports the outcome of Load.
type LoadResult struct {
	Catalog *catalogs.Catalog
	Status  Status

	// Cause explains a reset or unreadable status.
	Cause error

	// Upgraded counts legacy numeric favorites rewritten to stable keys.
	Upgraded int

	// Renumbered is true when missing or repeated business ids were
	// replaced with 1..n in file order.
	Renumbered bool

	// SaveErr is set when writing back the seed, reset or upgraded catalog failed.
	SaveErr error
}

// SaveResult reports the non-fatal parts of a save.
type SaveResult struct {
	// BackupErr is set when copying the previous file failed. The write still happened.
	BackupErr error

	// Compact is true when the indented write failed and the compact retry succeeded.
	Compact bool
}

// Store reads and writes one catalog file.
type Store struct {
	path       string
	backupPath string
	fs         afero.Fs
}

// New creates a store for the catalog file at path.
func New(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewValidationError("path", path, "cannot be empty")
	}
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	backup := o.backupPath
	if backup == "" {
		backup = BackupPath(path)
	}
	return &Store{path: path, backupPath: backup, fs: o.fs}, nil
}

// BackupPath derives the sibling backup path: "catalog.json" becomes "catalog_backup.json".
func BackupPath(path string) string {
	return strings.TrimSuffix(path, ".json") + constants.BackupSuffix
}

// Path returns the catalog file path.
func (s *Store) Path() string {
	return s.path
}

// BackupFile returns the backup file path.
func (s *Store) BackupFile() string {
	return s.backupPath
}

// Exists reports whether the catalog file exists.
func (s *Store) Exists() bool {
	ok, err := afero.Exists(s.fs, s.path)
	return err == nil && ok
}

// Load reads the catalog, falling back to the seed catalog when the file is
// missing, unparsable, not an object, lacks businesses or holds none.
func (s *Store) Load() LoadResult {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.reset(StatusCreated, nil)
		}
		return LoadResult{
			Catalog: catalogs.Default(),
			Status:  StatusUnreadable,
			Cause:   errors.WrapIO("read", s.path, err),
		}
	}

	cat, upgraded, err := decode(data)
	if err != nil {
		return s.reset(StatusReset, errors.NewParseError("json", s.path, err.Error(), err))
	}
	renumbered := renumber(cat)

	result := LoadResult{Catalog: cat, Status: StatusLoaded, Upgraded: upgraded, Renumbered: renumbered}
	if upgraded > 0 || renumbered {
		if _, err := s.Save(cat); err != nil {
			result.SaveErr = err
		}
	}
	return result
}

func (s *Store) reset(status Status, cause error) LoadResult {
	cat := catalogs.Default()
	result := LoadResult{Catalog: cat, Status: status, Cause: cause}
	if _, err := s.Save(cat); err != nil {
		result.SaveErr = err
	}
	return result
}

// Save backs up the current file, then writes the catalog with two-space
// indentation, retrying once with compact JSON. Favorites are collapsed
// before writing. The returned error is an IOError when both writes fail.
func (s *Store) Save(cat *catalogs.Catalog) (SaveResult, error) {
	var result SaveResult
	if cat == nil {
		return result, errors.NewValidationError("catalog", nil, "cannot be nil")
	}
	result.BackupErr = s.backup()

	doc := encodable(cat)
	if dir := filepath.Dir(s.path); dir != "" {
		_ = s.fs.MkdirAll(dir, constants.DirPermissions)
	}

	data, err := marshal(doc, true)
	if err == nil {
		err = afero.WriteFile(s.fs, s.path, data, constants.FilePermissions)
	}
	if err == nil {
		return result, nil
	}

	data, err = marshal(doc, false)
	if err == nil {
		err = afero.WriteFile(s.fs, s.path, data, constants.FilePermissions)
	}
	if err != nil {
		return result, errors.WrapIO("write", s.path, err)
	}
	result.Compact = true
	return result, nil
}

func (s *Store) backup() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapIO("backup", s.path, err)
	}
	return errors.WrapIO("backup", s.backupPath,
		afero.WriteFile(s.fs, s.backupPath, data, constants.FilePermissions))
}

func marshal(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodable copies cat with collapsed favorites and no nil review lists.
func encodable(cat *catalogs.Catalog) *catalogs.Catalog {
	out := cat.Clone()
	for i := range out.Businesses {
		if out.Businesses[i].Reviews == nil {
			out.Businesses[i].Reviews = []catalogs.Review{}
		}
	}
	out.Favorites = catalogs.DedupeFavorites(out.Favorites)
	return out
}

// document is the on-disk shape. Entries are decoded one by one so a
// single malformed business or favorite does not discard the file.
type document struct {
	Businesses *[]json.RawMessage `json:"businesses"`
	Favorites  json.RawMessage    `json:"favorites"`
}

func decode(data []byte) (*catalogs.Catalog, int, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, 0, errors.New("file is empty")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, err
	}
	if doc.Businesses == nil {
		return nil, 0, errors.New("missing businesses")
	}

	businesses := make([]catalogs.Business, 0, len(*doc.Businesses))
	for _, raw := range *doc.Businesses {
		var b catalogs.Business
		if err := json.Unmarshal(raw, &b); err != nil {
			continue
		}
		if b.Reviews == nil {
			b.Reviews = []catalogs.Review{}
		}
		businesses = append(businesses, b)
	}
	if len(businesses) == 0 {
		return nil, 0, errors.New("no businesses")
	}

	cat := &catalogs.Catalog{Businesses: businesses}
	favorites, upgraded := upgradeFavorites(cat, doc.Favorites)
	cat.Favorites = catalogs.DedupeFavorites(favorites)
	return cat, upgraded, nil
}

// renumber assigns ids 1..n in file order when any id is missing,
// non-positive or repeated. Favorites hold keys, so they are unaffected.
func renumber(cat *catalogs.Catalog) bool {
	seen := make(map[int]struct{}, len(cat.Businesses))
	valid := true
	for _, b := range cat.Businesses {
		if _, dup := seen[b.ID]; dup || b.ID <= 0 {
			valid = false
			break
		}
		seen[b.ID] = struct{}{}
	}
	if valid {
		return false
	}
	for i := range cat.Businesses {
		cat.Businesses[i].ID = i + 1
	}
	return true
}

// upgradeFavorites rewrites legacy numeric-id favorites to stable keys.
// Ids that no longer resolve are kept in their string form.
func upgradeFavorites(cat *catalogs.Catalog, raw json.RawMessage) ([]string, int) {
	var entries []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return []string{}, 0
	}

	out := make([]string, 0, len(entries))
	upgraded := 0
	for _, entry := range entries {
		value, numeric := favoriteValue(entry)
		if value == "" {
			continue
		}
		if numeric {
			if id, err := strconv.Atoi(value); err == nil {
				if b, ok := cat.Find(id); ok {
					out = append(out, b.Key())
					upgraded++
					continue
				}
			}
		}
		out = append(out, value)
	}
	return out, upgraded
}

// favoriteValue returns the entry as a string and whether it looks like a legacy id.
func favoriteValue(entry json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(entry, &s); err == nil {
		return s, isDigits(s)
	}
	var n json.Number
	if err := json.Unmarshal(entry, &n); err == nil {
		_, err := n.Int64()
		return n.String(), err == nil
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
