package locallift

import (
	"github.com/agentstation/locallift/pkg/errors"
	"github.com/agentstation/locallift/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence handles catalog persistence operations.
type Persistence interface {
	// Save writes the catalog, backing up the previous file first.
	Save() error

	// Reload reads the catalog file again, replacing the in-memory catalog.
	Reload() store.LoadResult

	// LoadResult reports how the catalog was last loaded.
	LoadResult() store.LoadResult

	// DataFile returns the catalog file path.
	DataFile() string
}

// Save writes the catalog, backing up the previous file first.
func (c *client) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writableLocked(); err != nil {
		return err
	}
	return c.saveLocked()
}

// Reload reads the catalog file again, replacing the in-memory catalog.
func (c *client) Reload() store.LoadResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = c.store.Load()
	c.catalog = c.loaded.Catalog
	c.logLoad(c.loaded)
	return c.loadResultLocked()
}

// LoadResult reports how the catalog was last loaded.
func (c *client) LoadResult() store.LoadResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadResultLocked()
}

func (c *client) loadResultLocked() store.LoadResult {
	r := c.loaded
	r.Catalog = r.Catalog.Clone()
	return r
}

// DataFile returns the catalog file path.
func (c *client) DataFile() string {
	return c.store.Path()
}

// writableLocked refuses writes while the catalog file exists but could
// not be read, so its contents are never replaced by the seed catalog.
// Reload clears the state once the file is readable again.
func (c *client) writableLocked() error {
	if c.loaded.Status != store.StatusUnreadable {
		return nil
	}
	return errors.NewIOError("write", c.store.Path(), c.loaded.Cause)
}

// saveLocked persists the catalog. The caller holds c.mu.
func (c *client) saveLocked() error {
	result, err := c.store.Save(c.catalog)
	if result.BackupErr != nil {
		c.logger.Warn().Err(result.BackupErr).Str("path", c.store.BackupFile()).Msg("Catalog backup failed")
	}
	if result.Compact {
		c.logger.Warn().Str("path", c.store.Path()).Msg("Catalog written without indentation")
	}
	if err != nil {
		c.logger.Error().Err(err).Str("path", c.store.Path()).Msg("Catalog save failed")
		return err
	}
	return nil
}
