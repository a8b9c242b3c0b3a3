package store

import (
	"github.com/spf13/afero"

	"github.com/agentstation/locallift/pkg/errors"
)

type options struct {
	fs         afero.Fs
	backupPath string
}

func defaultOptions() *options {
	return &options{fs: afero.NewOsFs()}
}

// Option configures a Store.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithFs sets the filesystem the store reads and writes. Tests use afero.NewMemMapFs.
func WithFs(fs afero.Fs) Option {
	return func(o *options) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "cannot be nil")
		}
		o.fs = fs
		return nil
	}
}

// WithBackupPath overrides the sibling backup path derived from the catalog path.
func WithBackupPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return errors.NewValidationError("backup_path", path, "cannot be empty")
		}
		o.backupPath = path
		return nil
	}
}
