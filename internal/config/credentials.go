// Package config manages the credential file holding the business search
// API key and the default search location.
//
// The file is a JSON object:
//
//	{"yelp_api_key": "...", "yelp_default_location": "Austin, TX"}
//
// YELP_API_KEY and YELP_DEFAULT_LOCATION override the stored values. A
// written key is kept with owner-only permissions.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
)

// Credential file keys.
const (
	KeyAPIKey          = "yelp_api_key"
	KeyDefaultLocation = "yelp_default_location"
)

// Environment variables overriding the credential file.
const (
	EnvAPIKey          = "YELP_API_KEY"
	EnvDefaultLocation = "YELP_DEFAULT_LOCATION"
)

// Credentials are the resolved credential settings.
type Credentials struct {
	APIKey          string `json:"yelp_api_key,omitempty" yaml:"yelp_api_key,omitempty"`
	DefaultLocation string `json:"yelp_default_location,omitempty" yaml:"yelp_default_location,omitempty"`
}

// HasAPIKey reports whether an API key is configured.
func (c *Credentials) HasAPIKey() bool {
	return c.APIKey != ""
}

// Masked returns a copy safe to display, with the key shortened.
func (c *Credentials) Masked() Credentials {
	out := *c
	if n := len(out.APIKey); n > 8 {
		out.APIKey = out.APIKey[:4] + strings.Repeat("*", n-8) + out.APIKey[n-4:]
	} else if n > 0 {
		out.APIKey = strings.Repeat("*", n)
	}
	return out
}

// Store reads and writes the credential file.
type Store struct {
	path   string
	fs     afero.Fs
	getenv func(string) string
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem the credential file lives on.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithEnv replaces the environment lookup.
func WithEnv(getenv func(string) string) Option {
	return func(s *Store) {
		if getenv != nil {
			s.getenv = getenv
		}
	}
}

// New creates a credential store for path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		fs:     afero.NewOsFs(),
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the credential file path.
func (s *Store) Path() string {
	return s.path
}

// Load resolves the credentials. A missing file is not an error; an
// unparsable one is a ConfigError, and the environment still applies.
func (s *Store) Load() (*Credentials, error) {
	v, err := s.read()

	creds := &Credentials{}
	if v != nil {
		creds.APIKey = strings.TrimSpace(v.GetString(KeyAPIKey))
		creds.DefaultLocation = strings.TrimSpace(v.GetString(KeyDefaultLocation))
	}
	if env := strings.TrimSpace(s.getenv(EnvAPIKey)); env != "" {
		creds.APIKey = env
	}
	if env := strings.TrimSpace(s.getenv(EnvDefaultLocation)); env != "" {
		creds.DefaultLocation = env
	}
	return creds, err
}

// SaveAPIKey stores key in the credential file, keeping other settings.
func (s *Store) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &errors.ValidationError{Field: KeyAPIKey, Message: "cannot be empty"}
	}
	return s.write(KeyAPIKey, key)
}

// SaveDefaultLocation stores the default search location, keeping other settings.
func (s *Store) SaveDefaultLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return &errors.ValidationError{Field: KeyDefaultLocation, Message: "cannot be empty"}
	}
	return s.write(KeyDefaultLocation, location)
}

func (s *Store) newViper() *viper.Viper {
	v := viper.New()
	v.SetFs(s.fs)
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetConfigPermissions(constants.SecureFilePermissions)
	return v
}

// read returns a viper instance holding the file contents. It returns an
// empty instance when the file does not exist.
func (s *Store) read() (*viper.Viper, error) {
	v := s.newViper()
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return v, errors.WrapIO("stat", s.path, err)
	}
	if !exists {
		return v, nil
	}
	if err := v.ReadInConfig(); err != nil {
		return s.newViper(), errors.NewConfigError("credentials", "cannot read "+s.path, err)
	}
	return v, nil
}

func (s *Store) write(key, value string) error {
	// A corrupt file is replaced rather than blocking the save.
	v, _ := s.read()
	v.Set(key, value)

	if err := s.fs.MkdirAll(filepath.Dir(s.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(s.path), err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	if err := s.fs.Chmod(s.path, constants.SecureFilePermissions); err != nil {
		return errors.WrapIO("chmod", s.path, err)
	}
	return nil
}
