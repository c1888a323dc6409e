package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/videodl/video-dl/internal/domain"
)

// AppName is used for config, data and state directories
const AppName = "video-dl"

const configFileName = "config.toml"

// DefaultConfigPath returns $XDG_CONFIG_HOME/video-dl/config.toml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, configFileName)
}

// ConfigStore loads and persists the user configuration file
type ConfigStore struct {
	fs   afero.Fs
	path string
}

// NewConfigStore creates a store backed by the OS filesystem.
// An empty path selects DefaultConfigPath.
func NewConfigStore(path string) *ConfigStore {
	return NewConfigStoreWithFs(afero.NewOsFs(), path)
}

// NewConfigStoreWithFs creates a store on an arbitrary filesystem
func NewConfigStoreWithFs(fs afero.Fs, path string) *ConfigStore {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &ConfigStore{fs: fs, path: path}
}

// Path returns the config file location
func (s *ConfigStore) Path() string {
	return s.path
}

// Keys returns the configuration keys in display order
func (s *ConfigStore) Keys() []string {
	return domain.ConfigKeys()
}

// Load reads the config file. A missing file yields the built-in defaults.
func (s *ConfigStore) Load() (*domain.Configuration, error) {
	config := domain.DefaultConfiguration()

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return nil, &domain.ConfigError{Path: s.path, Err: err}
	}
	if !exists {
		return config, nil
	}

	v := viper.New()
	v.SetFs(s.fs)
	v.SetConfigFile(s.path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, &domain.ConfigError{Path: s.path, Err: err}
	}

	// keys absent from the file keep their defaults
	if err := v.Unmarshal(config); err != nil {
		return nil, &domain.ConfigError{Path: s.path, Err: err}
	}

	if err := config.Validate(); err != nil {
		return nil, &domain.ConfigError{Path: s.path, Err: err}
	}

	return config, nil
}

// Save writes config atomically: a sibling temp file is renamed over the target
func (s *ConfigStore) Save(config *domain.Configuration) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+configFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if f, ok := tmp.(*os.File); ok {
		if err := f.Sync(); err != nil {
			tmp.Close()
			s.fs.Remove(tmpName)
			return fmt.Errorf("failed to sync config file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to close config file: %w", err)
	}

	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// Get returns the current value of key
func (s *ConfigStore) Get(key string) (string, error) {
	config, err := s.Load()
	if err != nil {
		return "", err
	}
	return config.Get(key)
}

// Set validates value, assigns it to key and persists the result
func (s *ConfigStore) Set(key, value string) (*domain.Configuration, error) {
	config, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := config.Set(key, value); err != nil {
		return nil, err
	}
	if err := s.Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Reset overwrites the file with the built-in defaults
func (s *ConfigStore) Reset() (*domain.Configuration, error) {
	config := domain.DefaultConfiguration()
	if err := s.Save(config); err != nil {
		return nil, err
	}
	return config, nil
}
