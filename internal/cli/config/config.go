package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config stores the CLI credentials and server address.
type Config struct {
	Server      string `json:"server"`       // API server address
	AccessToken string `json:"access_token"` // JWT access token
	Username    string `json:"username"`     // Current logged-in username
	UserID      string `json:"user_id"`      // Current logged-in user ID (UUID)
}

// IsAuthenticated reports whether a token is present. Possession of a token
// does not prove it is still valid; callers verify against the server.
func (c *Config) IsAuthenticated() bool {
	return c.AccessToken != ""
}

// DefaultPath returns the default configuration file path (~/.dealctl/config.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dealctl", "config.json"), nil
}

// Store persists the CLI configuration on disk. It is safe for
// concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	cfg  *Config
}

// NewStore creates a store at the default path.
func NewStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(path), nil
}

// NewStoreAt creates a store backed by the given file.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration, returning defaults when the file is
// missing. The result is a copy; mutate and pass to Save.
func (s *Store) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	copied := *cfg
	return &copied, nil
}

func (s *Store) loadLocked() (*Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.cfg = &Config{Server: "http://localhost:8080"}
		return s.cfg, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Server == "" {
		cfg.Server = "http://localhost:8080"
	}

	s.cfg = &cfg
	return s.cfg, nil
}

// Save writes the configuration to disk with user-only permissions.
func (s *Store) Save(cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(cfg)
}

func (s *Store) saveLocked(cfg *Config) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Token material, user read/write only.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	copied := *cfg
	s.cfg = &copied
	return nil
}

// SetCredentials stores the token and identity after login.
func (s *Store) SetCredentials(token, username, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loadLocked()
	if err != nil {
		return err
	}
	updated := *cfg
	updated.AccessToken = token
	updated.Username = username
	updated.UserID = userID
	return s.saveLocked(&updated)
}

// Token returns the stored access token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loadLocked()
	if err != nil {
		return ""
	}
	return cfg.AccessToken
}

// ClearToken drops the stored credentials, keeping the server address.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loadLocked()
	if err != nil {
		return err
	}
	updated := *cfg
	updated.AccessToken = ""
	updated.Username = ""
	updated.UserID = ""
	return s.saveLocked(&updated)
}
