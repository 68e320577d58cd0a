package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/habistudio/habi-backend/pkg/errors"
)

const (
	customersFile   = "customers.json"
	credentialsFile = "credentials.json"
	rememberFile    = "remember.json"
)

// CustomerRecord is one entry in the customer registry file. The password
// field holds the Argon2id encoded hash.
type CustomerRecord struct {
	Password string `json:"password"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Age      int    `json:"age"`
}

// Registry is the on-disk customer account store. An unreadable file reads
// as an empty registry.
type Registry struct {
	mu   sync.Mutex
	path string
}

func NewRegistry(configDir string) *Registry {
	return &Registry{path: filepath.Join(configDir, customersFile)}
}

func (r *Registry) load() map[string]CustomerRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return map[string]CustomerRecord{}
	}
	var customers map[string]CustomerRecord
	if err := json.Unmarshal(data, &customers); err != nil || customers == nil {
		return map[string]CustomerRecord{}
	}
	return customers
}

// Get returns the record for a username.
func (r *Registry) Get(username string) (CustomerRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.load()[username]
	return rec, ok
}

// Has reports whether the username is taken.
func (r *Registry) Has(username string) bool {
	_, ok := r.Get(username)
	return ok
}

// Put adds or replaces a record and rewrites the whole file.
func (r *Registry) Put(username string, rec CustomerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customers := r.load()
	customers[username] = rec

	data, err := json.MarshalIndent(customers, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "encoding customer registry")
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "creating config directory")
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "writing customer registry")
	}
	return nil
}

// AdminCredentials is the legacy admin credentials file. The file stores
// plaintext passwords and defaults to admin123/admin123 when unreadable.
type AdminCredentials struct {
	path string
}

func NewAdminCredentials(configDir string) *AdminCredentials {
	return &AdminCredentials{path: filepath.Join(configDir, credentialsFile)}
}

func (a *AdminCredentials) Load() map[string]string {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return map[string]string{"admin123": "admin123"}
	}
	var creds map[string]string
	if err := json.Unmarshal(data, &creds); err != nil || len(creds) == 0 {
		return map[string]string{"admin123": "admin123"}
	}
	return creds
}

// Save replaces the credentials file with a single username/password pair.
func (a *AdminCredentials) Save(username, password string) error {
	data, err := json.MarshalIndent(map[string]string{username: password}, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "encoding admin credentials")
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "creating config directory")
	}
	if err := os.WriteFile(a.path, data, 0o600); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "writing admin credentials")
	}
	return nil
}

// RememberedAdmin is the prefill data for the admin login form.
type RememberedAdmin struct {
	Username string `json:"remembered_admin"`
	Password string `json:"remembered_password"`
}

// RememberStore persists the remembered admin login between sessions.
type RememberStore struct {
	path string
}

func NewRememberStore(configDir string) *RememberStore {
	return &RememberStore{path: filepath.Join(configDir, rememberFile)}
}

func (s *RememberStore) Write(username, password string) error {
	data, err := json.Marshal(RememberedAdmin{Username: username, Password: password})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "encoding remembered login")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "creating config directory")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "writing remembered login")
	}
	return nil
}

// Read returns the remembered login, or nil when none is stored.
func (s *RememberStore) Read() *RememberedAdmin {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var remembered RememberedAdmin
	if err := json.Unmarshal(data, &remembered); err != nil {
		return nil
	}
	return &remembered
}

// Clear removes the remember file entirely.
func (s *RememberStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(apperrors.CodeInternal, err, "removing remembered login")
	}
	return nil
}
