package tokens

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/logging"
)

// credentialsDoc is the on-disk layout. The key names match the storage
// keys used by the web and mobile clients.
type credentialsDoc struct {
	AccessToken  string             `json:"access_token,omitempty"`
	RefreshToken string             `json:"refresh_token,omitempty"`
	UserInfo     *models.StoredUser `json:"stockly_user_info,omitempty"`
}

// FileStore keeps the credentials in a single JSON document with 0600
// permissions. Every operation re-reads the file so concurrent processes
// (CLI and bridge pointed at the same path) observe each other's writes;
// writes are last-writer-wins full overwrites, which is acceptable because
// token writes are idempotent full replacements.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  logging.Logger
}

// NewFileStore returns a FileStore rooted at path. The parent directory is
// created lazily on first write.
func NewFileStore(path string, log logging.Logger) *FileStore {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &FileStore{path: path, log: log}
}

func (f *FileStore) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read().AccessToken
}

func (f *FileStore) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read().RefreshToken
}

func (f *FileStore) SetTokens(access, refresh string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.read()
	doc.AccessToken = access
	if refresh != "" {
		doc.RefreshToken = refresh
	}
	f.write(doc)
}

func (f *FileStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		f.log.Warn(context.Background(), "failed to remove credentials file", "path", f.path, "error", err)
	}
}

func (f *FileStore) User() *models.StoredUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read().UserInfo
}

func (f *FileStore) SetUser(u *models.StoredUser) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.read()
	doc.UserInfo = u
	f.write(doc)
}

// read loads the document, degrading to an empty one on any failure.
func (f *FileStore) read() credentialsDoc {
	var doc credentialsDoc
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn(context.Background(), "failed to read credentials file", "path", f.path, "error", err)
		}
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		f.log.Warn(context.Background(), "corrupt credentials file, ignoring", "path", f.path, "error", err)
		return credentialsDoc{}
	}
	return doc
}

// write persists the document; failures are logged, never propagated.
func (f *FileStore) write(doc credentialsDoc) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		f.log.Warn(context.Background(), "failed to encode credentials", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		f.log.Warn(context.Background(), "failed to create credentials dir", "path", f.path, "error", err)
		return
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		f.log.Warn(context.Background(), "failed to write credentials file", "path", f.path, "error", err)
	}
}
