package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
)

// FileStore persists tokens as a small JSON document on disk. Writes go
// through a temp file + rename so a crash never leaves a torn file. Read or
// parse failures degrade to empty tokens.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NewFileStore creates a file-backed store at path, creating parent
// directories as needed.
func NewFileStore(path string) *FileStore {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			logger.Warnf("tokenstore: cannot create %s: %v", dir, err)
		}
	}
	return &FileStore{path: path}
}

func (f *FileStore) load() fileTokens {
	var t fileTokens
	b, err := os.ReadFile(f.path)
	if err != nil {
		return t
	}
	if err := json.Unmarshal(b, &t); err != nil {
		logger.Warnf("tokenstore: corrupt token file %s: %v", f.path, err)
		return fileTokens{}
	}
	return t
}

func (f *FileStore) save(t fileTokens) {
	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		logger.Warnf("tokenstore: write %s: %v", tmp, err)
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		logger.Warnf("tokenstore: rename %s: %v", f.path, err)
	}
}

func (f *FileStore) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load().AccessToken
}

func (f *FileStore) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.load()
	t.AccessToken = token
	f.save(t)
}

func (f *FileStore) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load().RefreshToken
}

func (f *FileStore) SetRefreshToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.load()
	t.RefreshToken = token
	f.save(t)
}

func (f *FileStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		logger.Warnf("tokenstore: remove %s: %v", f.path, err)
	}
}
