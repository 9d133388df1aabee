package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// FileStore keeps each scope in its own dotenv file. The user scope
// lives under the user's config directory; the machine scopes under a
// system directory the user normally cannot write.
type FileStore struct {
	paths map[Scope]string
}

// NewFileStore maps scopes onto files below userDir and systemDir.
func NewFileStore(userDir, systemDir string) *FileStore {
	return &FileStore{paths: map[Scope]string{
		ScopePolicyUser:     filepath.Join(userDir, "policy.env"),
		ScopePolicyMachine:  filepath.Join(systemDir, "policy.env"),
		ScopeUser:           filepath.Join(userDir, "settings.env"),
		ScopeDefaultUser:    filepath.Join(userDir, "defaults.env"),
		ScopeDefaultMachine: filepath.Join(systemDir, "defaults.env"),
	}}
}

func (s *FileStore) read(scope Scope, key string) (string, bool) {
	env, err := godotenv.Read(s.paths[scope])
	if err != nil {
		return "", false
	}
	v, ok := env[key]
	return v, ok
}

func (s *FileStore) ReadInt(scope Scope, key string) (int64, bool) {
	raw, ok := s.read(scope, key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (s *FileStore) ReadString(scope Scope, key string) (string, bool) {
	return s.read(scope, key)
}

func (s *FileStore) mutate(fn func(env map[string]string)) error {
	path := s.paths[ScopeUser]
	env, err := godotenv.Read(path)
	if err != nil {
		env = map[string]string{}
	}
	fn(env)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *FileStore) WriteInt(key string, value int64) error {
	return s.mutate(func(env map[string]string) {
		env[key] = strconv.FormatInt(value, 10)
	})
}

func (s *FileStore) WriteString(key, value string) error {
	return s.mutate(func(env map[string]string) {
		env[key] = value
	})
}

func (s *FileStore) Delete(key string) error {
	return s.mutate(func(env map[string]string) {
		delete(env, key)
	})
}
