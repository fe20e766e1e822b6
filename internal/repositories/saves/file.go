package saves

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	gameerr "github.com/KirkDiggler/txt-rpg/internal/errors"
)

// fileRepo keeps the save as indented JSON on disk. Writes go to a temp file in the
// same directory and are renamed over the target, so the previous save survives a
// failed write.
type fileRepo struct {
	path string
}

// FileRepoConfig holds configuration for the file repository
type FileRepoConfig struct {
	Path string // Required
}

// NewFileRepository creates a file-backed save repository
func NewFileRepository(cfg *FileRepoConfig) Repository {
	if cfg == nil {
		panic("FileRepoConfig cannot be nil")
	}
	if cfg.Path == "" {
		panic("save path cannot be empty")
	}

	return &fileRepo{path: cfg.Path}
}

// NewFile creates a file-backed save repository at path
func NewFile(path string) Repository {
	return NewFileRepository(&FileRepoConfig{Path: path})
}

func (r *fileRepo) Load(ctx context.Context) (*SaveData, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, gameerr.NotFoundf("no save at %s", r.path).
			WithMeta("path", r.path)
	}
	if err != nil {
		return nil, gameerr.PersistenceRead(err, "failed to read save file").
			WithMeta("path", r.path)
	}

	var data SaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, gameerr.PersistenceRead(err, "failed to decode save file").
			WithMeta("path", r.path)
	}
	if err := validateLoaded(&data); err != nil {
		return nil, err
	}

	return &data, nil
}

func (r *fileRepo) Save(ctx context.Context, data *SaveData) error {
	if err := validateForSave(data); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return gameerr.PersistenceWrite(err, "failed to encode save")
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return gameerr.PersistenceWrite(err, "failed to create temp save file").
			WithMeta("path", r.path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return gameerr.PersistenceWrite(err, "failed to write save file").
			WithMeta("path", r.path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return gameerr.PersistenceWrite(err, "failed to sync save file").
			WithMeta("path", r.path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return gameerr.PersistenceWrite(err, "failed to close save file").
			WithMeta("path", r.path)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return gameerr.PersistenceWrite(err, "failed to replace save file").
			WithMeta("path", r.path)
	}

	return nil
}

func (r *fileRepo) Delete(ctx context.Context) error {
	err := os.Remove(r.path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return gameerr.PersistenceWrite(err, "failed to delete save file").
		WithMeta("path", r.path)
}
