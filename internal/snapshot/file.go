package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kutbudev/tagsync/internal/models"
)

// FileStore keeps each snapshot as <dir>/<name>.json or <dir>/<name>.yaml.
type FileStore struct {
	dir    string
	format string
}

func NewFileStore(dir, format string) (*FileStore, error) {
	switch format {
	case "":
		format = "json"
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir, format: format}, nil
}

// Path returns the file a snapshot name maps to.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+"."+s.format)
}

func (s *FileStore) Save(_ context.Context, name string, groups []models.TagGroup) error {
	if groups == nil {
		groups = []models.TagGroup{}
	}

	var data []byte
	var err error
	if s.format == "yaml" {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(groups); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	} else {
		data, err = json.MarshalIndent(groups, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(name))
}

func (s *FileStore) Load(_ context.Context, name string) ([]models.TagGroup, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path(name))
		}
		return nil, err
	}

	var groups []models.TagGroup
	if s.format == "yaml" {
		err = yaml.Unmarshal(data, &groups)
	} else {
		err = json.Unmarshal(data, &groups)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", s.Path(name), err)
	}
	return normalize(groups), nil
}
