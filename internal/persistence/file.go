package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cityconnect/portal/internal/models"
)

// FileGateway persists the state blob as a JSON file. Writes go to a
// temporary file in the same directory followed by a rename, so a
// failed save never clobbers the previous blob.
type FileGateway struct {
	// Path is the location of the state file.
	Path string
}

// NewFileGateway returns a FileGateway writing to the given path.
// An empty path defaults to the state key in the working directory.
func NewFileGateway(path string) *FileGateway {
	if path == "" {
		path = StateKey + ".json"
	}
	return &FileGateway{Path: path}
}

// Save serializes the state and atomically replaces the blob on disk.
func (g *FileGateway) Save(_ context.Context, st models.State) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(g.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(g.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), g.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Load reads the blob back. A missing file is not an error; an
// undecodable file is reported as ErrCorrupt.
func (g *FileGateway) Load(_ context.Context) (models.State, bool, error) {
	buf, err := os.ReadFile(g.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.State{}, false, nil
		}
		return models.State{}, false, fmt.Errorf("read state file: %w", err)
	}

	var st models.State
	if err := json.Unmarshal(buf, &st); err != nil {
		return models.State{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return st, true, nil
}
