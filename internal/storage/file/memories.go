package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

// MemoriesFile keeps the whole memory collection as one JSON array.
// Every Save rewrites the file through a temp file and rename.
type MemoriesFile struct {
	path string
}

func NewMemoriesFile(path string) *MemoriesFile {
	return &MemoriesFile{path: path}
}

func (f *MemoriesFile) Load(ctx context.Context) ([]core.Memory, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		log.FromCtx(ctx).Debug().Str("path", f.path).Msg("memories file not found, starting empty")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memories file: %w", err)
	}

	var memories []core.Memory
	if err := json.Unmarshal(data, &memories); err != nil {
		return nil, fmt.Errorf("failed to decode memories file: %w", err)
	}
	return memories, nil
}

func (f *MemoriesFile) Save(ctx context.Context, memories []core.Memory) error {
	if memories == nil {
		memories = []core.Memory{}
	}

	data, err := json.MarshalIndent(memories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode memories: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create memories directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write memories file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace memories file: %w", err)
	}
	return nil
}
