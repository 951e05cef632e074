package testcorpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/matchdb/internal/domain/model"
	"github.com/okian/matchdb/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Write lays c out under root, one subdirectory per corpus directory.
// Existing files with the same names are overwritten.
func Write(ctx context.Context, root string, c model.Corpus) error {
	for _, name := range c.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		for file, text := range c[name] {
			if err := os.WriteFile(filepath.Join(dir, file), []byte(text), filePermission); err != nil {
				return fmt.Errorf("failed to write %s/%s: %w", name, file, err)
			}
		}
	}
	logger.Get().Info(ctx, "corpus written",
		logger.String("root", root),
		logger.Int("directories", len(c)),
		logger.Int("files", c.Files()),
	)
	return nil
}
