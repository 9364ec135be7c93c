package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
)

// Disk grava artefatos de upload no diretório configurado
type Disk struct {
	dir    string
	logger ports.Logger
}

// NewDisk cria um novo storage em disco
func NewDisk(dir string, logger ports.Logger) *Disk {
	return &Disk{dir: dir, logger: logger}
}

// Save grava o conteúdo com um nome único derivado do nome original e
// retorna o nome gerado e o caminho relativo armazenado no registro
func (d *Disk) Save(originalName string, data []byte) (string, string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(d.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	d.logger.Info("file saved to disk", "path", path)
	return name, path, nil
}

// Replace sobrescreve o conteúdo de um artefato existente
func (d *Disk) Replace(name string, data []byte) error {
	path := filepath.Join(d.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to replace file: %w", err)
	}
	d.logger.Info("file replaced on disk", "path", path)
	return nil
}

// Remove apaga um artefato. Remoções são idempotentes: artefato ausente não
// é erro.
func (d *Disk) Remove(name string) error {
	path := filepath.Join(d.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
