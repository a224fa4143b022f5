package invoicefs

import (
	"context"
	"os"
	"path/filepath"

	"go-shop/internal/pkg/config"
	"go-shop/internal/pkg/errs"
)

// Store writes rendered invoices to the local filesystem, mirroring
// what is streamed to the client.
type Store struct {
	dir string
}

func NewStore(cfg config.InvoiceConfig) *Store {
	return &Store{dir: cfg.Dir}
}

func (s *Store) Save(_ context.Context, filename string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errs.Wrap(err, "failed to create invoice directory")
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(err, "failed to write invoice file")
	}
	return nil
}
