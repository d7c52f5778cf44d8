package artifact

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/storage"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemory(), instrument.NewNoop())

	t.Run("PutThenOpen", func(t *testing.T) {
		// Arrange
		content := []byte("-- Blipzo Admin Manual Backup\n")

		// Act
		size, err := s.Put(ctx, "backups/a.sql", content)
		if err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		body, gotSize, err := s.Open(ctx, "backups/a.sql")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer body.Close()
		b, _ := io.ReadAll(body)

		// Assert
		if size != int64(len(content)) || gotSize != size {
			t.Fatalf("size = %d/%d, want %d", size, gotSize, len(content))
		}
		if string(b) != string(content) {
			t.Fatalf("content = %q", b)
		}
	})

	t.Run("MissingObject", func(t *testing.T) {
		_, _, err := s.Open(ctx, "backups/missing.sql")

		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("Open() error = %v, want ErrNotFound", err)
		}
	})
}
