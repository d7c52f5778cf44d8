package artifact

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const contentType = "application/sql"

// Store keeps backup files in object storage.
type Store struct {
	client storage.Storage
	ins    instrument.Instrumentation
}

func New(client storage.Storage, ins instrument.Instrumentation) *Store {
	return &Store{client: client, ins: ins}
}

func (s *Store) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("adminsystem.outbound.artifact").Start(ctx, name)
}

// Put uploads content under key and returns the stored size.
func (s *Store) Put(ctx context.Context, key string, content []byte) (int64, error) {
	ctx, span := s.startSpan(ctx, "Put")
	defer span.End()

	info, err := s.client.Put(ctx, key, bytes.NewReader(content), storage.PutOptions{
		Size:        int64(len(content)),
		ContentType: contentType,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	if info.Size <= 0 {
		return int64(len(content)), nil
	}
	return info.Size, nil
}

// Open returns a reader over the object at key. A missing object is
// goerror.ErrNotFound.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	ctx, span := s.startSpan(ctx, "Open")
	defer span.End()

	body, info, err := s.client.Get(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, 0, goerror.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}

	return body, info.Size, nil
}
