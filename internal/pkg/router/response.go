package router

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
)

// File is a handler payload streamed to the client as a download.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

func writeFile(ctx context.Context, w http.ResponseWriter, f *File) {
	defer func() {
		if err := f.Body.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close file body", "file", f.Name, "error", err)
		}
	}()

	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	if f.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f.Body); err != nil {
		slog.ErrorContext(ctx, "failed to stream file", "file", f.Name, "error", err)
	}
}
