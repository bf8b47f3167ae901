package media

import (
	"context"
	"io"

	"github.com/minhokang/busanhunt/internal/config"
	"github.com/minhokang/busanhunt/internal/logger"
)

// Store persists uploaded proof files and hands back a URL clients can fetch.
// Delete is best-effort by contract: a backend that cannot remove a blob logs
// and moves on, leaving an orphan rather than failing the enclosing update.
type Store interface {
	// Save persists the bytes under name and returns the retrievable URL:
	// absolute for remote object storage, root-relative for local storage.
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Delete removes the blob a previously returned URL points at. A URL
	// that does not match this backend's shape is ignored.
	Delete(ctx context.Context, url string) error
}

// Opener is implemented by backends the server must proxy reads for
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Open resolves the media backend from configuration, once, at startup
func Open(cfg *config.Server) (Store, error) {
	if cfg.RemoteMedia() {
		logger.Info("Using NATS object store for media",
			logger.F("bucket", cfg.MediaBucket))
		return NewObjectStore(cfg.NATSURL, cfg.MediaBucket, cfg.PublicURL)
	}

	logger.Info("Using local media store", logger.F("dir", cfg.UploadDir))
	return NewLocalStore(cfg.UploadDir), nil
}
