package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"autoecole/config"
	"autoecole/infras/otel"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"

	DriverLocal = "local"
	DriverS3    = "s3"
)

// FileStorage abstracts the document file areas. A directory is one of the
// configured areas (staging or permanent); names never contain separators.
type FileStorage interface {
	Write(ctx context.Context, dir, name string, content io.Reader) error
	Read(ctx context.Context, dir, name string) (io.ReadCloser, error)
	Move(ctx context.Context, srcDir, srcName, dstDir, dstName string) error
	Delete(ctx context.Context, dir, name string) error
	Exists(ctx context.Context, dir, name string) (bool, error)
}

// New selects the storage backend from configuration. Local disk is the
// default; S3 is opt-in.
func New(cfg *config.Config, ot otel.Otel) FileStorage {
	if cfg.Storage.Driver == DriverS3 {
		log.Info().Str("bucket", cfg.External.S3.BucketName).Msg("Using S3 file storage")

		return NewS3Storage(cfg, ot)
	}

	log.Info().
		Str("staging", cfg.Storage.StagingDir).
		Str("documents", cfg.Storage.DocumentsDir).
		Msg("Using local file storage")

	return NewLocalStorage(ot)
}
