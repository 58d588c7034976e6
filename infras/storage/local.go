package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"autoecole/infras/otel"
	"autoecole/shared/constant"
)

type localStorage struct {
	otel otel.Otel
}

// NewLocalStorage returns a FileStorage backed by the local filesystem.
func NewLocalStorage(ot otel.Otel) FileStorage {
	return &localStorage{otel: ot}
}

func (l *localStorage) Write(ctx context.Context, dir, name string, content io.Reader) (err error) {
	_, scope := l.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Write")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFileName, name)

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	target, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer target.Close()

	if _, err = io.Copy(target, content); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (l *localStorage) Read(ctx context.Context, dir, name string) (reader io.ReadCloser, err error) {
	_, scope := l.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Read")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFileName, name)

	reader, err = os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return reader, nil
}

func (l *localStorage) Move(ctx context.Context, srcDir, srcName, dstDir, dstName string) (err error) {
	_, scope := l.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Move")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFileName, srcName)

	if err = os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	if err = os.Rename(filepath.Join(srcDir, srcName), filepath.Join(dstDir, dstName)); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}

	return nil
}

func (l *localStorage) Delete(ctx context.Context, dir, name string) (err error) {
	_, scope := l.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFileName, name)

	err = os.Remove(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (l *localStorage) Exists(ctx context.Context, dir, name string) (exists bool, err error) {
	_, scope := l.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Exists")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFileName, name)

	_, err = os.Stat(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	return true, nil
}
