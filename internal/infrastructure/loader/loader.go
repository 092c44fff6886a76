package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/miorlan/yamlmodule/internal/domain"
	"github.com/viant/afs"
)

// FileLoader реализует загрузку файлов через afs (локальный диск, mem://, облачные хранилища)
type FileLoader struct {
	fs afs.Service
}

// NewFileLoader создает новый FileLoader поверх стандартного afs.Service
func NewFileLoader() *FileLoader {
	return NewFileLoaderWithService(afs.New())
}

// NewFileLoaderWithService создает FileLoader поверх переданного afs.Service
func NewFileLoaderWithService(fs afs.Service) *FileLoader {
	return &FileLoader{fs: fs}
}

var _ domain.FileLoader = (*FileLoader)(nil)

// Load загружает файл целиком
func (fl *FileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	// Проверяем контекст
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	location := normalize(path)
	exists, err := fl.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", location, err)
	}
	if !exists {
		return nil, &domain.ErrFileNotFound{Path: path}
	}

	data, err := fl.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

// List возвращает отсортированные имена файлов каталога dir, подходящие под pattern
func (fl *FileLoader) List(ctx context.Context, dir string, pattern string) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	objects, err := fl.fs.List(ctx, normalize(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, object := range objects {
		// afs включает сам каталог первым элементом
		if object.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, object.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			names = append(names, object.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// normalize делает локальные пути абсолютными; URL со схемой не трогаем
func normalize(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
