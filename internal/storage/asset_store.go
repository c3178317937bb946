// Package storage persists uploaded binary assets on the local filesystem.
//
// Each upload is written under a freshly generated name inside a flat content
// root and is addressed afterwards by the reference path returned from Store.
// Nothing links an asset to a profile; a profile only carries the reference
// string it was given.
package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErr "github.com/arcians/profile-registry/pkg/errors"
	"github.com/arcians/profile-registry/pkg/logger"
)

// URLPrefix is the path under which stored assets are served.
const URLPrefix = "/uploads"

// AssetStore writes blobs and hands back reference paths.
type AssetStore interface {
	Store(ctx context.Context, content io.Reader, originalFilename string) (string, error)
	Root() string
}

// LocalAssetStore keeps assets in a single directory.
type LocalAssetStore struct {
	root    string
	newName func() string
}

// NewLocalAssetStore creates root if needed.
func NewLocalAssetStore(root string) (*LocalAssetStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "create upload dir failed")
	}
	return &LocalAssetStore{root: root, newName: uuid.NewString}, nil
}

var _ AssetStore = (*LocalAssetStore)(nil)

func (s *LocalAssetStore) Root() string { return s.root }

// Store copies content to <root>/<uuid><ext> and returns /uploads/<uuid><ext>.
// A file left half written by a failed copy is not removed.
func (s *LocalAssetStore) Store(_ context.Context, content io.Reader, originalFilename string) (string, error) {
	name := s.newName() + Extension(originalFilename)
	f, err := os.OpenFile(filepath.Join(s.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "create asset file failed")
	}

	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "write asset failed").WithMeta("name", name)
	}

	logger.L().Info("asset stored",
		zap.String("name", name),
		zap.Int64("bytes", n),
		zap.String("original_filename", originalFilename),
	)
	return path.Join(URLPrefix, name), nil
}

// Extension returns ".ext" for the text after the last dot of the file's base
// name, or "" when there is no usable extension: no dot, nothing after the
// dot, or characters outside [A-Za-z0-9_-].
func Extension(filename string) string {
	base := filename
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 || dot == len(base)-1 {
		return ""
	}
	ext := base[dot+1:]
	for _, r := range ext {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return ""
		}
	}
	return "." + ext
}
