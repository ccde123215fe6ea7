package save

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/qagen/qagen/internal/platform/artifact"
)

// DirSaver uploads artifacts under a base URL. Any scheme registered with
// afs works (file://, mem://, s3://, gs://).
type DirSaver struct {
	fs      afs.Service
	baseURL string
}

// NewDirSaver creates a saver writing beneath baseURL. A plain path is
// treated as a local directory.
func NewDirSaver(fs afs.Service, baseURL string) *DirSaver {
	return &DirSaver{fs: fs, baseURL: url.Normalize(baseURL, file.Scheme)}
}

// Location returns the URL the artifact will be written to.
func (s *DirSaver) Location(a *artifact.Artifact) string {
	return url.Join(s.baseURL, a.FileName)
}

func (s *DirSaver) Save(ctx context.Context, a *artifact.Artifact) error {
	return upload(ctx, s.fs, s.Location(a), a)
}

func upload(ctx context.Context, fs afs.Service, dest string, a *artifact.Artifact) error {
	if err := fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewReader(a.Data)); err != nil {
		return fmt.Errorf("upload %s: %w", dest, err)
	}
	return nil
}
