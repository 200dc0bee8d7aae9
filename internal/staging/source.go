package staging

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/doc-scanner/client/internal/models"
)

// pathSource opens a file on disk lazily.
type pathSource struct {
	path string
}

func (p pathSource) Open() (io.ReadCloser, error) {
	return os.Open(p.path)
}

// FromPath stages a file from the local filesystem. The file is
// stat'ed for its size but not read.
func FromPath(path string) (models.StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.StagedFile{}, fmt.Errorf("staging %s: %w", path, err)
	}
	if info.IsDir() {
		return models.StagedFile{}, fmt.Errorf("staging %s: is a directory", path)
	}

	return models.StagedFile{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Source:      pathSource{path: path},
	}, nil
}

// bytesSource serves an in-memory buffer, used for files received
// through the web UI.
type bytesSource struct {
	data []byte
}

func (b bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// FromBytes stages an in-memory file.
func FromBytes(name, contentType string, data []byte) models.StagedFile {
	return models.StagedFile{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		Source:      bytesSource{data: data},
	}
}
