package compress

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
)

// ErrNoJSON is returned when an archive holds no .json entry.
var ErrNoJSON = errors.New("json file not found in the archive")

// ZipReader implements io.ReadCloser for reading the first JSON file of a ZIP archive.
type ZipReader struct {
	current io.ReadCloser
	name    string
}

// NewZipReader buffers the archive and opens its first .json entry.
func NewZipReader(r io.Reader) (*ZipReader, error) {
	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if isJSON(f.Name) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			return &ZipReader{current: rc, name: f.Name}, nil
		}
	}

	return nil, ErrNoJSON
}

// Name returns the archive entry being read.
func (z *ZipReader) Name() string {
	return z.name
}

func (z *ZipReader) Read(p []byte) (int, error) {
	return z.current.Read(p)
}

func (z *ZipReader) Close() error {
	return z.current.Close()
}

func isJSON(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".json")
}
