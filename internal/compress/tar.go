package compress

import (
	"archive/tar"
	"errors"
	"io"
)

// TarReader implements io.ReadCloser over the first JSON file of a TAR stream.
type TarReader struct {
	current io.Reader
	name    string
	eof     bool
}

// NewTarReader advances the stream to its first regular .json entry.
func NewTarReader(r io.Reader) (*TarReader, error) {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Typeflag == tar.TypeReg && isJSON(header.Name) {
			return &TarReader{current: tr, name: header.Name}, nil
		}
	}

	return nil, ErrNoJSON
}

func (t *TarReader) Name() string {
	return t.name
}

func (t *TarReader) Read(p []byte) (int, error) {
	if t.eof {
		return 0, io.EOF
	}
	n, err := t.current.Read(p)
	if err == io.EOF {
		t.eof = true
	}
	return n, err
}

// Close is a no-op; the underlying stream belongs to the caller.
func (t *TarReader) Close() error {
	return nil
}
