package fetcher

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/rotisserie/eris"
)

// maxArchiveEntrySize bounds decompression of a single archive entry.
// Monthly registry exports stay well under this.
const maxArchiveEntrySize = 1 << 30

// ReadArchive extracts every file of an in-memory ZIP archive, keyed by
// entry name. Directories are skipped. Uploads are processed without
// touching disk.
func ReadArchive(data []byte) (map[string][]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}

	files := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readArchiveEntry(f)
		if err != nil {
			return nil, err
		}
		files[f.Name] = content
	}
	return files, nil
}

// IsArchive reports whether the data starts with a ZIP signature.
func IsArchive(data []byte) bool {
	return len(data) >= 4 && bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

func readArchiveEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, eris.Wrapf(err, "zip: open entry %q", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	content, err := io.ReadAll(io.LimitReader(rc, maxArchiveEntrySize))
	if err != nil {
		return nil, eris.Wrapf(err, "zip: read entry %q", f.Name)
	}
	if len(content) == maxArchiveEntrySize {
		return nil, eris.Errorf("zip: entry %q exceeds size limit", f.Name)
	}
	return content, nil
}
