// Package freyjasummary holds the input plumbing shared by the freyjasummary
// tools: opening local or Google Storage paths, transparently decompressing
// them, and sniffing delimiters of previously written tables.
package freyjasummary

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// DefaultInput is the aggregated file name written by `freyja aggregate`.
const DefaultInput = "aggregated-freyja.tsv"

// ErrInputNotFound is returned when the input path does not exist or cannot
// be read.
var ErrInputNotFound = errors.New("input not found")

// OpenInput reads the whole of path into memory, decompressing it if
// necessary. gs:// paths require a non-nil client. The underlying handle is
// closed before returning.
func OpenInput(path string, client *storage.Client) ([]byte, error) {
	if IsGoogleStoragePath(path) && client == nil {
		return nil, fmt.Errorf("%w: %s: a storage client is required for gs:// paths", ErrInputNotFound, path)
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, _, err := MaybeOpenSeekerFromGoogleStorage(path, client)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, _, err := MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return data, nil
}
