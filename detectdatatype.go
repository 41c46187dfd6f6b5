package freyjasummary

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// ErrUnsupportedCompression is returned for streams whose compression is
// recognized but cannot be decoded, such as Unix compress (.Z) files.
var ErrUnsupportedCompression = errors.New("unsupported compression")

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "Z"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Streams shorter than the longest
// signature (including empty ones) are compared on the bytes that exist.
// Byte code signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser sniffs the first bytes of f, rewinds it, and
// wraps it in the matching decompressor. Closing the returned reader never
// closes f; the caller still owns it.
func MaybeDecompressReadCloser(f io.ReadSeeker) (io.ReadCloser, DataType, error) {
	dt, err := DetectDataType(f)
	if err != nil {
		return nil, dt, err
	}

	// Reset the original reader before handing it to a decompressor
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, dt, err
	}

	var rc io.ReadCloser
	switch dt {
	case DataTypeGzip:
		rc, err = gzip.NewReader(f)
	case DataTypeZip:
		// Only the first entry of the archive is read
		zr := zipstream.NewReader(f)
		if _, err = zr.Next(); err == nil {
			rc = &readCloserFaker{zr}
		}
	case DataTypeBZip2:
		rc = &readCloserFaker{bzip2.NewReader(f)}
	case DataTypeXZ:
		var reader *xz.Reader
		reader, err = xz.NewReader(f, 0)
		if err == nil {
			rc = &readCloserFaker{reader}
		}
	case DataTypeZ:
		// compress/lzw cannot decode the variable-width codes written by
		// compress(1)
		err = fmt.Errorf("%w: %s", ErrUnsupportedCompression, dt)
	default:
		// No data type detected. For now, we assume this is uncompressed.
		rc = io.NopCloser(f)
	}

	return rc, dt, err
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
