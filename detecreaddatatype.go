package c14misc

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

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

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType checks the leading bytes of b against the signatures of the
// compression formats that calibration curves and sample tables are commonly
// distributed in. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(b []byte) DataType {
	if len(b) == 0 {
		return DataTypeInvalid
	}

Outer:
	for dt, sig := range byteCodeSigs {
		if len(b) < len(sig) {
			continue
		}
		for position := range sig {
			if b[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompress returns the decompressed contents of b if b is compressed
// in a known format, or b itself otherwise.
//
// xlsx workbooks are zip archives too, so this must not be applied to
// spreadsheet inputs.
func MaybeDecompress(b []byte) ([]byte, error) {
	var r io.Reader
	var err error

	switch DetectDataType(b) {
	case DataTypeGzip:
		r, err = gzip.NewReader(bytes.NewReader(b))
	case DataTypeZip:
		// Only the first entry of a zip archive is read
		zr := zipstream.NewReader(bytes.NewReader(b))
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(bytes.NewReader(b))
	case DataTypeXZ:
		r, err = xz.NewReader(bytes.NewReader(b), 0)
	case DataTypeZ:
		// Unix compress (LZW) output is recognized, but there is no decoder
		// for it
		return nil, fmt.Errorf("input is compressed with Unix compress (.Z), which is not supported. Recompress it with gzip")
	default:
		// No data type detected. For now, we assume this is uncompressed.
		return b, nil
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
