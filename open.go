// Package c14misc holds the file helpers shared by the radiocarbon tools:
// reading local or gs:// inputs, decompression, and delimiter detection.
package c14misc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// NeedsStorageClient reports whether any of the paths refer to Google Storage.
func NeedsStorageClient(paths ...string) bool {
	for _, p := range paths {
		if strings.HasPrefix(p, "gs://") {
			return true
		}
	}
	return false
}

// NewStorageClientIfNeeded returns a Google Storage client with default
// credentials if any of the paths is a gs:// URL, and nil otherwise.
func NewStorageClientIfNeeded(paths ...string) (*storage.Client, error) {
	if !NeedsStorageClient(paths...) {
		return nil, nil
	}

	client, err := storage.NewClient(context.Background())
	if err != nil {
		return nil, pfx.Err(err)
	}

	return client, nil
}

// MaybeReadFromGoogleStorage reads the entire file at path. If path is a
// gs://bucket/object URL, the object is fetched with client, which must then
// be non-nil. Otherwise path is read from the local filesystem, after
// expanding a leading ~.
func MaybeReadFromGoogleStorage(path string, client *storage.Client) ([]byte, error) {
	if !strings.HasPrefix(path, "gs://") {
		b, err := os.ReadFile(ExpandHome(path))
		if err != nil {
			return nil, pfx.Err(err)
		}
		return b, nil
	}

	if client == nil {
		return nil, pfx.Err(fmt.Errorf("%s: a storage client is required for gs:// paths", path))
	}

	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}
	bucketName := pathParts[0]
	pathName := pathParts[1]

	rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(context.Background())
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}
	defer rdr.Close()

	b, err := io.ReadAll(rdr)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return b, nil
}
