// Package dataset provides the data-source abstraction over the five-table
// snapshot: providers (local files or uploaded streams), upload sessions and
// a load-once snapshot cache.
package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	store "github.com/de-tools/commerce-atlas/pkg/store/csv"
)

// Provider yields one loadable source set. Key identifies the source-set;
// the cache loads each key at most once until it is invalidated.
type Provider interface {
	Key() string
	Load() (*domain.Dataset, error)
}

// LocalFiles loads the snapshot from the conventional file names inside a
// directory.
type LocalFiles struct {
	Dir string
}

func (p LocalFiles) Key() string {
	return "local:" + filepath.Clean(p.Dir)
}

func (p LocalFiles) Load() (*domain.Dataset, error) {
	readers := map[string]io.Reader{}
	for _, name := range store.SourceNames {
		path := filepath.Join(p.Dir, store.FileNames[name])
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &store.MissingSourceError{Source: name}
			}
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		readers[name] = f
	}
	return store.Load(sources(readers))
}

// UploadedStreams loads the snapshot from in-memory uploaded content, all
// five sources present simultaneously.
type UploadedStreams struct {
	Content map[string][]byte // keyed by source name
}

// Key fingerprints the uploaded content, so re-uploading identical sources
// resolves to the same cache entry.
func (p UploadedStreams) Key() string {
	h := sha256.New()
	for _, name := range store.SourceNames {
		h.Write([]byte(name))
		h.Write(p.Content[name])
	}
	return "upload:" + hex.EncodeToString(h.Sum(nil)[:8])
}

func (p UploadedStreams) Load() (*domain.Dataset, error) {
	readers := map[string]io.Reader{}
	for name, content := range p.Content {
		readers[name] = bytes.NewReader(content)
	}
	return store.Load(sources(readers))
}

func sources(readers map[string]io.Reader) store.Sources {
	return store.Sources{
		Orders:    readers[store.SourceOrders],
		Items:     readers[store.SourceItems],
		Payments:  readers[store.SourcePayments],
		Products:  readers[store.SourceProducts],
		Customers: readers[store.SourceCustomers],
	}
}
