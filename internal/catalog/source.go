package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrCatalogRead indicates the catalog backing file could not be read.
	ErrCatalogRead = errors.New("catalog: read failed")
	// ErrCatalogInvalid indicates the catalog payload is malformed.
	ErrCatalogInvalid = errors.New("catalog: invalid products")
	// ErrCatalogFetch indicates the remote catalog could not be retrieved.
	ErrCatalogFetch = errors.New("catalog: fetch failed")
)

// Provider returns the ordered product listing.
type Provider interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// FileSource reads the catalog from a JSON array on disk.
type FileSource struct {
	Path string
}

// Fetch implements Provider.
func (s FileSource) Fetch(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogRead, err)
	}
	defer f.Close()
	return Decode(f)
}

// Ping reports whether the backing file is readable.
func (s FileSource) Ping(_ context.Context) error {
	info, err := os.Stat(s.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogRead, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrCatalogRead, s.Path)
	}
	return nil
}

// Decode parses and validates a JSON array of products.
func Decode(r io.Reader) ([]Product, error) {
	var products []Product
	dec := json.NewDecoder(r)
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrCatalogInvalid)
	}
	if products == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrCatalogInvalid)
	}
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", ErrCatalogInvalid, i, err)
		}
	}
	return products, nil
}
