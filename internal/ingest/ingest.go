// Package ingest obtains tabular datasets from uploads and remote URLs.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/RMahshie/tabled/internal/dataset"
)

// DefaultMaxBytes caps ingested file size at 20 MiB.
const DefaultMaxBytes = 20 << 20

// Ingestor decodes datasets from readers and URLs. The HTTP client is a
// plain GET with default transport semantics; no timeout override is
// exposed.
type Ingestor struct {
	maxBytes int64
	client   *http.Client
}

func New(maxBytes int64) *Ingestor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Ingestor{maxBytes: maxBytes, client: http.DefaultClient}
}

// Loaded is an ingested dataset plus the raw bytes it was decoded from,
// kept for archival.
type Loaded struct {
	Name   string
	Format dataset.Format
	Table  *dataset.Table
	Raw    []byte
}

// FromReader decodes an uploaded file, inferring the format from the file
// name extension.
func (g *Ingestor) FromReader(name string, r io.Reader) (*Loaded, error) {
	format, ok := dataset.FormatFromPath(name)
	if !ok {
		return nil, &dataset.IngestionError{Source: name,
			Err: fmt.Errorf("unsupported file type; expected .csv, .xlsx or .parquet")}
	}
	data, err := io.ReadAll(io.LimitReader(r, g.maxBytes+1))
	if err != nil {
		return nil, &dataset.IngestionError{Source: name, Err: err}
	}
	if int64(len(data)) > g.maxBytes {
		return nil, &dataset.IngestionError{Source: name,
			Err: fmt.Errorf("file exceeds the %d byte limit", g.maxBytes)}
	}
	t, err := dataset.Decode(format, data)
	if err != nil {
		return nil, &dataset.IngestionError{Source: name, Err: err}
	}
	return &Loaded{Name: name, Format: format, Table: t, Raw: data}, nil
}

// FromURL fetches a remote file with a single unauthenticated GET. The URL
// path must end in a supported extension.
func (g *Ingestor) FromURL(ctx context.Context, rawURL string) (*Loaded, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &dataset.IngestionError{Source: rawURL, Err: fmt.Errorf("invalid http(s) URL")}
	}
	name := path.Base(u.Path)
	if _, ok := dataset.FormatFromPath(u.Path); !ok {
		return nil, &dataset.IngestionError{Source: rawURL,
			Err: fmt.Errorf("URL path must end in .csv, .xlsx or .parquet")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &dataset.IngestionError{Source: rawURL, Err: err}
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &dataset.IngestionError{Source: rawURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &dataset.IngestionError{Source: rawURL,
			Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return g.FromReader(name, resp.Body)
}
