package pdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/ingest"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
	"github.com/andrew-torda/pdbstruct/pdb/zwrap"
)

// Site is one of the protein data bank servers
type Site int

const (
	RCSB Site = iota
	PDBe
	PDBj
	nSites
)

func (s Site) String() string {
	switch s {
	case RCSB:
		return "rcsb"
	case PDBe:
		return "pdbe"
	case PDBj:
		return "pdbj"
	}
	return "unknown"
}

// ParseSite takes a site name, ignoring case
func ParseSite(name string) (Site, error) {
	for s := RCSB; s < nSites; s++ {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return RCSB, fmt.Errorf("unknown site %q, want rcsb, pdbe or pdbj", name)
}

type source struct {
	urlBase   string
	urlSuffix string
	gzipped   bool
}

var sources = [nSites]source{
	RCSB: {"https://files.rcsb.org/download/", ".cif.gz", true},
	PDBe: {"https://www.ebi.ac.uk/pdbe/entry-files/download/", ".cif", false},
	PDBj: {"https://ftp.pdbj.org/mmcif/", ".cif.gz", true},
}

// Fetcher downloads entries. The zero value uses http.DefaultClient
// and the real servers.
type Fetcher struct {
	Client  *http.Client
	BaseURL string // replaces the site's address when set
}

// URL is where an entry comes from
func (f *Fetcher) URL(acqCode string, site Site) string {
	src := sources[site%nSites]
	base := src.urlBase
	if f.BaseURL != "" {
		base = strings.TrimSuffix(f.BaseURL, "/") + "/"
	}
	return base + strings.ToLower(acqCode) + src.urlSuffix
}

// Fetch is given a four letter pdb code. It goes to the protein data
// bank and returns a reader of the mmCIF file.
// If you give a site that is too big, we use a modulo to wrap
// it around, rather than generate an error. This makes it easier to
// cycle through them.
// Sites return normal or gzipped data, but if it is a gzipping site, we
// call zwrap to decompress and return that as the reader.
func (f *Fetcher) Fetch(ctx context.Context, acqCode string, site Site) (io.ReadCloser, error) {
	if len(acqCode) != 4 {
		return nil, fmt.Errorf("acq code should be four char, not %q", acqCode)
	}
	if site < 0 {
		site = -site
	}
	url := f.URL(acqCode, site)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("wanted %s using %s, got %s", acqCode, url, resp.Status)
	}
	if !sources[site%nSites].gzipped {
		return resp.Body, nil
	}
	rdr, err := zwrap.Wrap(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("decompressing %s: %w", url, err)
	}
	return rdr, nil
}

// FetchStructure downloads an entry and reads it
func (f *Fetcher) FetchStructure(ctx context.Context, acqCode string, site Site,
	opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	rdr, err := f.Fetch(ctx, acqCode, site)
	if err != nil {
		return nil, nil, err
	}
	defer rdr.Close()
	return Read(rdr, strings.ToLower(acqCode), FormatMmcif, opts)
}

// Fetch uses the default Fetcher
func Fetch(ctx context.Context, acqCode string, site Site) (io.ReadCloser, error) {
	return (&Fetcher{}).Fetch(ctx, acqCode, site)
}
