package pdb_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrew-torda/pdbstruct/pdb"
	"github.com/andrew-torda/pdbstruct/pdb/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer serves tinyCif as 1tny.cif and gzipped as 1tny.cif.gz
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(tinyCif))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	mux := http.NewServeMux()
	mux.HandleFunc("/1tny.cif", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, tinyCif)
	})
	mux.HandleFunc("/1tny.cif.gz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write(gz.Bytes())
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSites(t *testing.T) {
	srv := newServer(t)
	f := &pdb.Fetcher{Client: srv.Client(), BaseURL: srv.URL}
	for _, site := range []pdb.Site{pdb.RCSB, pdb.PDBe, pdb.PDBj} {
		rdr, err := f.Fetch(context.Background(), "1TNY", site)
		require.NoError(t, err, site.String())
		c, err := io.ReadAll(rdr)
		require.NoError(t, err)
		assert.NoError(t, rdr.Close())
		assert.Equal(t, tinyCif, string(c), site.String())
	}
}

func TestFetchStructure(t *testing.T) {
	srv := newServer(t)
	f := &pdb.Fetcher{Client: srv.Client(), BaseURL: srv.URL}
	s, _, err := f.FetchStructure(context.Background(), "1tny", pdb.RCSB, ingest.Options{})
	require.NoError(t, err)
	assert.Equal(t, "1tny", s.ID)
	assert.Len(t, s.Atoms, 2)
}

func TestFetchErrors(t *testing.T) {
	srv := newServer(t)
	f := &pdb.Fetcher{Client: srv.Client(), BaseURL: srv.URL}
	_, err := f.Fetch(context.Background(), "1tnyx", pdb.RCSB)
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), "9zzz", pdb.PDBe)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, "1tny", pdb.PDBe)
	assert.Error(t, err)
}

func TestSiteNames(t *testing.T) {
	s, err := pdb.ParseSite("PDBe")
	require.NoError(t, err)
	assert.Equal(t, pdb.PDBe, s)
	_, err = pdb.ParseSite("nowhere")
	assert.Error(t, err)

	f := &pdb.Fetcher{}
	assert.Equal(t, "https://files.rcsb.org/download/1abc.cif.gz", f.URL("1ABC", pdb.RCSB))
	assert.Equal(t, "https://www.ebi.ac.uk/pdbe/entry-files/download/1abc.cif", f.URL("1abc", pdb.PDBe))
	assert.Equal(t, f.URL("1abc", pdb.RCSB), f.URL("1abc", pdb.Site(3)))
}
