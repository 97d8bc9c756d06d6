package pdbcli

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb"
	"github.com/spf13/cobra"
)

func (a *app) fetchCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "fetch ID...",
		Short: "Download entries from the protein data bank",
		Long: `fetch downloads the mmCIF file of each four character entry id,
decompresses it and writes it as ID.cif in the output directory. Each
file is read back to check it.`,
		Args: needArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fail(WriteOutputError(outDir, err))
			}
			f := &pdb.Fetcher{
				Client:  &http.Client{Timeout: a.cfg.Fetch.Timeout},
				BaseURL: a.baseURL,
			}
			for _, id := range args {
				fname, err := a.fetchOne(cmd.Context(), f, id, outDir)
				if err != nil {
					return fail(err)
				}
				l, err := a.readOne(fname)
				if err != nil {
					return fail(err)
				}
				slog.Info("fetched entry", "id", id, "site", a.cfg.Fetch.Site, "file", fname,
					"bytes", l.size)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&outDir, "out", "o", ".", "directory for downloaded files")
	fl.String("site", "", "rcsb, pdbe or pdbj (default from config, rcsb)")
	fl.Duration("timeout", 0, "give up on a download after this long (default from config, 30s)")
	fl.StringVar(&a.baseURL, "base-url", "", "download from this server instead")
	fl.MarkHidden("base-url")
	return cmd
}

// fetchOne downloads id into dir and gives the file name
func (a *app) fetchOne(ctx context.Context, f *pdb.Fetcher, id, dir string) (string, error) {
	rdr, err := f.Fetch(ctx, id, a.cfg.Site())
	if err != nil {
		return "", FetchError(id, err)
	}
	defer rdr.Close()
	fname := filepath.Join(dir, strings.ToLower(id)+".cif")
	fp, err := os.Create(fname)
	if err != nil {
		return "", WriteOutputError(fname, err)
	}
	if _, err = io.Copy(fp, rdr); err != nil {
		fp.Close()
		return "", FetchError(id, err)
	}
	if err = fp.Close(); err != nil {
		return "", WriteOutputError(fname, err)
	}
	return fname, nil
}
