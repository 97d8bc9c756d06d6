package pdbcli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/index"
	"github.com/andrew-torda/pdbstruct/pkg/summary"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func indexFlag(cmd *cobra.Command) {
	cmd.Flags().String("index", "", "index database (default from config, pdbstruct.sqlite)")
}

func (a *app) indexCmd() *cobra.Command {
	var maxFile int
	cmd := &cobra.Command{
		Use:   "index FILE...",
		Short: "Store summaries of structure files in the index",
		Long: `index reads each file and stores its summary in an SQLite
database. A structure already there is replaced. All rows written by
one run share a batch id. Directories are searched for structure
files, so a whole mirror of the archive can be indexed.`,
		Args: needArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			names, err := structureFiles(args, maxFile)
			if err != nil {
				return fail(err)
			}
			files, err := a.readFiles(ctx, cmd.ErrOrStderr(), names)
			if err != nil {
				return fail(err)
			}
			path := a.cfg.Index.Path
			ix, err := index.Open(ctx, path)
			if err != nil {
				return fail(IndexOpenError(path, err))
			}
			defer ix.Close()

			sums := make([]*summary.Summary, len(files))
			for i, l := range files {
				sums[i] = l.summary()
			}
			batch := index.NewBatch()
			if err = ix.PutAll(ctx, batch, sums); err != nil {
				return fail(IndexWriteError(path, err))
			}
			total, err := ix.Count(ctx)
			if err != nil {
				return fail(IndexQueryError(path, err))
			}
			slog.Info("indexed structures", "index", path, "batch", batch, "count", len(sums))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s structures in %s, batch %s, %s in total\n",
				humanize.Comma(int64(len(sums))), path, batch, humanize.Comma(int64(total)))
			if err != nil {
				return fail(WriteOutputError("report", err))
			}
			return nil
		},
	}
	indexFlag(cmd)
	maxFileFlag(cmd, &maxFile)
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search WORD",
		Short: "Find indexed structures by keyword or organism",
		Long: `search lists the structures in the index whose keywords or
source organisms contain WORD, ignoring case.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := a.cfg.Index.Path
			ix, err := index.Open(ctx, path)
			if err != nil {
				return fail(IndexOpenError(path, err))
			}
			defer ix.Close()
			entries, err := ix.Search(ctx, args[0])
			if err != nil {
				return fail(IndexQueryError(path, err))
			}
			w := cmd.OutOrStdout()
			for _, e := range entries {
				s := e.Summary
				_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, orDash(s.Method),
					orDash(strings.Join(s.Organisms, "; ")), s.File)
				if err != nil {
					return fail(WriteOutputError("search results", err))
				}
			}
			slog.Debug("searched index", "word", args[0], "found", len(entries))
			return nil
		},
	}
	indexFlag(cmd)
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
