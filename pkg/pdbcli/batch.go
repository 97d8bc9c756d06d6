package pdbcli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/andrew-torda/pdbstruct/pdb"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
	"github.com/andrew-torda/pdbstruct/pkg/summary"
	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
)

// loaded is one file that was read
type loaded struct {
	file     string
	size     int64
	s        *model.Structure
	warnings []warn.Warning
}

func (l loaded) summary() *summary.Summary {
	sum := summary.FromStructure(l.s, l.warnings)
	sum.File = l.file
	sum.FileSize = l.size
	return sum
}

// readOne reads a file and logs what came of it
func (a *app) readOne(file string) (loaded, error) {
	s, warnings, err := pdb.ReadStructure(file, a.cfg.ReadOptions())
	if err != nil {
		return loaded{}, ReadStructureError(file, err)
	}
	var size int64
	if fi, err := os.Stat(file); err == nil {
		size = fi.Size()
	}
	for _, w := range warnings {
		slog.Warn(w.String(), "file", file, "line", w.Line())
	}
	slog.Info("read structure", "file", file, "id", s.ID,
		"atoms", len(s.Atoms), "residues", len(s.Residues), "warnings", len(warnings))
	return loaded{file: file, size: size, s: s, warnings: warnings}, nil
}

// readFiles reads files with at most cfg.Jobs of them at once. Results
// are in the order of files. The first failure stops the rest.
func (a *app) readFiles(ctx context.Context, stderr io.Writer, files []string) ([]loaded, error) {
	res := make([]loaded, len(files))
	var bar *pb.ProgressBar
	if a.progress && len(files) > 1 {
		bar = pb.Full.New(len(files))
		bar.SetWriter(stderr)
		bar.Set("prefix", "Reading ")
		bar.Set(pb.CleanOnFinish, true)
		bar.Start()
		defer bar.Finish()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Jobs)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := a.readOne(f)
			if err != nil {
				return err
			}
			res[i] = l
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
