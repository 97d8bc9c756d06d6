package pdbcli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/andrew-torda/pdbstruct/pdb"
)

// structureFiles replaces each directory in args by the structure files
// below it, like a divided mirror of the archive (ab/1abc.cif.gz, ...).
// Files named on the command line are kept whatever their name. We stop
// after maxFile files, but if maxFile <= 0, we take everything.
func structureFiles(args []string, maxFile int) ([]string, error) {
	var ret []string
	full := func() bool { return maxFile > 0 && len(ret) >= maxFile }
	for _, arg := range args {
		if full() {
			break
		}
		fi, err := os.Stat(arg)
		if err != nil || !fi.IsDir() {
			ret = append(ret, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return err
			case full():
				return fs.SkipAll
			case d.IsDir():
				return nil
			case pdb.FormatFromName(p) != pdb.FormatUnknown:
				ret = append(ret, p)
			}
			return nil
		})
		if err != nil {
			return nil, ReadStructureError(arg, fmt.Errorf("listing directory: %w", err))
		}
	}
	return ret, nil
}
