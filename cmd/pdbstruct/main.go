package main

import (
	"os"

	"github.com/andrew-torda/pdbstruct/pkg/pdbcli"
)

func main() {
	os.Exit(pdbcli.Execute())
}
