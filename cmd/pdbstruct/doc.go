// 18 Oct 2026
/*

pdbstruct reads protein and nucleic acid structures in PDB, PQR or PDBx/mmCIF format and tells you what is in them. Files can be gzipped. If the extension (.pdb, .ent, .pdb1, .pqr, .cif, .mmcif) does not give the format away, the first lines of the file are looked at.

Usage:
 pdbstruct [global flags] command [flags] args

Commands:
  summary FILE...
    	Chains, residues, atoms, secondary structure, modified residues
    	and header information for each file. -f yaml gives yaml instead
    	of text.
  subset FILE --chains A,B
    	Rebuild the structure from some chains only and summarise that.
  contacts FILE [--cutoff 8]
    	Residue pairs whose C-alpha atoms are within cutoff angstrom.
  index FILE... [--index db.sqlite]
    	Store summaries in an SQLite file.
  search WORD [--index db.sqlite]
    	Structures in the index with WORD in their keywords or organisms.
  fetch ID... [--site rcsb|pdbe|pdbj] [--out dir]
    	Download entries as mmCIF.
  resid TEXT...
    	Check residue identifiers like "143 B" or "175 A i:B".

Global flags:
  -c file
    	Config file. Without it, pdbstruct.yaml is looked for in the
    	current directory and the user config directory.
  -j N
    	Read N files at the same time. Default is the number of CPUs.
  --all-altlocs
    	Keep every alternate location. Normally only the first is kept.
  --log-level debug|info|warn|error

Anything in the config file can also be set with an environment
variable, for example PDBSTRUCT_LOG_LEVEL=debug or PDBSTRUCT_JOBS=4.
Flags win over the environment, which wins over the file.

Reading a file is not all or nothing. Odd records, duplicate atoms and
CONECT records joining atoms far apart are warnings and you still get
a structure. A file that cannot be parsed at all gives an error with
the line number.

Only the first model of an NMR file is read.

*/
package main
