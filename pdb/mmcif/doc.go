// Package mmcif reads a file in mmcif/cif format and builds a structure.
//
// Reading mmcif files is interesting because they are so big,
// but we do not want much information from them.
// If one looks at the format there are some features that make it
// simpler.
//  1. The first character on the line is decisive. If it is a data item
//     it has to be a "_". A loop starts with loop_ and a # ends a group
//     of data items.
//  2. The category is the part of the name before the first dot. We keep
//     a table of the categories we want and jump over the rest.
//  3. The PDB always puts one atom on a line, in the same column order.
//     We do not rely on that, but there is a fast path for lines
//     without quotes.
//
// Multi-line fields, between lines starting with ;, are read with the
// newlines kept and surrounding space removed.
//
// Notes about the mmcif format...
// A question mark, ?, means a missing value.
// A dot, ., means not appropriate or deliberately left out.
// Quoted, they are ordinary values.
// What is what..
// There are entities and chains.
// Entities can be anything - protein, ligands.. There is a mapping back to
// old pdb chains, according to http://mmcif.wwpdb.org/docs/pdb_to_pdbx_correspondences.html, that is called,
// _atom_site.auth_asym_id
// We use the auth_ names for chains, residue numbers and atoms, so residue
// identifiers match the ones in old style PDB files.
//
// Only the first model and the first data_ block are read. Both are
// reported as warnings, not errors.
package mmcif
