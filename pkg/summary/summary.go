// Package summary condenses an assembled structure into one record
// that can be printed or stored.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// dateLayout is how dates are written in summaries and the index
const dateLayout = "2006-01-02"

// Summary is what one structure boils down to
type Summary struct {
	ID                string   `yaml:"id"`
	File              string   `yaml:"file,omitempty"`
	FileSize          int64    `yaml:"file_size,omitempty"`
	Component         bool     `yaml:"component,omitempty"`
	Resolution        *float64 `yaml:"resolution,omitempty"`
	Method            string   `yaml:"method,omitempty"`
	Released          string   `yaml:"released,omitempty"`
	LatestRevision    string   `yaml:"latest_revision,omitempty"`
	PolymerType       string   `yaml:"polymer_type"`
	Stoichiometry     string   `yaml:"stoichiometry,omitempty"`
	StoichiometryType string   `yaml:"stoichiometry_type"`
	WeightKDa         float64  `yaml:"weight_kda"`
	Chains            []string `yaml:"chains"`
	Residues          int      `yaml:"residues"`
	Atoms             int      `yaml:"atoms"`
	Bonds             int      `yaml:"bonds"`
	Helices           int      `yaml:"helices"`
	Sheets            int      `yaml:"sheets"`
	Modified          []string `yaml:"modified,omitempty"`
	Keywords          []string `yaml:"keywords,omitempty"`
	Authors           []string `yaml:"authors,omitempty"`
	Organisms         []string `yaml:"organisms,omitempty"`
	Hosts             []string `yaml:"hosts,omitempty"`
	ECNumbers         []string `yaml:"ec_numbers,omitempty"`
	Warnings          []string `yaml:"warnings,omitempty"`
}

// FromStructure builds the summary. Warnings are kept as their printed
// form.
func FromStructure(s *model.Structure, warnings []warn.Warning) *Summary {
	m := s.Meta
	sum := &Summary{
		ID:                s.ID,
		Component:         s.Component,
		Resolution:        m.Resolution,
		Method:            m.ExperimentMethod,
		PolymerType:       m.PolymerType().String(),
		Stoichiometry:     m.ProteinStoichiometryString(),
		StoichiometryType: m.ProteinStoichiometry().String(),
		WeightKDa:         m.TotalWeight() / 1000,
		Chains:            s.ChainIDs(),
		Residues:          len(s.Residues),
		Atoms:             len(s.Atoms),
		Bonds:             len(s.Bonds),
		Helices:           len(s.Helices),
		Sheets:            len(s.Sheets),
		Keywords:          nonEmpty(m.Keywords),
		Authors:           nonEmpty(m.Authors),
		Organisms:         nonEmpty(m.OriginOrganisms()),
		Hosts:             nonEmpty(m.HostOrganisms()),
		ECNumbers:         nonEmpty(m.ECNumbers()),
	}
	if !m.Released.IsZero() {
		sum.Released = m.Released.Format(dateLayout)
	}
	if !m.LatestRevision.IsZero() {
		sum.LatestRevision = m.LatestRevision.Format(dateLayout)
	}
	for _, r := range s.ModifiedResidues() {
		sum.Modified = append(sum.Modified, r.Name+" "+r.ID.String()+" ("+r.ModifiedFrom+")")
	}
	for _, w := range warnings {
		sum.Warnings = append(sum.Warnings, w.String())
	}
	return sum
}

// WriteYAML writes summaries as one yaml document each
func WriteYAML(w io.Writer, sums ...*Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, s := range sums {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return enc.Close()
}

// ReadYAML reads what WriteYAML wrote
func ReadYAML(r io.Reader) ([]*Summary, error) {
	dec := yaml.NewDecoder(r)
	var ret []*Summary
	for {
		var s Summary
		err := dec.Decode(&s)
		if err == io.EOF {
			return ret, nil
		}
		if err != nil {
			return ret, err
		}
		ret = append(ret, &s)
	}
}

// nonEmpty turns empty lists into nil so they read back the same
func nonEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// WriteText is the summary for people
func (s *Summary) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", s.ID)
	if s.File != "" {
		fmt.Fprintf(&b, " (%s", s.File)
		if s.FileSize > 0 {
			fmt.Fprintf(&b, ", %s", humanize.Bytes(uint64(s.FileSize)))
		}
		b.WriteString(")")
	}
	b.WriteString("\n")
	res := "-"
	if s.Resolution != nil {
		res = humanize.FtoaWithDigits(*s.Resolution, 2) + " ang"
	}
	fmt.Fprintf(&b, "  method      %s, resolution %s\n", orDash(s.Method), res)
	fmt.Fprintf(&b, "  released    %s, revised %s\n", orDash(s.Released), orDash(s.LatestRevision))
	fmt.Fprintf(&b, "  polymer     %s, stoichiometry %s (%s)\n", s.PolymerType,
		orDash(s.Stoichiometry), s.StoichiometryType)
	fmt.Fprintf(&b, "  weight      %s kDa\n", humanize.CommafWithDigits(s.WeightKDa, 2))
	fmt.Fprintf(&b, "  chains      %s\n", orDash(strings.Join(s.Chains, " ")))
	fmt.Fprintf(&b, "  contents    %s residues, %s atoms, %s bonds\n",
		humanize.Comma(int64(s.Residues)), humanize.Comma(int64(s.Atoms)), humanize.Comma(int64(s.Bonds)))
	fmt.Fprintf(&b, "  secondary   %d helices, %d sheets\n", s.Helices, s.Sheets)
	if len(s.Modified) > 0 {
		fmt.Fprintf(&b, "  modified    %s\n", strings.Join(s.Modified, ", "))
	}
	if len(s.Organisms) > 0 {
		fmt.Fprintf(&b, "  organisms   %s\n", strings.Join(s.Organisms, ", "))
	}
	if len(s.Keywords) > 0 {
		fmt.Fprintf(&b, "  keywords    %s\n", strings.Join(s.Keywords, ", "))
	}
	for _, wr := range s.Warnings {
		fmt.Fprintf(&b, "  warning     %s\n", wr)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
