// Package fs implements the simulation ports on top of a SKIRT output directory.
package fs

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/ports"
)

// ParametersSuffix is appended to the prefix of the parameter file SKIRT
// copies into every output directory.
const ParametersSuffix = "_parameters.xml"

// Simulation implements ports.Simulation for one prefix in an output directory.
type Simulation struct {
	skiFilePath string
	outDirPath  string
	prefix      string
	probes      []ports.Probe
}

// OpenSimulation creates a Simulation from a ski (or parameters) file and the
// directory holding its output. The prefix is the ski file name without its
// ".ski" or "_parameters.xml" suffix.
func OpenSimulation(skiFilePath, outDirPath string) (*Simulation, error) {
	skiAbs, err := filepath.Abs(skiFilePath)
	if err != nil {
		return nil, err
	}
	outAbs, err := filepath.Abs(outDirPath)
	if err != nil {
		return nil, err
	}

	prefix, ok := prefixOf(filepath.Base(skiAbs))
	if !ok {
		return nil, fmt.Errorf("invalid ski file name %q: want .ski or %s", filepath.Base(skiAbs), ParametersSuffix)
	}

	f, err := os.Open(skiAbs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decls, err := parseProbes(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", skiAbs, err)
	}

	sim := &Simulation{skiFilePath: skiAbs, outDirPath: outAbs, prefix: prefix}
	for _, d := range decls {
		sim.probes = append(sim.probes, &Probe{sim: sim, typ: d.typ, name: d.name})
	}
	return sim, nil
}

// FromOutputDir opens the simulation with the given prefix from the
// parameter file SKIRT stored in outDirPath.
func FromOutputDir(outDirPath, prefix string) (*Simulation, error) {
	path := filepath.Join(outDirPath, prefix+ParametersSuffix)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoSimulation, path)
		}
		return nil, err
	}
	return OpenSimulation(path, outDirPath)
}

// Prefixes returns the sorted prefixes of all simulations in outDirPath.
func Prefixes(outDirPath string) ([]string, error) {
	entries, err := os.ReadDir(outDirPath)
	if err != nil {
		return nil, err
	}
	var prefixes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ParametersSuffix) {
			continue
		}
		if p := strings.TrimSuffix(name, ParametersSuffix); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	sort.Strings(prefixes)
	return prefixes, nil
}

// CreateSimulations opens every simulation in outDirPath, or only the one
// with the given prefix when prefix is not empty.
func CreateSimulations(outDirPath, prefix string) ([]*Simulation, error) {
	if prefix != "" {
		sim, err := FromOutputDir(outDirPath, prefix)
		if err != nil {
			return nil, err
		}
		return []*Simulation{sim}, nil
	}

	prefixes, err := Prefixes(outDirPath)
	if err != nil {
		return nil, err
	}
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("%w: no *%s in %s", domain.ErrNoSimulation, ParametersSuffix, outDirPath)
	}

	sims := make([]*Simulation, 0, len(prefixes))
	for _, p := range prefixes {
		sim, err := FromOutputDir(outDirPath, p)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, nil
}

// Prefix returns the simulation prefix.
func (s *Simulation) Prefix() string { return s.prefix }

// SkiFilePath returns the absolute path of the parameter file.
func (s *Simulation) SkiFilePath() string { return s.skiFilePath }

// OutDirPath returns the absolute path of the output directory.
func (s *Simulation) OutDirPath() string { return s.outDirPath }

// Probes returns the probes declared in the parameter file.
func (s *Simulation) Probes() []ports.Probe {
	return append([]ports.Probe(nil), s.probes...)
}

// OutFilePath returns "<outdir>/<prefix>_<name>".
func (s *Simulation) OutFilePath(name string) string {
	return filepath.Join(s.outDirPath, s.prefix+"_"+name)
}

// Probe implements ports.Probe.
type Probe struct {
	sim  *Simulation
	typ  string
	name string
}

// Type returns the probe type, i.e. the element name in the ski file.
func (p *Probe) Type() string { return p.typ }

// Name returns the probeName attribute.
func (p *Probe) Name() string { return p.name }

// OutFilePaths returns the sorted output files "<prefix>_<probe>_<pattern>".
func (p *Probe) OutFilePaths(pattern string) ([]string, error) {
	glob := filepath.Join(p.sim.outDirPath, escapeGlob(p.sim.prefix+"_"+p.name+"_")+pattern)
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", glob, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func prefixOf(name string) (string, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".ski"):
		return name[:len(name)-len(".ski")], true
	case strings.HasSuffix(lower, ParametersSuffix):
		return name[:len(name)-len(ParametersSuffix)], true
	}
	return "", false
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)
	return r.Replace(s)
}

type probeDecl struct {
	typ  string
	name string
}

// parseProbes returns the child elements of every <probes> element, in
// document order. The element name is the probe type and the probeName
// attribute its name.
func parseProbes(r io.Reader) ([]probeDecl, error) {
	dec := xml.NewDecoder(r)
	var (
		decls       []probeDecl
		depth       int
		probesDepth = -1
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return decls, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if probesDepth >= 0 && depth == probesDepth+1 {
				decls = append(decls, probeDecl{typ: t.Name.Local, name: attr(t, "probeName")})
			}
			if t.Name.Local == "probes" && probesDepth < 0 {
				probesDepth = depth
			}
		case xml.EndElement:
			if depth == probesDepth {
				probesDepth = -1
			}
			depth--
		}
	}
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
