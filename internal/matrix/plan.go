package matrix

import (
	"fmt"
	"path/filepath"
)

// Paths binds an architecture to the directory its benchmarks are built
// under and the directory its toolchain was installed into.
type Paths struct {
	BuildDir   string
	InstallDir string
}

// ToolchainDir is the directory holding the toolchain's executables.
func (p Paths) ToolchainDir() string {
	return filepath.Join(p.InstallDir, "bin")
}

// DefaultPaths returns the conventional bindings for arch under topDir.
func DefaultPaths(topDir, arch string) Paths {
	return Paths{
		BuildDir:   filepath.Join(topDir, "build-"+arch),
		InstallDir: filepath.Join(topDir, "install-"+arch),
	}
}

// Pair is a single cell of the benchmark matrix.
type Pair struct {
	Arch   Arch
	Config string
}

func (p Pair) String() string {
	return p.Arch.Name + "/" + p.Config
}

// PlanSpec is the raw, unvalidated input to NewPlan.
type PlanSpec struct {
	TopDir   string
	BeebsDir string // defaults to <TopDir>/beebs
	Arches   []string
	Configs  []string

	// Overrides holds per-architecture path overrides. Empty fields fall back
	// to DefaultPaths.
	Overrides map[string]Paths
}

// Plan is the resolved, immutable description of one run.
type Plan struct {
	topDir   string
	beebsDir string
	arches   []Arch
	configs  []string
	paths    map[string]Paths
}

// NewPlan validates spec and resolves it into a Plan. Empty selections mean
// every registered value, in declaration order. Duplicates are dropped.
func NewPlan(spec PlanSpec) (*Plan, error) {
	if spec.TopDir == "" {
		return nil, fmt.Errorf("top directory is required")
	}

	archNames := dedupe(spec.Arches)
	if len(archNames) == 0 {
		archNames = ArchNames()
	}
	if err := ValidateSelection(AxisArch, archNames, ArchNames()); err != nil {
		return nil, err
	}

	cfgs := dedupe(spec.Configs)
	if len(cfgs) == 0 {
		cfgs = Configs()
	}
	if err := ValidateSelection(AxisConfig, cfgs, configs); err != nil {
		return nil, err
	}

	for name := range spec.Overrides {
		if _, ok := LookupArch(name); !ok {
			return nil, &InvalidSelectionError{Axis: AxisArch, Value: name}
		}
	}

	plan := &Plan{
		topDir:   spec.TopDir,
		beebsDir: spec.BeebsDir,
		configs:  cfgs,
		paths:    make(map[string]Paths, len(arches)),
	}
	if plan.beebsDir == "" {
		plan.beebsDir = filepath.Join(spec.TopDir, "beebs")
	}
	for _, name := range archNames {
		a, _ := LookupArch(name)
		plan.arches = append(plan.arches, a)
	}

	// Bindings are resolved for every registered architecture, selected or not.
	for _, a := range arches {
		p := DefaultPaths(spec.TopDir, a.Name)
		if o, ok := spec.Overrides[a.Name]; ok {
			if o.BuildDir != "" {
				p.BuildDir = o.BuildDir
			}
			if o.InstallDir != "" {
				p.InstallDir = o.InstallDir
			}
		}
		plan.paths[a.Name] = p
	}

	return plan, nil
}

func dedupe(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// TopDir returns the top-level directory the plan was resolved against.
func (p *Plan) TopDir() string { return p.topDir }

// BeebsDir returns the BEEBS source directory.
func (p *Plan) BeebsDir() string { return p.beebsDir }

// ConfigureScript returns the path of the suite's configure entry point.
func (p *Plan) ConfigureScript() string {
	return filepath.Join(p.beebsDir, "configure")
}

// Arches returns the selected architectures in run order.
func (p *Plan) Arches() []Arch { return append([]Arch(nil), p.arches...) }

// Configs returns the selected configurations in run order.
func (p *Plan) Configs() []string { return append([]string(nil), p.configs...) }

// Paths returns the bindings for the named architecture.
func (p *Plan) Paths(arch string) Paths { return p.paths[arch] }

// Pairs returns the cross product of the selected axes, architecture-major.
func (p *Plan) Pairs() []Pair {
	pairs := make([]Pair, 0, len(p.arches)*len(p.configs))
	for _, a := range p.arches {
		for _, c := range p.configs {
			pairs = append(pairs, Pair{Arch: a, Config: c})
		}
	}
	return pairs
}

// BuildInstanceDir returns the working directory used for pair.
func (p *Plan) BuildInstanceDir(pair Pair) string {
	return filepath.Join(p.paths[pair.Arch.Name].BuildDir, "beebs-"+pair.Config)
}
