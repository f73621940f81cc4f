package runfile

import (
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/beebsbench/internal/matrix"
)

// File is the decoded, format-agnostic content of a run file. Pointer and
// zero values mean "not set".
type File struct {
	Arches    []string
	Configs   []string
	KeepGoing *bool
	Jobs      *int
	MakeJobs  *int
	Timeouts  Timeouts
	Overrides map[string]matrix.Paths
}

// Timeouts holds per-step budgets; zero means not set.
type Timeouts struct {
	Configure time.Duration
	Build     time.Duration
	Check     time.Duration
}

// Vars are exposed to expressions in the run file.
type Vars struct {
	TopDir string
	Env    map[string]string
}

// fileRoot mirrors the HCL layout of a run file.
type fileRoot struct {
	Arches    []string       `hcl:"arches,optional"`
	Configs   []string       `hcl:"configs,optional"`
	KeepGoing *bool          `hcl:"keep_going,optional"`
	Jobs      *int           `hcl:"jobs,optional"`
	MakeJobs  *int           `hcl:"make_jobs,optional"`
	Timeouts  *timeoutsBlock `hcl:"timeouts,block"`
	Arch      []*archBlock   `hcl:"arch,block"`
}

type timeoutsBlock struct {
	Configure *string `hcl:"configure,optional"`
	Build     *string `hcl:"build,optional"`
	Check     *string `hcl:"check,optional"`
}

type archBlock struct {
	Name       string    `hcl:"name,label"`
	BuildDir   *string   `hcl:"build_dir,optional"`
	InstallDir *string   `hcl:"install_dir,optional"`
	DefRange   hcl.Range `hcl:",def_range"`
}
