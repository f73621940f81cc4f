// Package runfile loads the optional HCL run file that pre-sets a run's
// axis selection, per-architecture directories, step timeouts and failure
// policy. Values in the file sit beneath command-line flags: the caller
// merges them, the file only reports what it set.
//
// Expressions are evaluated with the variables `top_dir` and `env` and a
// handful of string functions from the cty standard library, e.g.
//
//	arch "riscv" {
//	  build_dir   = "${top_dir}/build-riscv"
//	  install_dir = "${env.HOME}/riscv"
//	}
package runfile
