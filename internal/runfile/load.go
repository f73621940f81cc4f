package runfile

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/beebsbench/internal/ctxlog"
	"github.com/vk/beebsbench/internal/matrix"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Load parses and decodes the run file at path.
func Load(ctx context.Context, path string, vars Vars) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Run file loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse run file %s: %w", path, diags)
	}
	return decode(ctx, hclFile.Body, vars)
}

// Parse decodes run-file source held in memory; filename is used for
// diagnostics only.
func Parse(ctx context.Context, src []byte, filename string, vars Vars) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse run file %s: %w", filename, diags)
	}
	return decode(ctx, hclFile.Body, vars)
}

func decode(ctx context.Context, body hcl.Body, vars Vars) (*File, error) {
	logger := ctxlog.FromContext(ctx)

	var root fileRoot
	if diags := gohcl.DecodeBody(body, evalContext(vars), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode run file: %w", diags)
	}

	out := &File{
		Arches:    root.Arches,
		Configs:   root.Configs,
		KeepGoing: root.KeepGoing,
		Jobs:      root.Jobs,
		MakeJobs:  root.MakeJobs,
		Overrides: make(map[string]matrix.Paths),
	}

	if out.Jobs != nil && *out.Jobs < 1 {
		return nil, fmt.Errorf("jobs must be at least 1, got %d", *out.Jobs)
	}
	if out.MakeJobs != nil && *out.MakeJobs < 1 {
		return nil, fmt.Errorf("make_jobs must be at least 1, got %d", *out.MakeJobs)
	}

	if t := root.Timeouts; t != nil {
		var err error
		if out.Timeouts.Configure, err = parseTimeout("configure", t.Configure); err != nil {
			return nil, err
		}
		if out.Timeouts.Build, err = parseTimeout("build", t.Build); err != nil {
			return nil, err
		}
		if out.Timeouts.Check, err = parseTimeout("check", t.Check); err != nil {
			return nil, err
		}
	}

	for _, block := range root.Arch {
		if _, ok := matrix.LookupArch(block.Name); !ok {
			return nil, fmt.Errorf("%s: %w", block.DefRange, &matrix.InvalidSelectionError{Axis: matrix.AxisArch, Value: block.Name})
		}
		if _, dup := out.Overrides[block.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate arch block %q", block.DefRange, block.Name)
		}
		var p matrix.Paths
		if block.BuildDir != nil {
			p.BuildDir = *block.BuildDir
		}
		if block.InstallDir != nil {
			p.InstallDir = *block.InstallDir
		}
		out.Overrides[block.Name] = p
	}

	logger.Debug("Run file decoded.", "arches", out.Arches, "configs", out.Configs, "overrides", len(out.Overrides))
	return out, nil
}

func parseTimeout(step string, raw *string) (time.Duration, error) {
	if raw == nil {
		return 0, nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s timeout: %w", step, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s timeout: must be positive, got %s", step, d)
	}
	return d, nil
}

func evalContext(vars Vars) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(vars.Env))
	for k, v := range vars.Env {
		env[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"top_dir": cty.StringVal(vars.TopDir),
			"env":     cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"join":   stdlib.JoinFunc,
			"format": stdlib.FormatFunc,
		},
	}
}
