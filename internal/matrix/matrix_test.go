package matrix

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSelection_AcceptsEveryDeclaredValue(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSelection(AxisArch, ArchNames(), ArchNames()))
	require.NoError(t, ValidateSelection(AxisConfig, Configs(), Configs()))
	require.NoError(t, ValidateSelection(AxisArch, nil, ArchNames()))
}

func TestValidateSelection_RejectsUnknownValue(t *testing.T) {
	t.Parallel()

	err := ValidateSelection(AxisArch, []string{"arm", "bogus-arch"}, ArchNames())

	var selErr *InvalidSelectionError
	require.True(t, errors.As(err, &selErr))
	require.Equal(t, AxisArch, selErr.Axis)
	require.Equal(t, "bogus-arch", selErr.Value)
	require.EqualError(t, err, `architecture "bogus-arch" does not exist`)
}

func TestLookupArch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		triple string
		found  bool
	}{
		{"riscv", "riscv32-unknown-elf", true},
		{"arm", "arm-none-eabi", true},
		{"arc", "arc-elf32", true},
		{"x86", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := LookupArch(tc.name)
			require.Equal(t, tc.found, ok)
			require.Equal(t, tc.triple, a.Triple)
		})
	}
}

func TestNewPlan_DefaultsToFullCrossProduct(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(PlanSpec{TopDir: "/top"})
	require.NoError(t, err)

	pairs := plan.Pairs()
	require.Len(t, pairs, len(ArchNames())*len(Configs()))

	// Architecture-major: the first len(configs) pairs all belong to riscv.
	for i, c := range Configs() {
		require.Equal(t, "riscv", pairs[i].Arch.Name)
		require.Equal(t, c, pairs[i].Config)
	}
	require.Equal(t, "arc/nolibc-nolibgcc-nolibm", pairs[len(pairs)-1].String())

	again, err := NewPlan(PlanSpec{TopDir: "/top"})
	require.NoError(t, err)
	require.Equal(t, pairs, again.Pairs(), "pair order must be stable run to run")
}

func TestNewPlan_DeterministicPaths(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(PlanSpec{TopDir: "/top", Arches: []string{"riscv"}, Configs: []string{"baseline"}})
	require.NoError(t, err)

	pair := plan.Pairs()[0]
	require.Equal(t, filepath.Join("/top", "build-riscv", "beebs-baseline"), plan.BuildInstanceDir(pair))
	require.Equal(t, filepath.Join("/top", "install-riscv", "bin"), plan.Paths("riscv").ToolchainDir())
	require.Equal(t, filepath.Join("/top", "beebs", "configure"), plan.ConfigureScript())
}

func TestNewPlan_Overrides(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(PlanSpec{
		TopDir:   "/top",
		BeebsDir: "/src/beebs",
		Overrides: map[string]Paths{
			"arm": {BuildDir: "/b/arm"},
			"arc": {InstallDir: "/opt/arc"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, Paths{BuildDir: "/b/arm", InstallDir: filepath.Join("/top", "install-arm")}, plan.Paths("arm"))
	require.Equal(t, Paths{BuildDir: filepath.Join("/top", "build-arc"), InstallDir: "/opt/arc"}, plan.Paths("arc"))
	require.Equal(t, DefaultPaths("/top", "riscv"), plan.Paths("riscv"))
	require.Equal(t, "/src/beebs/configure", plan.ConfigureScript())
}

func TestNewPlan_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec PlanSpec
		axis Axis
		val  string
	}{
		{"unknown arch", PlanSpec{TopDir: "/t", Arches: []string{"arm", "bogus-arch"}}, AxisArch, "bogus-arch"},
		{"unknown config", PlanSpec{TopDir: "/t", Configs: []string{"baseline", "fast"}}, AxisConfig, "fast"},
		{"unknown override", PlanSpec{TopDir: "/t", Overrides: map[string]Paths{"mips": {}}}, AxisArch, "mips"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPlan(tc.spec)
			var selErr *InvalidSelectionError
			require.ErrorAs(t, err, &selErr)
			require.Equal(t, tc.axis, selErr.Axis)
			require.Equal(t, tc.val, selErr.Value)
		})
	}

	_, err := NewPlan(PlanSpec{})
	require.Error(t, err)
}

func TestNewPlan_DropsDuplicates(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(PlanSpec{TopDir: "/t", Arches: []string{"arm", "arm"}, Configs: []string{"nocrt", "baseline", "nocrt"}})
	require.NoError(t, err)
	require.Equal(t, []string{"nocrt", "baseline"}, plan.Configs())
	require.Len(t, plan.Arches(), 1)
}
