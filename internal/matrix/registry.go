package matrix

// Arch describes a target architecture and the toolchain triple passed to
// the configure step as --host.
type Arch struct {
	Name   string
	Triple string
}

var arches = []Arch{
	{Name: "riscv", Triple: "riscv32-unknown-elf"},
	{Name: "arm", Triple: "arm-none-eabi"},
	{Name: "arc", Triple: "arc-elf32"},
}

// configs selects which runtime support layers are stripped from the build.
// Each maps to a --with-chip=compare-<config> configure flag.
var configs = []string{
	"baseline",
	"nocrt",
	"nolibc",
	"nolibc-nolibgcc",
	"nolibc-nolibgcc-nolibm",
}

// Arches returns every declared architecture in declaration order.
func Arches() []Arch {
	return append([]Arch(nil), arches...)
}

// ArchNames returns the names of every declared architecture.
func ArchNames() []string {
	names := make([]string, 0, len(arches))
	for _, a := range arches {
		names = append(names, a.Name)
	}
	return names
}

// LookupArch returns the architecture registered under name.
func LookupArch(name string) (Arch, bool) {
	for _, a := range arches {
		if a.Name == name {
			return a, true
		}
	}
	return Arch{}, false
}

// Configs returns every declared benchmark configuration in declaration order.
func Configs() []string {
	return append([]string(nil), configs...)
}
