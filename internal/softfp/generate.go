package softfp

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/vk/beebsbench/internal/ctxlog"
)

//go:embed f32_binop.s.tmpl
var binopSource string

var binopTemplate = template.Must(template.New("f32_binop").Parse(binopSource))

type templateData struct {
	Vector  Vector
	Routine string
	OutFile string
}

// Render writes the assembly program for v to w. fileName is the name the
// program will be saved under; its output file is fileName + ".out".
func Render(w io.Writer, tt TestType, fileName string, v Vector) error {
	return binopTemplate.Execute(w, templateData{
		Vector:  v,
		Routine: tt.Routine,
		OutFile: fileName + ".out",
	})
}

// Generator writes one assembly file per vector into OutDir and echoes each
// file name to Echo.
type Generator struct {
	OutDir string
	Echo   io.Writer
}

// Generate reads every vector from r before writing anything, so an unknown
// test type or a malformed row leaves OutDir untouched.
func (g *Generator) Generate(ctx context.Context, testType string, r io.Reader) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	tt, err := Lookup(testType)
	if err != nil {
		return nil, err
	}
	vectors, err := ParseVectors(r)
	if err != nil {
		return nil, err
	}
	logger.Debug("Test vectors parsed.", "test", tt.Name, "count", len(vectors))

	names := make([]string, 0, len(vectors))
	for n, v := range vectors {
		name := FileName(tt.Name, n)
		if err := g.writeFile(tt, name, v); err != nil {
			return names, err
		}
		if g.Echo != nil {
			fmt.Fprintln(g.Echo, name)
		}
		names = append(names, name)
	}
	return names, nil
}

func (g *Generator) writeFile(tt TestType, name string, v Vector) (err error) {
	f, err := os.Create(filepath.Join(g.OutDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()
	if err := Render(f, tt, name, v); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
