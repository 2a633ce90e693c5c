// Package plan reads join plans from YAML and runs them.
//
// A plan names its input tables, the base table and its join columns, and the
// chain of joins applied to the base:
//
//	tables:
//	  - name: orders
//	    path: orders.csv
//	  - name: customers
//	    path: customers.csv
//	base: orders
//	on: [customer_id]
//	steps:
//	  - type: left
//	    table: customers
//	    on: [id]
//	output: report.csv
//
// Relative paths are resolved against the directory of the plan file.
package plan

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"joinframe/pkg/dberror"
	"joinframe/pkg/table"
)

// TableSource names a CSV file to load.
type TableSource struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Plan is a parsed join plan.
type Plan struct {
	Tables []TableSource `yaml:"tables"`
	Base   string        `yaml:"base"`
	On     []string      `yaml:"on"`
	Steps  []JoinStep    `yaml:"steps"`
	// Output is an optional CSV path for the result.
	Output string `yaml:"output"`

	dir string
}

// Parse decodes and validates a plan. Unknown keys are rejected.
func Parse(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, errors.New("plan is empty")
		}
		return nil, errors.Wrap(err, "decode plan")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads the plan file at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read plan %s", path)
	}
	p, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "plan %s", path)
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// Validate checks the references inside the plan without touching any file.
func (p *Plan) Validate() error {
	if len(p.Tables) == 0 {
		return errors.New("plan lists no tables")
	}
	names := make(map[string]struct{}, len(p.Tables))
	for i, src := range p.Tables {
		if src.Name == "" || src.Path == "" {
			return errors.Newf("table %d needs both a name and a path", i+1)
		}
		key := strings.ToLower(src.Name)
		if _, dup := names[key]; dup {
			return errors.Newf("table %q is listed twice", src.Name)
		}
		names[key] = struct{}{}
	}

	if _, ok := names[strings.ToLower(p.Base)]; !ok {
		return errors.Newf("base table %q is not listed", p.Base)
	}
	if len(p.On) == 0 {
		return dberror.NoJoinColumns(p.Base)
	}
	for i, s := range p.Steps {
		if _, ok := names[strings.ToLower(s.Table)]; !ok {
			return errors.Newf("step %d joins unknown table %q", i+1, s.Table)
		}
		if _, err := s.joinType(); err != nil {
			return errors.Wrapf(err, "step %d", i+1)
		}
	}
	return nil
}

// OutputPath returns the output path resolved like the input paths, or ""
// when the plan has no output.
func (p *Plan) OutputPath() string {
	if p.Output == "" {
		return ""
	}
	return p.resolve(p.Output)
}

// Run loads the input tables and executes the plan.
func (p *Plan) Run(ctx context.Context) (*table.Table, error) {
	tables, err := p.LoadTables(ctx)
	if err != nil {
		return nil, err
	}
	return p.Execute(tables)
}

func (p *Plan) resolve(path string) string {
	if filepath.IsAbs(path) || p.dir == "" {
		return path
	}
	return filepath.Join(p.dir, path)
}
