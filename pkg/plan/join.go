package plan

import (
	"strings"

	"github.com/cockroachdb/errors"

	"joinframe/pkg/execution/join"
	"joinframe/pkg/logging"
	"joinframe/pkg/table"
)

// JoinStep is one join of the chain as written in the plan. Type accepts the
// names understood by join.ParseJoinType and defaults to inner. An empty On
// joins on the base column names.
type JoinStep struct {
	Type                      string   `yaml:"type"`
	Table                     string   `yaml:"table"`
	On                        []string `yaml:"on"`
	AllowDuplicateColumnNames bool     `yaml:"allowDuplicateColumnNames"`
	KeepAllJoinKeyColumns     bool     `yaml:"keepAllJoinKeyColumns"`
}

func (s JoinStep) joinType() (join.JoinType, error) {
	return join.ParseJoinType(s.Type)
}

// Execute runs the join chain over already loaded tables, keyed by their
// lower-cased plan name.
func (p *Plan) Execute(tables map[string]*table.Table) (*table.Table, error) {
	base, err := lookup(tables, p.Base)
	if err != nil {
		return nil, err
	}
	j, err := join.NewJoiner(base, p.On...)
	if err != nil {
		return nil, err
	}

	steps := make([]join.Step, len(p.Steps))
	for i, s := range p.Steps {
		kind, err := s.joinType()
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i+1)
		}
		partner, err := lookup(tables, s.Table)
		if err != nil {
			return nil, err
		}
		steps[i] = join.Step{
			Type:    kind,
			Table:   partner,
			Columns: s.On,
			Options: join.Options{
				AllowDuplicateColumnNames: s.AllowDuplicateColumnNames,
				KeepAllJoinKeyColumns:     s.KeepAllJoinKeyColumns,
			},
		}
	}

	result, err := j.Chain(steps...)
	if err != nil {
		return nil, err
	}
	logging.WithComponent("plan").Info("plan executed",
		"base", p.Base, "steps", len(steps), "rows", result.RowCount(), "columns", result.ColumnCount())
	return result, nil
}

func lookup(tables map[string]*table.Table, name string) (*table.Table, error) {
	t, ok := tables[strings.ToLower(name)]
	if !ok {
		return nil, errors.Newf("table %q is not loaded", name)
	}
	return t, nil
}
