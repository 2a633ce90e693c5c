package plan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinframe/pkg/dberror"
)

const ordersPlan = `
tables:
  - name: orders
    path: orders.csv
  - name: customers
    path: data/customers.csv
  - name: regions
    path: regions.csv
base: orders
on: [customer_id]
steps:
  - type: left
    table: customers
    on: [id]
  - table: regions
    on: [customer_id]
output: out/report.csv
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(ordersPlan))
	require.NoError(t, err)

	assert.Equal(t, "orders", p.Base)
	assert.Equal(t, []string{"customer_id"}, p.On)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, "left", p.Steps[0].Type)
	assert.Equal(t, []string{"id"}, p.Steps[0].On)
	assert.Empty(t, p.Steps[1].Type)
	assert.Equal(t, "out/report.csv", p.OutputPath())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "plan is empty"},
		{"unknown key", "tables: []\nbogus: 1\n", "bogus"},
		{"no tables", "base: a\non: [id]\n", "no tables"},
		{"unnamed table", "tables: [{path: a.csv}]\nbase: a\non: [id]\n", "needs both"},
		{"duplicate table", "tables: [{name: a, path: a.csv}, {name: A, path: b.csv}]\nbase: a\non: [id]\n", "listed twice"},
		{"unknown base", "tables: [{name: a, path: a.csv}]\nbase: b\non: [id]\n", `base table "b"`},
		{"unknown step table", "tables: [{name: a, path: a.csv}]\nbase: a\non: [id]\nsteps: [{table: z}]\n", `unknown table "z"`},
		{"bad join type", "tables: [{name: a, path: a.csv}]\nbase: a\non: [id]\nsteps: [{table: a, type: cross}]\n", "unknown join type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Parse(strings.NewReader("tables: [{name: a, path: a.csv}]\nbase: a\n"))
	assert.True(t, errors.Is(err, dberror.ErrConfiguration))
}

func TestLoadAndRun(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"plan.yaml": ordersPlan,
		"orders.csv": "order_id:LONG,customer_id:INTEGER,total:DOUBLE\n" +
			"100,1,9.5\n" +
			"101,2,20\n" +
			"102,4,1.25\n",
		"data/customers.csv": "id:INTEGER,name\n1,ann\n2,bob\n3,cy\n",
		"regions.csv":        "customer_id:INTEGER,region\n1,north\n4,south\n",
	})

	p, err := Load(filepath.Join(dir, "plan.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out/report.csv"), p.OutputPath())

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "orders", result.Name())
	assert.Equal(t, []string{"order_id", "customer_id", "total", "name", "region"}, result.ColumnNames())
	require.Equal(t, 2, result.RowCount())

	row := result.RowAt(0)
	assert.Equal(t, "100", row.Format(0))
	assert.Equal(t, "ann", row.Format(3))
	assert.Equal(t, "north", row.Format(4))

	row = result.RowAt(1)
	assert.Equal(t, "102", row.Format(0))
	assert.True(t, row.IsMissing(3))
	assert.Equal(t, "south", row.Format(4))
}

func TestLoadTables_Failure(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"plan.yaml": "tables:\n  - {name: a, path: a.csv}\n  - {name: b, path: missing.csv}\nbase: a\non: [id]\n",
		"a.csv":     "id:INTEGER\n1\n",
	})
	p, err := Load(filepath.Join(dir, "plan.yaml"))
	require.NoError(t, err)

	_, err = p.LoadTables(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `load table "b"`)
}

func TestExecute_JoinErrorsSurface(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"plan.yaml": "tables:\n  - {name: a, path: a.csv}\n  - {name: b, path: b.csv}\n" +
			"base: a\non: [id]\nsteps:\n  - {table: b}\n",
		"a.csv": "id:INTEGER,v\n1,x\n",
		"b.csv": "id:LONG,v\n1,y\n",
	})
	p, err := Load(filepath.Join(dir, "plan.yaml"))
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, dberror.ErrTypeMismatch))
}
