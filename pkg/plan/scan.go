package plan

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"joinframe/pkg/csvio"
	"joinframe/pkg/table"
)

// LoadTables reads every input table concurrently. Each table takes the name
// it has in the plan; the map is keyed by the lower-cased name. The first
// failure cancels the remaining loads.
func (p *Plan) LoadTables(ctx context.Context) (map[string]*table.Table, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	tables := make(map[string]*table.Table, len(p.Tables))

	for _, src := range p.Tables {
		src := src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := csvio.ReadFile(p.resolve(src.Path))
			if err != nil {
				return errors.Wrapf(err, "load table %q", src.Name)
			}
			t.SetName(src.Name)

			mu.Lock()
			tables[strings.ToLower(src.Name)] = t
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
