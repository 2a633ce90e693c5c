package join

import (
	"fmt"
	"math/rand"
	"testing"

	"joinframe/pkg/table"
)

func benchTable(name string, rows, distinct int, seed int64) *table.Table {
	r := rand.New(rand.NewSource(seed))
	keys := make([]int64, rows)
	payload := make([]float64, rows)
	for i := range keys {
		keys[i] = r.Int63n(int64(distinct))
		payload[i] = r.Float64()
	}
	return table.MustNew(name,
		table.NewLongColumn("k", keys...),
		table.NewDoubleColumn(name+"_v", payload...),
	)
}

func BenchmarkJoin(b *testing.B) {
	for _, rows := range []int{1_000, 100_000} {
		left := benchTable("l", rows, rows/4, 1)
		right := benchTable("r", rows, rows/4, 2)

		for _, kind := range []JoinType{Inner, FullOuter} {
			b.Run(fmt.Sprintf("%s/rows=%d", kind, rows), func(b *testing.B) {
				j, err := NewJoiner(left, "k")
				if err != nil {
					b.Fatal(err)
				}
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := j.Join(kind, right, Options{}); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
