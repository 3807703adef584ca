package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/order"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func archives(t *testing.T) map[string]order.Archive {
	t.Helper()
	sq, err := order.NewSQLiteArchive(order.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]order.Archive{
		"memory": order.NewMemoryArchive(),
		"sqlite": sq,
	}
}

func ids(recs []order.Record) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestArchiveContract(t *testing.T) {
	for name, a := range archives(t) {
		t.Run(name, func(t *testing.T) {
			for _, rec := range order.SampleOrders(now) {
				require.NoError(t, a.Put(rec))
			}
			require.NoError(t, a.Put(order.Record{
				ID:        2001,
				Items:     cart.Cart{{ProductID: 5, Name: "Tiramisu", UnitPrice: 6, Quantity: 1}},
				Total:     7.26,
				Timestamp: now,
				Status:    order.StatusPreparing,
				Customer:  "Sarah Johnson",
			}))

			t.Run("get", func(t *testing.T) {
				rec, err := a.Get(1001)
				require.NoError(t, err)
				assert.Equal(t, order.DefaultCustomer, rec.Customer)
				assert.True(t, rec.Timestamp.Equal(now.Add(-24*time.Hour)))
				require.Len(t, rec.Items, 2)
				assert.Equal(t, 2, rec.Items[0].Extras["mushrooms"].Quantity)
				assert.InDelta(t, 34.00, rec.Total, 1e-9)

				_, err = a.Get(42)
				assert.ErrorIs(t, err, order.ErrNotFound)
			})

			t.Run("list newest first", func(t *testing.T) {
				recs, err := a.List()
				require.NoError(t, err)
				assert.Equal(t, []int64{2001, 1002, 1001}, ids(recs))
			})

			t.Run("search", func(t *testing.T) {
				tests := []struct {
					query string
					want  []int64
				}{
					{query: "", want: []int64{2001, 1002, 1001}},
					{query: "CAESAR", want: []int64{1002}},
					{query: "pizza", want: []int64{1002, 1001}},
					{query: "sarah", want: []int64{2001}},
					{query: "100", want: []int64{1002, 1001}},
					{query: "%", want: []int64{}},
					{query: "sushi", want: []int64{}},
				}
				for _, tt := range tests {
					recs, err := a.Search(tt.query)
					require.NoError(t, err)
					assert.Equal(t, tt.want, ids(recs), "query %q", tt.query)
				}
			})

			t.Run("put replaces", func(t *testing.T) {
				rec, err := a.Get(2001)
				require.NoError(t, err)
				rec.Items = cart.Cart{{ProductID: 4, Name: "Coca Cola", UnitPrice: 2.5, Quantity: 1}}
				require.NoError(t, a.Put(rec))

				recs, err := a.Search("tiramisu")
				require.NoError(t, err)
				assert.Empty(t, recs)
				recs, err = a.Search("cola")
				require.NoError(t, err)
				assert.Equal(t, []int64{2001, 1001}, ids(recs))
			})

			t.Run("update status", func(t *testing.T) {
				require.NoError(t, a.UpdateStatus(2001, order.StatusReady))
				rec, err := a.Get(2001)
				require.NoError(t, err)
				assert.Equal(t, order.StatusReady, rec.Status)
				assert.ErrorIs(t, a.UpdateStatus(42, order.StatusReady), order.ErrNotFound)
			})

			t.Run("reset", func(t *testing.T) {
				require.NoError(t, a.Reset())
				recs, err := a.List()
				require.NoError(t, err)
				assert.Empty(t, recs)
			})

			t.Run("closed", func(t *testing.T) {
				require.NoError(t, a.Close())
				assert.ErrorIs(t, a.Put(order.Record{ID: 1}), order.ErrArchiveClosed)
				_, err := a.Get(1)
				assert.ErrorIs(t, err, order.ErrArchiveClosed)
				_, err = a.Search("")
				assert.ErrorIs(t, err, order.ErrArchiveClosed)
			})
		})
	}
}

func TestMatches(t *testing.T) {
	rec := order.SampleOrders(now)[0]
	assert.True(t, order.Matches(rec, ""))
	assert.True(t, order.Matches(rec, "  margherita "))
	assert.True(t, order.Matches(rec, "1001"))
	assert.True(t, order.Matches(rec, "walk-in"))
	assert.False(t, order.Matches(rec, "salad"))
}
