package questions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	require.Len(t, Catalog, 5)
	ids := IDSet()
	require.Len(t, ids, 5)
	for i, q := range Catalog {
		require.NotEmpty(t, q.Text)
		require.Contains(t, ids, q.ID)
		require.Equal(t, Catalog[i].ID, q.ID)
	}
	require.Equal(t, "q1", Catalog[0].ID)
	require.Equal(t, "q5", Catalog[4].ID)
}

func TestSnapshotIsIndependent(t *testing.T) {
	snap := Snapshot()
	require.Equal(t, Catalog, snap)

	snap[0].Text = "mutated"
	require.NotEqual(t, "mutated", Catalog[0].Text)
}
