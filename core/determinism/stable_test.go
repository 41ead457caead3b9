package determinism

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedKeys(t *testing.T) {
	m := map[int]string{6: "f", 1: "a", 3: "c", 0: "none"}
	assert.Equal(t, []int{0, 1, 3, 6}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestHashJSONIsStable(t *testing.T) {
	a, err := HashJSON(map[int]int64{1: 150, 2: 300, 3: 450})
	require.NoError(t, err)
	b, err := HashJSON(map[int]int64{3: 450, 1: 150, 2: 300})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a.Hex(), 64)
	assert.Len(t, a.Short(), 16)

	c, err := HashJSON(map[int]int64{1: 150})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestHashJSONRejectsUnencodable(t *testing.T) {
	_, err := HashJSON(func() {})
	assert.Error(t, err)
}
