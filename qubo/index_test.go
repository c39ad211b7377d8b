package qubo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

func mustContext(t *testing.T, residents []schedule.Resident, blocks []schedule.Block, templates []schedule.RoleTemplate, unavailable map[string][]int) *schedule.Context {
	t.Helper()
	sc, err := schedule.NewContext(residents, blocks, templates, unavailable)
	require.NoError(t, err)
	return sc
}

func TestIndexEnumeratesEligibleTriples(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}, {ID: "b"}},
		[]schedule.Block{{ID: 0}, {ID: 1}},
		[]schedule.RoleTemplate{{ID: "day"}, {ID: "night"}},
		nil,
	)

	ix, err := BuildVariableIndex(sc)
	require.NoError(t, err)
	assert.Equal(t, 8, ix.NumVariables())

	// Resident-major, then block, then template.
	r, b, tpl := ix.Triple(0)
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{r, b, tpl})
	r, b, tpl = ix.Triple(7)
	assert.Equal(t, [3]int{1, 1, 1}, [3]int{r, b, tpl})
}

func TestIndexBijection(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		[]schedule.Block{{ID: 0}, {ID: 1}, {ID: 2}},
		[]schedule.RoleTemplate{{ID: "day"}},
		nil,
	)

	ix, err := BuildVariableIndex(sc)
	require.NoError(t, err)

	seen := make(map[[3]int]bool)
	for v := 0; v < ix.NumVariables(); v++ {
		r, b, tpl := ix.Triple(v)
		key := [3]int{r, b, tpl}
		assert.False(t, seen[key], "duplicate triple %v", key)
		seen[key] = true

		assert.Contains(t, ix.VariablesForResident(r), int32(v))
		assert.Contains(t, ix.VariablesForBlock(b), int32(v))
	}
	assert.Len(t, seen, ix.NumVariables())
}

func TestIndexExcludesWeekendBlocks(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}},
		[]schedule.Block{{ID: 0}, {ID: 1, Weekend: true}, {ID: 2}},
		[]schedule.RoleTemplate{{ID: "day"}},
		nil,
	)

	ix, err := BuildVariableIndex(sc)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.NumVariables())
	assert.Empty(t, ix.VariablesForBlock(1))
}

func TestIndexExcludesUncredentialedResidents(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "junior"}, {ID: "senior", Credentialed: true}},
		[]schedule.Block{{ID: 0}},
		[]schedule.RoleTemplate{{ID: "day"}, {ID: "supervisor", RequiresCredential: true}},
		nil,
	)

	ix, err := BuildVariableIndex(sc)
	require.NoError(t, err)
	// junior: day only. senior: day and supervisor.
	assert.Equal(t, 3, ix.NumVariables())
	assert.Len(t, ix.VariablesForResident(0), 1)
	assert.Len(t, ix.VariablesForResident(1), 2)
}

func TestIndexWithoutTemplates(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}},
		[]schedule.Block{{ID: 0}, {ID: 1}},
		nil,
		nil,
	)

	ix, err := BuildVariableIndex(sc)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.NumVariables())
	_, _, tpl := ix.Triple(0)
	assert.Equal(t, -1, tpl)
}

func TestIndexUnavailability(t *testing.T) {
	sc := mustContext(t,
		[]schedule.Resident{{ID: "a"}, {ID: "b"}},
		[]schedule.Block{{ID: 0}, {ID: 1}},
		nil,
		map[string][]int{"b": {1}},
	)

	ix, err := BuildVariableIndex(sc)
	require.NoError(t, err)
	assert.False(t, ix.Unavailable(0, 0))
	assert.False(t, ix.Unavailable(0, 1))
	assert.False(t, ix.Unavailable(1, 0))
	assert.True(t, ix.Unavailable(1, 1))
}

func TestIndexWeeks(t *testing.T) {
	blocks := make([]schedule.Block, 30)
	for i := range blocks {
		blocks[i] = schedule.Block{ID: i}
	}
	sc := mustContext(t, []schedule.Resident{{ID: "a"}}, blocks, nil, nil)

	ix, err := BuildVariableIndex(sc)
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Week(0))
	assert.Equal(t, 0, ix.Week(13))
	assert.Equal(t, 1, ix.Week(14))
	assert.Equal(t, 2, ix.Week(29))
	assert.Equal(t, 3, ix.NumWeeks())
}

func TestIndexRejectsInvalidContext(t *testing.T) {
	sc := &schedule.Context{
		Residents: []schedule.Resident{{ID: "a"}, {ID: "a"}},
	}
	_, err := BuildVariableIndex(sc)
	assert.ErrorIs(t, err, schedule.ErrInvalidContext)
}
