package qubo

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

// Weekly bucketing used by the duty-hour term. Blocks are 12-hour shifts, so
// a week spans 14 of them and the 80-hour ceiling allows 6 per resident.
const (
	BlocksPerWeek  = 14
	MaxWeeklyHours = 80
	HoursPerBlock  = 12
)

// noTemplate marks a variable enumerated without a role template.
const noTemplate = int32(-1)

// VariableIndex is the bijection between eligible (resident, block, template)
// triples and flat variable ids in [0, NumVariables).
//
// It is stored as flat parallel arrays indexed by variable id, built once per
// formulation and never resized, so concurrent solver reads can share it
// without synchronization. Weekend blocks are excluded outright, as are
// triples whose template requires a credential the resident lacks. A context
// with no role templates enumerates plain (resident, block) pairs instead.
type VariableIndex struct {
	numResidents int
	numBlocks    int

	residents []int32 // variable id -> resident index
	blocks    []int32 // variable id -> block index
	templates []int32 // variable id -> template index, noTemplate when absent

	byResident [][]int32 // resident index -> variable ids, ascending
	byBlock    [][]int32 // block index -> variable ids, ascending

	weekend     *roaring.Bitmap   // weekend block ids
	unavailable []*roaring.Bitmap // resident index -> unavailable block ids, nil entries mean always available
}

// BuildVariableIndex validates the context and enumerates every eligible
// triple. Enumeration order is resident-major, then block, then template,
// which fixes the variable numbering for a given context.
func BuildVariableIndex(sc *schedule.Context) (*VariableIndex, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	ix := &VariableIndex{
		numResidents: len(sc.Residents),
		numBlocks:    len(sc.Blocks),
		byResident:   make([][]int32, len(sc.Residents)),
		byBlock:      make([][]int32, len(sc.Blocks)),
		weekend:      roaring.New(),
		unavailable:  make([]*roaring.Bitmap, len(sc.Residents)),
	}

	for _, b := range sc.Blocks {
		if b.Weekend {
			ix.weekend.Add(uint32(b.ID))
		}
	}
	for id, blocks := range sc.Unavailable {
		ri := sc.ResidentIndex(id)
		bm := roaring.New()
		for _, b := range blocks {
			bm.Add(uint32(b))
		}
		ix.unavailable[ri] = bm
	}

	for ri, r := range sc.Residents {
		for bi := range sc.Blocks {
			if ix.weekend.Contains(uint32(bi)) {
				continue
			}
			if len(sc.Templates) == 0 {
				ix.appendVariable(int32(ri), int32(bi), noTemplate)
				continue
			}
			for ti, tpl := range sc.Templates {
				if tpl.RequiresCredential && !r.Credentialed {
					continue
				}
				ix.appendVariable(int32(ri), int32(bi), int32(ti))
			}
		}
	}

	return ix, nil
}

func (ix *VariableIndex) appendVariable(resident, block, template int32) {
	v := int32(len(ix.residents))
	ix.residents = append(ix.residents, resident)
	ix.blocks = append(ix.blocks, block)
	ix.templates = append(ix.templates, template)
	ix.byResident[resident] = append(ix.byResident[resident], v)
	ix.byBlock[block] = append(ix.byBlock[block], v)
}

// NumVariables returns the number of enumerated triples.
func (ix *VariableIndex) NumVariables() int {
	return len(ix.residents)
}

// Triple returns the (resident, block, template) indices behind variable v.
// The template index is -1 when the context carries no role templates.
func (ix *VariableIndex) Triple(v int) (resident, block, template int) {
	return int(ix.residents[v]), int(ix.blocks[v]), int(ix.templates[v])
}

// VariablesForResident returns the variable ids belonging to one resident.
// The returned slice is shared; callers must not mutate it.
func (ix *VariableIndex) VariablesForResident(resident int) []int32 {
	return ix.byResident[resident]
}

// VariablesForBlock returns the variable ids touching one block.
// The returned slice is shared; callers must not mutate it.
func (ix *VariableIndex) VariablesForBlock(block int) []int32 {
	return ix.byBlock[block]
}

// Unavailable reports whether the resident is marked unavailable for the block.
func (ix *VariableIndex) Unavailable(resident, block int) bool {
	bm := ix.unavailable[resident]
	return bm != nil && bm.Contains(uint32(block))
}

// Week returns the weekly bucket a block falls into.
func (ix *VariableIndex) Week(block int) int {
	return block / BlocksPerWeek
}

// NumWeeks returns the number of weekly buckets spanned by the context.
func (ix *VariableIndex) NumWeeks() int {
	if ix.numBlocks == 0 {
		return 0
	}
	return (ix.numBlocks-1)/BlocksPerWeek + 1
}

// NumResidents returns the resident count of the underlying context.
func (ix *VariableIndex) NumResidents() int {
	return ix.numResidents
}
