package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidContext is returned when a scheduling context is structurally
// inconsistent.
//
// This is a schedule-layer sentinel used internally; the root package may
// translate it into its public error contract.
var ErrInvalidContext = errors.New("invalid scheduling context")

// Resident is one schedulable person.
type Resident struct {
	// ID is the external identifier the orchestrator uses for this person.
	ID string

	// Credentialed reports whether the resident may fill role templates
	// that require a credential.
	Credentialed bool
}

// Block is one time block. Blocks are ordered; the ID of a block must equal
// its position in the context's block slice.
type Block struct {
	ID      int
	Weekend bool
}

// RoleTemplate describes one kind of work a block may be staffed with.
type RoleTemplate struct {
	ID                 string
	RequiresCredential bool
}

// Assignment is one decoded (resident, block, template) placement.
// Template is empty when the context carries no role templates.
type Assignment struct {
	Resident string
	Block    int
	Template string
}

// Context is an immutable snapshot of one scheduling problem.
//
// Slice positions are the stable integer indices referenced throughout the
// solver. Context values must not be mutated after construction; they are
// shared read-only across concurrent solver reads.
type Context struct {
	// ID optionally labels the schedule this context belongs to. It is
	// carried into archived run records and is not validated.
	ID string

	Residents []Resident
	Blocks    []Block
	Templates []RoleTemplate

	// Unavailable maps a resident ID to the block indices at which that
	// resident cannot work.
	Unavailable map[string][]int
}

// NewContext builds a validated scheduling context.
//
// Empty resident, block, or template slices are valid; they simply yield a
// problem with no variables downstream.
func NewContext(residents []Resident, blocks []Block, templates []RoleTemplate, unavailable map[string][]int) (*Context, error) {
	c := &Context{
		Residents:   residents,
		Blocks:      blocks,
		Templates:   templates,
		Unavailable: unavailable,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks structural consistency: unique resident and template IDs,
// block IDs matching their positions, and unavailability entries referencing
// known residents and in-range blocks.
//
// Violations are formulation errors and surface immediately; no partial solve
// is attempted on an inconsistent context.
func (c *Context) Validate() error {
	residents := make(map[string]struct{}, len(c.Residents))
	for i, r := range c.Residents {
		if r.ID == "" {
			return fmt.Errorf("%w: resident at position %d has empty ID", ErrInvalidContext, i)
		}
		if _, ok := residents[r.ID]; ok {
			return fmt.Errorf("%w: duplicate resident ID %q", ErrInvalidContext, r.ID)
		}
		residents[r.ID] = struct{}{}
	}

	for i, b := range c.Blocks {
		if b.ID != i {
			return fmt.Errorf("%w: block at position %d has ID %d", ErrInvalidContext, i, b.ID)
		}
	}

	templates := make(map[string]struct{}, len(c.Templates))
	for i, tpl := range c.Templates {
		if tpl.ID == "" {
			return fmt.Errorf("%w: template at position %d has empty ID", ErrInvalidContext, i)
		}
		if _, ok := templates[tpl.ID]; ok {
			return fmt.Errorf("%w: duplicate template ID %q", ErrInvalidContext, tpl.ID)
		}
		templates[tpl.ID] = struct{}{}
	}

	for id, blocks := range c.Unavailable {
		if _, ok := residents[id]; !ok {
			return fmt.Errorf("%w: unavailability references unknown resident %q", ErrInvalidContext, id)
		}
		for _, b := range blocks {
			if b < 0 || b >= len(c.Blocks) {
				return fmt.Errorf("%w: unavailability for resident %q references block %d (have %d blocks)", ErrInvalidContext, id, b, len(c.Blocks))
			}
		}
	}

	return nil
}

// ResidentIndex returns the position of the resident with the given ID, or -1.
func (c *Context) ResidentIndex(id string) int {
	for i, r := range c.Residents {
		if r.ID == id {
			return i
		}
	}
	return -1
}
