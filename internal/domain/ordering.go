package domain

// Collection names a reorderable table. Only these tables accept order writes.
type Collection string

// Reorderable collections.
const (
	CollectionPartners Collection = "partners"
	CollectionServices Collection = "services"
	CollectionProjects Collection = "projects"
	CollectionTeam     Collection = "team_members"
	CollectionAwards   Collection = "awards"
)

// ParseCollection returns the collection named by s.
func ParseCollection(s string) (Collection, bool) {
	c := Collection(s)
	switch c {
	case CollectionPartners, CollectionServices, CollectionProjects, CollectionTeam, CollectionAwards:
		return c, true
	}
	return "", false
}

// Capability returns the console capability that gates writes to c.
func (c Collection) Capability() Capability {
	switch c {
	case CollectionServices:
		return CapServices
	case CollectionTeam:
		return CapTeam
	case CollectionAwards:
		return CapAwards
	default:
		// partners are managed alongside projects
		return CapProjects
	}
}

// OrderedItem is the minimal view of a row in a reorderable collection.
type OrderedItem struct {
	ID           string
	DisplayOrder int
}

// OrderAssignment is one row's new position after a reorder commit.
type OrderAssignment struct {
	ID       string
	Position int
}

// MoveDirection is a single-step move used by the up/down buttons.
type MoveDirection string

// Move directions.
const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// MoveItem returns a copy of ids with the element at from relocated to index to.
// Elements between the two positions shift by one. The input is not modified.
func MoveItem(ids []string, from, to int) ([]string, error) {
	n := len(ids)
	if from < 0 || from >= n {
		return nil, ErrValidation("source index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return nil, ErrValidation("target index %d out of range [0,%d)", to, n)
	}
	out := make([]string, 0, n)
	moved := ids[from]
	for i, id := range ids {
		if i == from {
			continue
		}
		out = append(out, id)
	}
	out = append(out[:to], append([]string{moved}, out[to:]...)...)
	return out, nil
}

// StepIndex returns the target index for a one-step move of the item at index
// i in a list of length n. Moves past either end are clamped.
func StepIndex(i, n int, dir MoveDirection) (int, error) {
	switch dir {
	case MoveUp:
		if i == 0 {
			return 0, nil
		}
		return i - 1, nil
	case MoveDown:
		if i >= n-1 {
			return i, nil
		}
		return i + 1, nil
	}
	return 0, ErrValidation("direction must be 'up' or 'down'")
}

// Renumber assigns dense zero-based positions to ids in list order.
func Renumber(ids []string) []OrderAssignment {
	out := make([]OrderAssignment, len(ids))
	for i, id := range ids {
		out[i] = OrderAssignment{ID: id, Position: i}
	}
	return out
}

// ValidatePermutation checks that next is a reordering of current: same length,
// same members, no duplicates.
func ValidatePermutation(current, next []string) error {
	if len(current) != len(next) {
		return ErrValidation("order lists %d items but the collection has %d", len(next), len(current))
	}
	known := make(map[string]bool, len(current))
	for _, id := range current {
		known[id] = true
	}
	seen := make(map[string]bool, len(next))
	for _, id := range next {
		if !known[id] {
			return ErrValidation("item %q does not belong to this collection", id)
		}
		if seen[id] {
			return ErrValidation("item %q appears more than once", id)
		}
		seen[id] = true
	}
	return nil
}

// IDs extracts the ids of items in their current order.
func IDs(items []OrderedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
