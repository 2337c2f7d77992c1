package content

import (
	"context"

	"studio-site/internal/domain"
)

func (s *Service) collection(ctx context.Context, name, id string) (domain.Collection, error) {
	c, ok := domain.ParseCollection(name)
	if !ok {
		return "", domain.ErrValidation("collection %q cannot be reordered", name)
	}
	if err := s.authorize(ctx, c.Capability(), "REORDER", string(c), id); err != nil {
		return "", err
	}
	return c, nil
}

// Reorder moves the item at index from to index to and commits the new
// order of the whole collection in one transaction.
func (s *Service) Reorder(ctx context.Context, collection string, from, to int) ([]domain.OrderedItem, error) {
	c, err := s.collection(ctx, collection, "")
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Order.ListOrder(ctx, c)
	if err != nil {
		return nil, err
	}
	next, err := domain.MoveItem(domain.IDs(items), from, to)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, c, next)
}

// ApplyOrder commits a full client-side ordering, as sent after a drag.
// ids must be a permutation of the collection's current members.
func (s *Service) ApplyOrder(ctx context.Context, collection string, ids []string) ([]domain.OrderedItem, error) {
	c, err := s.collection(ctx, collection, "")
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Order.ListOrder(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePermutation(domain.IDs(items), ids); err != nil {
		return nil, err
	}
	return s.commit(ctx, c, ids)
}

// Move shifts item id one step up or down. Moves past either end are no-ops.
func (s *Service) Move(ctx context.Context, collection, id string, dir domain.MoveDirection) ([]domain.OrderedItem, error) {
	c, err := s.collection(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Order.ListOrder(ctx, c)
	if err != nil {
		return nil, err
	}
	ids := domain.IDs(items)
	from := -1
	for i, v := range ids {
		if v == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, domain.ErrNotFound("item %q not found in %s", id, c)
	}
	to, err := domain.StepIndex(from, len(ids), dir)
	if err != nil {
		return nil, err
	}
	if to == from {
		return items, nil
	}
	next, err := domain.MoveItem(ids, from, to)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, c, next)
}

func (s *Service) commit(ctx context.Context, c domain.Collection, ids []string) ([]domain.OrderedItem, error) {
	order := domain.Renumber(ids)
	if err := s.record(ctx, "REORDER", string(c), "", s.repos.Order.ApplyOrder(ctx, c, order)); err != nil {
		return nil, err
	}
	out := make([]domain.OrderedItem, len(order))
	for i, a := range order {
		out[i] = domain.OrderedItem{ID: a.ID, DisplayOrder: a.Position}
	}
	return out, nil
}
