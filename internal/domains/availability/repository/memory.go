package repository

import (
	"context"
	"slices"
	"staysync/internal/domains/availability/model"
	"staysync/shared/daterange"
	"staysync/shared/timezone"
	"sync"
)

// Memory keeps blocks in process. It backs tests and single-node development runs.
type Memory struct {
	mu     sync.RWMutex
	blocks map[string]model.Block
}

func NewMemory() *Memory {
	return &Memory{blocks: map[string]model.Block{}}
}

func (m *Memory) list(match func(model.Block) bool) []model.Block {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []model.Block{}

	for _, block := range m.blocks {
		if match(block) {
			out = append(out, block)
		}
	}

	slices.SortFunc(out, func(a, b model.Block) int {
		if c := a.DateRangeStart.Compare(b.DateRangeStart); c != 0 {
			return c
		}

		return model.ComparePrecedence(a, b)
	})

	return out
}

func (m *Memory) ListByListing(_ context.Context, listingID string) ([]model.Block, error) {
	return m.list(func(b model.Block) bool { return b.ListingID == listingID }), nil
}

func (m *Memory) ListBySource(_ context.Context, listingID, source string) ([]model.Block, error) {
	return m.list(func(b model.Block) bool { return b.ListingID == listingID && b.Source == source }), nil
}

func (m *Memory) ListOverlapping(_ context.Context, listingID string, window daterange.Range) ([]model.Block, error) {
	return m.list(func(b model.Block) bool { return b.ListingID == listingID && b.Range().Overlaps(window) }), nil
}

func (m *Memory) GetInternal(_ context.Context, bookingID string) (model.Block, error) {
	found := m.list(func(b model.Block) bool {
		return b.Source == model.SourceInternal && b.SourceReference == bookingID
	})
	if len(found) == 0 {
		return model.Block{}, nil
	}

	return found[0], nil
}

func (m *Memory) ReplaceSource(_ context.Context, listingID, source string, blocks []model.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, block := range m.blocks {
		if block.ListingID == listingID && block.Source == source {
			delete(m.blocks, id)
		}
	}

	for _, block := range blocks {
		m.blocks[block.ID] = block
	}

	return nil
}

func (m *Memory) Upsert(_ context.Context, block model.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.blocks {
		if existing.Source == block.Source && existing.SourceReference == block.SourceReference {
			delete(m.blocks, id)
		}
	}

	m.blocks[block.ID] = block

	return nil
}

func (m *Memory) DeleteBySourceReference(_ context.Context, source, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, block := range m.blocks {
		if block.Source == source && block.SourceReference == reference {
			delete(m.blocks, id)
		}
	}

	return nil
}

func (m *Memory) SetAuthoritative(_ context.Context, listingID string, promote, demote []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := timezone.Now()

	for flag, ids := range map[bool][]string{true: promote, false: demote} {
		for _, id := range ids {
			block, ok := m.blocks[id]
			if !ok || block.ListingID != listingID {
				continue
			}

			block.Authoritative = flag
			block.ModifiedAt = now
			m.blocks[id] = block
		}
	}

	return nil
}
