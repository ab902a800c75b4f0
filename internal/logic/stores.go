package logic

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"cmspublish/internal/domain"
)

// MemoryListSource is an in-memory implementation of ListSource
type MemoryListSource struct {
	mu        sync.RWMutex
	groups    []domain.PublishGroup
	submitted []domain.PublishRequest
}

// NewMemoryListSource creates a source serving groups. Resources should carry
// every related and sibling entry; FetchGroups filters them per request.
func NewMemoryListSource(groups []domain.PublishGroup) *MemoryListSource {
	return &MemoryListSource{
		groups: copyGroups(groups),
	}
}

func (s *MemoryListSource) FetchGroups(ctx context.Context, opts domain.PublishOptions) ([]domain.PublishGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := copyGroups(s.groups)
	for gi := range result {
		for ri := range result[gi].Resources {
			res := &result[gi].Resources[ri]
			res.Related = FilterRelated(res.Related, opts)
		}
	}
	return result, nil
}

func (s *MemoryListSource) Submit(ctx context.Context, req domain.PublishRequest) (domain.PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PublishResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	published := make(map[string]bool, len(req.PublishIDs))
	drop := make(map[string]bool, len(req.PublishIDs)+len(req.RemoveIDs))
	for _, id := range req.PublishIDs {
		published[id] = true
		drop[id] = true
	}
	for _, id := range req.RemoveIDs {
		drop[id] = true
	}

	for gi := range s.groups {
		kept := s.groups[gi].Resources[:0]
		for _, res := range s.groups[gi].Resources {
			if !drop[res.ID] {
				res.Related = markPublished(res.Related, published)
				kept = append(kept, res)
			}
		}
		s.groups[gi].Resources = kept
	}

	s.submitted = append(s.submitted, req)

	return domain.PublishResult{
		JobID:     uuid.NewString(),
		Published: len(req.PublishIDs),
		Removed:   len(req.RemoveIDs),
	}, nil
}

// markPublished updates related entries that were published: deleted ones
// are gone, the others become unchanged
func markPublished(related []domain.PublishResource, published map[string]bool) []domain.PublishResource {
	kept := related[:0]
	for _, r := range related {
		if !published[r.ID] {
			kept = append(kept, r)
			continue
		}
		if r.State == domain.ResourceDeleted {
			continue
		}
		r.State = domain.ResourceUnchanged
		if !r.Info.HasProblemType() {
			r.Info = &domain.ProblemInfo{Type: domain.ProblemPublished}
		}
		kept = append(kept, r)
	}
	return kept
}

// Submitted returns the requests received so far
func (s *MemoryListSource) Submitted() []domain.PublishRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.PublishRequest, len(s.submitted))
	copy(result, s.submitted)
	return result
}

func copyGroups(groups []domain.PublishGroup) []domain.PublishGroup {
	result := make([]domain.PublishGroup, len(groups))
	for i, g := range groups {
		resources := make([]domain.PublishResource, len(g.Resources))
		for j, res := range g.Resources {
			related := make([]domain.PublishResource, len(res.Related))
			copy(related, res.Related)
			res.Related = related
			resources[j] = res
		}
		result[i] = domain.PublishGroup{Name: g.Name, Resources: resources}
	}
	return result
}
