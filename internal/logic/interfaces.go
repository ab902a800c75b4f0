package logic

import (
	"context"

	"cmspublish/internal/domain"
)

// ListSource provides publish lists and accepts publish requests
type ListSource interface {
	// FetchGroups returns the current publish list. Related and sibling
	// resources are attached according to opts.
	FetchGroups(ctx context.Context, opts domain.PublishOptions) ([]domain.PublishGroup, error)

	// Submit publishes req.PublishIDs and drops req.RemoveIDs from the list
	Submit(ctx context.Context, req domain.PublishRequest) (domain.PublishResult, error)
}

// FilterRelated keeps the related resources opts asks for. Sibling entries
// follow IncludeSiblings, all others follow IncludeRelated.
func FilterRelated(related []domain.PublishResource, opts domain.PublishOptions) []domain.PublishResource {
	var kept []domain.PublishResource
	for _, r := range related {
		isSibling := r.Relation == domain.RelationSibling
		if (isSibling && opts.IncludeSiblings) || (!isSibling && opts.IncludeRelated) {
			kept = append(kept, r)
		}
	}
	return kept
}
