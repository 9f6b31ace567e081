package feed

import (
	"context"

	"github.com/realmkit/realmfeed/model"
)

// PostProvider resolves locally authored post payloads in bulk, keyed by
// post id. Ids that cannot be resolved are simply absent from the map.
type PostProvider interface {
	ResolvePosts(ctx context.Context, realmID string, ids []string, requestingUser string, env model.Environment) (map[string]*model.Post, error)
}

// ProposalProvider resolves governance proposals from the authoritative
// external registry. ResolveProposalsByIds may omit proposals the
// requesting user is not allowed to see; callers drop those items rather
// than failing.
type ProposalProvider interface {
	ResolveProposalsForRealm(ctx context.Context, realmID string, env model.Environment) ([]*model.Proposal, error)
	ResolveProposalsByIds(ctx context.Context, realmID string, ids []string, requestingUser string, env model.Environment) (map[string]*model.Proposal, error)
}

// MemberProvider resolves the full membership of a realm.
type MemberProvider interface {
	ResolveMembers(ctx context.Context, realmID string, env model.Environment) ([]*model.Member, error)
}
