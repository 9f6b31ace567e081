package feed

import (
	"context"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/realmkit/realmfeed/events"
	"github.com/realmkit/realmfeed/model"
	Logger "github.com/realmkit/realmfeed/utils/log"
	"gorm.io/gorm"
)

/*

Service aggregates posts and governance proposals of a realm into one
ranked feed and serves the read, vote and sync operations on it.

DB: feed item and vote storage. The service never caches rows across
	calls, every operation re-reads current state.
Posts / Proposals / Members: external payload providers.
Events: optional feed delta bus for monitoring, may be nil.
PageSize: page size used when a request carries only a cursor. Zero
	falls back to DefaultPageSize.

Concurrent votes on the same item are resolved last-writer-wins: the
item+vote pair is written in one transaction, but there is no optimistic
version check across the read-modify-write. Callers needing strict
serialization must add a row lock at the persistence boundary.

*/
type Service struct {
	DB        *gorm.DB
	Posts     PostProvider
	Proposals ProposalProvider
	Members   MemberProvider
	Events    *events.FeedEventBus
	PageSize  int
}

// guardEnvironment is the hard precondition of every operation: devnet is
// rejected outright, before storage or providers are touched.
func guardEnvironment(env model.Environment) error {
	if !env.IsValid() {
		return errors.Wrapf(ErrMalformedData, "unknown environment %s", env)
	}
	if env == model.EnvironmentDevnet {
		return ErrUnsupportedDevnet
	}
	return nil
}

func (s *Service) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultPageSize
}

// GetFeedItem loads one feed item of the realm and resolves its payload.
func (s *Service) GetFeedItem(ctx context.Context, requestingUser string, realmID string, env model.Environment, id string) (*RankedFeedItem, error) {
	if err := guardEnvironment(env); err != nil {
		return nil, err
	}

	var item model.FeedItem
	res := s.DB.WithContext(ctx).
		Where("id = ? AND realm_id = ? AND environment = ?", id, realmID, env).
		First(&item)
	if res.RowsAffected != 1 {
		return nil, errors.Wrapf(ErrNotFound, "feed item %s", id)
	}

	resolved, err := s.resolveFeedItems(ctx, requestingUser, realmID, env, []*model.FeedItem{&item})
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		// The row exists but its payload is not visible to this user.
		return nil, errors.Wrapf(ErrNotFound, "feed item %s", id)
	}
	return resolved[0], nil
}

// ListFeedItems returns one page of the realm's feed under the requested
// sort order. The backing rows are fully materialized, ranked, then
// sliced by the paginator.
func (s *Service) ListFeedItems(ctx context.Context, requestingUser string, realmID string, env model.Environment, order model.SortOrder, args PageArgs) (*Connection[*RankedFeedItem], error) {
	if err := guardEnvironment(env); err != nil {
		return nil, err
	}
	if !order.IsValid() || order == model.SortOrderAlphabetical {
		return nil, errors.Wrapf(ErrMalformedData, "sort order %s is not a feed order", order)
	}

	var rows []*model.FeedItem
	if err := s.DB.WithContext(ctx).
		Where("realm_id = ? AND environment = ?", realmID, env).
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load feed items")
	}

	items, err := s.resolveFeedItems(ctx, requestingUser, realmID, env, rows)
	if err != nil {
		return nil, err
	}

	sortRankedItems(items, order)
	return Paginate(items, args, order, s.pageSize())
}

// GetPinnedFeedItems returns the feed items of proposals currently in an
// active voting or executable state, ranked by state priority then
// recency. Active proposals without a synced feed row are skipped.
func (s *Service) GetPinnedFeedItems(ctx context.Context, requestingUser string, realmID string, env model.Environment) ([]*RankedFeedItem, error) {
	if err := guardEnvironment(env); err != nil {
		return nil, err
	}

	proposals, err := s.Proposals.ResolveProposalsForRealm(ctx, realmID, env)
	if err != nil {
		return nil, errors.Wrap(err, "fail to list realm proposals")
	}

	active := []*model.Proposal{}
	refs := []string{}
	for _, proposal := range proposals {
		if proposal.State.IsActive() {
			active = append(active, proposal)
			refs = append(refs, proposal.PublicIdentity)
		}
	}
	if len(active) == 0 {
		return []*RankedFeedItem{}, nil
	}

	var rows []*model.FeedItem
	if err := s.DB.WithContext(ctx).
		Where("realm_id = ? AND environment = ? AND type = ? AND source_ref IN ?",
			realmID, env, model.FeedItemTypeProposal, refs).
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load pinned feed items")
	}
	byRef := make(map[string]*model.FeedItem, len(rows))
	for _, row := range rows {
		byRef[row.SourceRef] = row
	}

	pinned := []*RankedFeedItem{}
	for _, proposal := range active {
		row, ok := byRef[proposal.PublicIdentity]
		if !ok {
			continue
		}
		meta, err := row.Meta()
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt metadata on feed item %s", row.Id)
		}
		pinned = append(pinned, &RankedFeedItem{Item: *row, Meta: meta, Proposal: proposal})
	}

	sort.SliceStable(pinned, func(i, j int) bool {
		a, b := pinned[i].Proposal, pinned[j].Proposal
		if a.State.PinPriority() != b.State.PinPriority() {
			return a.State.PinPriority() < b.State.PinPriority()
		}
		if !a.Created.Equal(b.Created) {
			return a.Created.After(b.Created)
		}
		return a.PublicIdentity < b.PublicIdentity
	})

	return pinned, nil
}

// ListMembers returns one alphabetical page of the realm's membership.
func (s *Service) ListMembers(ctx context.Context, realmID string, env model.Environment, args PageArgs) (*Connection[*model.Member], error) {
	if err := guardEnvironment(env); err != nil {
		return nil, err
	}

	members, err := s.Members.ResolveMembers(ctx, realmID, env)
	if err != nil {
		return nil, errors.Wrap(err, "fail to list realm members")
	}

	sort.SliceStable(members, func(i, j int) bool {
		return CompareMembersAlphabetical(members[i], members[j]) < 0
	})

	return Paginate(members, args, model.SortOrderAlphabetical, s.pageSize())
}

// SubmitVote applies one member's approve/disapprove vote to a feed item
// and persists the new metadata snapshot together with the vote row in a
// single transaction.
func (s *Service) SubmitVote(ctx context.Context, requestingUser string, realmID string, env model.Environment, id string, voteType model.VoteType) (*RankedFeedItem, error) {
	if err := guardEnvironment(env); err != nil {
		return nil, err
	}
	if requestingUser == "" {
		return nil, ErrUnauthorized
	}
	if !voteType.IsValid() {
		return nil, errors.Wrapf(ErrMalformedData, "unknown vote type %s", voteType)
	}

	var item model.FeedItem
	res := s.DB.WithContext(ctx).
		Where("id = ? AND realm_id = ? AND environment = ?", id, realmID, env).
		First(&item)
	if res.RowsAffected != 1 {
		return nil, errors.Wrapf(ErrNotFound, "feed item %s", id)
	}

	var existing *model.Vote
	var vote model.Vote
	res = s.DB.WithContext(ctx).
		Where("feed_item_id = ? AND user_id = ?", item.Id, requestingUser).
		First(&vote)
	if res.RowsAffected == 1 {
		existing = &vote
	}

	meta, err := item.Meta()
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt metadata on feed item %s", item.Id)
	}

	result := ApplyVote(meta, existing, voteType, time.Since(item.CreatedAt))

	// Pure transform first, then one write of the whole snapshot. The item
	// row is cloned so a failed transaction leaves the loaded copy intact.
	var updated model.FeedItem
	if err := copier.Copy(&updated, &item); err != nil {
		return nil, errors.Wrap(err, "fail to clone feed item")
	}
	if err := updated.SetMeta(result.Metadata); err != nil {
		return nil, errors.Wrap(err, "fail to encode metadata")
	}
	updated.UpdatedAt = time.Now()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		switch result.Mutation {
		case VoteMutationCreate:
			row := result.Vote
			row.FeedItemID = item.Id
			row.UserID = requestingUser
			return tx.Create(&row).Error
		case VoteMutationUpdate:
			row := result.Vote
			return tx.Save(&row).Error
		case VoteMutationDelete:
			return tx.Where("feed_item_id = ? AND user_id = ?", item.Id, requestingUser).
				Delete(&model.Vote{}).Error
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to persist vote")
	}

	s.publishDelta(&events.FeedDelta{
		Kind:        events.DeltaKindVote,
		RealmID:     realmID,
		Environment: env,
		FeedItemID:  item.Id,
		Updated:     1,
	})

	resolved, err := s.resolveFeedItems(ctx, requestingUser, realmID, env, []*model.FeedItem{&updated})
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "feed item %s", id)
	}
	return resolved[0], nil
}

// SyncProposals reconciles the realm's locally stored proposal feed items
// with the authoritative external proposal list and returns how many rows
// were written. A sync with no upstream change performs zero writes.
func (s *Service) SyncProposals(ctx context.Context, realmID string, env model.Environment) (int, error) {
	if err := guardEnvironment(env); err != nil {
		return 0, err
	}

	external, err := s.Proposals.ResolveProposalsForRealm(ctx, realmID, env)
	if err != nil {
		return 0, errors.Wrap(err, "fail to list realm proposals")
	}

	refs := make([]string, 0, len(external))
	for _, proposal := range external {
		refs = append(refs, proposal.PublicIdentity)
	}

	var local []*model.FeedItem
	if len(refs) > 0 {
		if err := s.DB.WithContext(ctx).
			Where("realm_id = ? AND environment = ? AND type = ? AND source_ref IN ?",
				realmID, env, model.FeedItemTypeProposal, refs).
			Find(&local).Error; err != nil {
			return 0, errors.Wrap(err, "fail to load proposal feed items")
		}
	}

	delta := DiffProposals(realmID, env, local, external)
	if delta.Empty() {
		return 0, nil
	}

	// One batch, all or nothing. Save upserts by primary key, covering
	// both the dirty and the fresh rows.
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range delta.Changed() {
			if err := tx.Save(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "fail to persist proposal sync batch")
	}

	s.publishDelta(&events.FeedDelta{
		Kind:        events.DeltaKindSync,
		RealmID:     realmID,
		Environment: env,
		Created:     len(delta.Fresh),
		Updated:     len(delta.Dirty),
	})

	return len(delta.Fresh) + len(delta.Dirty), nil
}

// resolveFeedItems converts raw rows into payload resolved items. Rows
// are partitioned by type and each partition's payloads are fetched in
// one bulk provider call. Rows whose payload cannot be resolved, e.g. a
// proposal hidden from the requesting user, are dropped, not errored.
func (s *Service) resolveFeedItems(ctx context.Context, requestingUser string, realmID string, env model.Environment, rows []*model.FeedItem) ([]*RankedFeedItem, error) {
	postIds := []string{}
	proposalIds := []string{}
	for _, row := range rows {
		switch row.Type {
		case model.FeedItemTypePost:
			postIds = append(postIds, row.SourceRef)
		case model.FeedItemTypeProposal:
			proposalIds = append(proposalIds, row.SourceRef)
		}
	}

	posts := map[string]*model.Post{}
	if len(postIds) > 0 {
		var err error
		posts, err = s.Posts.ResolvePosts(ctx, realmID, postIds, requestingUser, env)
		if err != nil {
			return nil, errors.Wrap(err, "fail to resolve posts")
		}
	}

	proposals := map[string]*model.Proposal{}
	if len(proposalIds) > 0 {
		var err error
		proposals, err = s.Proposals.ResolveProposalsByIds(ctx, realmID, proposalIds, requestingUser, env)
		if err != nil {
			return nil, errors.Wrap(err, "fail to resolve proposals")
		}
	}

	items := make([]*RankedFeedItem, 0, len(rows))
	for _, row := range rows {
		meta, err := row.Meta()
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt metadata on feed item %s", row.Id)
		}
		ranked := &RankedFeedItem{Item: *row, Meta: meta}
		switch row.Type {
		case model.FeedItemTypePost:
			post, ok := posts[row.SourceRef]
			if !ok {
				continue
			}
			ranked.Post = post
		case model.FeedItemTypeProposal:
			proposal, ok := proposals[row.SourceRef]
			if !ok {
				continue
			}
			ranked.Proposal = proposal
		default:
			continue
		}
		items = append(items, ranked)
	}

	return items, nil
}

func (s *Service) publishDelta(delta *events.FeedDelta) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishDelta(delta); err != nil {
		Logger.Log.Errorln("cannot publish feed delta: ", err)
	}
}
