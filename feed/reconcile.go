package feed

import (
	"github.com/google/uuid"
	"github.com/realmkit/realmfeed/model"
)

// ProposalDelta is the outcome of diffing the authoritative external
// proposal list against the locally stored proposal feed items.
type ProposalDelta struct {
	// Dirty holds existing rows whose updated timestamp drifted from the
	// external record and must be rewritten.
	Dirty []*model.FeedItem
	// Fresh holds newly constructed rows for proposals with no local
	// counterpart. Their metadata starts zeroed.
	Fresh []*model.FeedItem
}

// Empty reports whether the sync found nothing to persist. An empty delta
// must result in zero writes so a no-change sync stays idempotent.
func (d *ProposalDelta) Empty() bool {
	return len(d.Dirty) == 0 && len(d.Fresh) == 0
}

// Changed returns every row the sync will persist, dirty and fresh
// combined, for the one batch write.
func (d *ProposalDelta) Changed() []*model.FeedItem {
	return append(append([]*model.FeedItem{}, d.Dirty...), d.Fresh...)
}

// DiffProposals compares the external proposal set against the local
// proposal rows of the same realm and environment. Matching is by source
// ref (the proposal's public identity). For a matched pair the updated
// timestamps decide: any difference marks the local row dirty and
// overwrites its timestamp. Unmatched external proposals become fresh
// rows with zeroed metadata. Local rows absent upstream are left alone.
func DiffProposals(realmID string, env model.Environment, local []*model.FeedItem, external []*model.Proposal) *ProposalDelta {
	byRef := make(map[string]*model.FeedItem, len(local))
	for _, item := range local {
		byRef[item.SourceRef] = item
	}

	delta := &ProposalDelta{}
	for _, proposal := range external {
		item, ok := byRef[proposal.PublicIdentity]
		if !ok {
			fresh := &model.FeedItem{
				Id:          uuid.New().String(),
				CreatedAt:   proposal.Created,
				UpdatedAt:   proposal.Updated,
				RealmID:     realmID,
				Environment: env,
				Type:        model.FeedItemTypeProposal,
				SourceRef:   proposal.PublicIdentity,
			}
			// Zero value snapshot, serialized explicitly so the column is
			// never a null blob.
			fresh.SetMeta(model.FeedItemMetadata{})
			delta.Fresh = append(delta.Fresh, fresh)
			continue
		}

		if !item.UpdatedAt.Equal(proposal.Updated) {
			item.UpdatedAt = proposal.Updated
			delta.Dirty = append(delta.Dirty, item)
		}
	}

	return delta
}
