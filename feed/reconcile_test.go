package feed

import (
	"testing"
	"time"

	"github.com/realmkit/realmfeed/model"
	"github.com/stretchr/testify/require"
)

const testRealm = "realm-1"

func proposalAt(ref string, updated time.Time) *model.Proposal {
	return &model.Proposal{
		PublicIdentity: ref,
		RealmID:        testRealm,
		Name:           "proposal " + ref,
		State:          model.ProposalStateVoting,
		Created:        updated.Add(-24 * time.Hour),
		Updated:        updated,
	}
}

func localItemAt(ref string, updated time.Time) *model.FeedItem {
	item := &model.FeedItem{
		Id:          "item-" + ref,
		CreatedAt:   updated.Add(-24 * time.Hour),
		UpdatedAt:   updated,
		RealmID:     testRealm,
		Environment: model.EnvironmentMainnet,
		Type:        model.FeedItemTypeProposal,
		SourceRef:   ref,
	}
	item.SetMeta(model.FeedItemMetadata{})
	return item
}

func TestDiffProposalsNoUpstreamChange(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	local := []*model.FeedItem{localItemAt("p1", now), localItemAt("p2", now)}
	external := []*model.Proposal{proposalAt("p1", now), proposalAt("p2", now)}

	delta := DiffProposals(testRealm, model.EnvironmentMainnet, local, external)
	require.True(t, delta.Empty())
	require.Empty(t, delta.Changed())
}

func TestDiffProposalsDetectsNewProposal(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	local := []*model.FeedItem{localItemAt("p1", now)}
	external := []*model.Proposal{proposalAt("p1", now), proposalAt("p2", now)}

	delta := DiffProposals(testRealm, model.EnvironmentMainnet, local, external)
	require.False(t, delta.Empty())
	require.Empty(t, delta.Dirty)
	require.Equal(t, 1, len(delta.Fresh))

	fresh := delta.Fresh[0]
	require.NotEmpty(t, fresh.Id)
	require.Equal(t, testRealm, fresh.RealmID)
	require.Equal(t, model.EnvironmentMainnet, fresh.Environment)
	require.Equal(t, model.FeedItemTypeProposal, fresh.Type)
	require.Equal(t, "p2", fresh.SourceRef)
	require.True(t, fresh.UpdatedAt.Equal(now))

	meta, err := fresh.Meta()
	require.NoError(t, err)
	require.Equal(t, model.FeedItemMetadata{}, meta)
}

func TestDiffProposalsDetectsTimestampDrift(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	drifted := now.Add(2 * time.Hour)
	local := []*model.FeedItem{localItemAt("p1", now), localItemAt("p2", now)}
	external := []*model.Proposal{proposalAt("p1", now), proposalAt("p2", drifted)}

	delta := DiffProposals(testRealm, model.EnvironmentMainnet, local, external)
	require.Equal(t, 1, len(delta.Dirty))
	require.Empty(t, delta.Fresh)
	require.Equal(t, "item-p2", delta.Dirty[0].Id)
	require.True(t, delta.Dirty[0].UpdatedAt.Equal(drifted))
}

func TestDiffProposalsIsIdempotent(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	drifted := now.Add(time.Hour)
	local := []*model.FeedItem{localItemAt("p1", now)}
	external := []*model.Proposal{proposalAt("p1", drifted), proposalAt("p2", now)}

	first := DiffProposals(testRealm, model.EnvironmentMainnet, local, external)
	require.False(t, first.Empty())

	// After applying the first delta, a second sync against the same
	// upstream state must find nothing to write.
	applied := append([]*model.FeedItem{}, local...)
	applied = append(applied, first.Fresh...)
	second := DiffProposals(testRealm, model.EnvironmentMainnet, applied, external)
	require.True(t, second.Empty())
}

func TestDiffProposalsLeavesUnlistedRowsAlone(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	local := []*model.FeedItem{localItemAt("p1", now), localItemAt("orphan", now)}
	external := []*model.Proposal{proposalAt("p1", now)}

	delta := DiffProposals(testRealm, model.EnvironmentMainnet, local, external)
	require.True(t, delta.Empty())
}
