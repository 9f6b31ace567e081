package feed

import (
	"testing"
	"time"

	"github.com/realmkit/realmfeed/model"
	"github.com/stretchr/testify/require"
)

func TestRelevanceWeight(t *testing.T) {
	// A vote on a brand new item clamps to the minimum weight.
	require.Equal(t, float64(1), RelevanceWeight(0))
	require.Equal(t, float64(1), RelevanceWeight(4*time.Hour))
	require.Equal(t, float64(2), RelevanceWeight(5*time.Hour))
	require.Equal(t, float64(2), RelevanceWeight(8*time.Hour))
	require.Equal(t, float64(3), RelevanceWeight(9*time.Hour))
}

func TestApplyVoteNewApprove(t *testing.T) {
	meta := model.FeedItemMetadata{RelevanceScore: 1.5, RawScore: 2, TopAllTimeScore: 4}

	// 9 hours of age gives weight 3.
	result := ApplyVote(meta, nil, model.VoteTypeApprove, 9*time.Hour)

	require.Equal(t, VoteMutationCreate, result.Mutation)
	require.Equal(t, model.VoteTypeApprove, result.Vote.Type)
	require.Equal(t, float64(3), result.Vote.RelevanceWeight)
	require.Equal(t, 4.5, result.Metadata.RelevanceScore)
	require.Equal(t, int64(3), result.Metadata.RawScore)
	require.Equal(t, int64(5), result.Metadata.TopAllTimeScore)
}

func TestApplyVoteNewDisapprove(t *testing.T) {
	meta := model.FeedItemMetadata{}

	result := ApplyVote(meta, nil, model.VoteTypeDisapprove, 0)

	require.Equal(t, VoteMutationCreate, result.Mutation)
	require.Equal(t, float64(1), result.Vote.RelevanceWeight)
	require.Equal(t, float64(-1), result.Metadata.RelevanceScore)
	require.Equal(t, int64(-1), result.Metadata.RawScore)
	require.Equal(t, int64(-1), result.Metadata.TopAllTimeScore)
}

func TestApplyVoteToggleOffRevertsExactly(t *testing.T) {
	baseline := model.FeedItemMetadata{RelevanceScore: 7.5, RawScore: 3, TopAllTimeScore: 9}

	voted := ApplyVote(baseline, nil, model.VoteTypeApprove, 10*time.Hour)
	require.Equal(t, baseline.RelevanceScore+voted.Vote.RelevanceWeight, voted.Metadata.RelevanceScore)

	// Repeating the same vote much later must reverse with the stored
	// weight, not one recomputed from the larger age.
	toggled := ApplyVote(voted.Metadata, &voted.Vote, model.VoteTypeApprove, 100*time.Hour)
	require.Equal(t, VoteMutationDelete, toggled.Mutation)
	require.Equal(t, baseline, toggled.Metadata)
}

func TestApplyVoteTypeChangeDoublesStoredWeight(t *testing.T) {
	baseline := model.FeedItemMetadata{RelevanceScore: 2, RawScore: 1, TopAllTimeScore: 1}

	voted := ApplyVote(baseline, nil, model.VoteTypeApprove, 12*time.Hour)
	require.Equal(t, float64(3), voted.Vote.RelevanceWeight)
	require.Equal(t, float64(5), voted.Metadata.RelevanceScore)
	require.Equal(t, int64(2), voted.Metadata.RawScore)

	flipped := ApplyVote(voted.Metadata, &voted.Vote, model.VoteTypeDisapprove, 50*time.Hour)
	require.Equal(t, VoteMutationUpdate, flipped.Mutation)
	require.Equal(t, model.VoteTypeDisapprove, flipped.Vote.Type)
	// Weight never changes once locked in.
	require.Equal(t, float64(3), flipped.Vote.RelevanceWeight)
	// Cancel +3 and apply -3: relevance moves by -6 from the approved
	// state, the counters by -2.
	require.Equal(t, float64(-1), flipped.Metadata.RelevanceScore)
	require.Equal(t, int64(0), flipped.Metadata.RawScore)
	require.Equal(t, int64(0), flipped.Metadata.TopAllTimeScore)
}

func TestApplyVoteFlipBackAndForth(t *testing.T) {
	meta := model.FeedItemMetadata{}

	voted := ApplyVote(meta, nil, model.VoteTypeDisapprove, 0)
	flipped := ApplyVote(voted.Metadata, &voted.Vote, model.VoteTypeApprove, time.Hour)
	flippedBack := ApplyVote(flipped.Metadata, &flipped.Vote, model.VoteTypeDisapprove, 2*time.Hour)

	// Two opposite flips cancel out, landing on the first vote's state.
	require.Equal(t, voted.Metadata, flippedBack.Metadata)
	require.Equal(t, model.VoteTypeDisapprove, flippedBack.Vote.Type)
}
