package feed

import (
	"math"
	"time"

	"github.com/realmkit/realmfeed/model"
)

// relevanceWeightWindowHours is the age bucket of the time-decay weight:
// a vote on a 4 hour old item weighs 1, on an 8 hour old item 2, etc.
const relevanceWeightWindowHours = 4

// VoteMutation tells the caller what to do with the vote row after
// scoring: create it, update it in place, or delete it.
type VoteMutation string

const (
	VoteMutationCreate VoteMutation = "CREATE"
	VoteMutationUpdate VoteMutation = "UPDATE"
	VoteMutationDelete VoteMutation = "DELETE"
)

// ScoreResult is the outcome of applying one incoming vote: a new
// metadata snapshot to persist on the feed item, plus the vote row and
// how it must be mutated. Scoring never touches storage itself.
type ScoreResult struct {
	Metadata model.FeedItemMetadata
	Vote     model.Vote
	Mutation VoteMutation
}

// RelevanceWeight derives a vote's weight from the item's age at vote
// time: ceil(ageInHours / 4), clamped to a minimum of 1 so a vote on a
// brand new item still counts.
func RelevanceWeight(itemAge time.Duration) float64 {
	weight := math.Ceil(itemAge.Hours() / relevanceWeightWindowHours)
	if weight < 1 {
		weight = 1
	}
	return weight
}

// ApplyVote is the vote state machine. Given the item's current metadata
// snapshot, the member's existing vote if any, and the incoming vote
// type, it computes the next snapshot and the vote mutation:
//
//   - no existing vote: a vote row is created with a weight locked from
//     the item's current age, and the scores move by one weight in the
//     vote's direction.
//   - repeat of the same vote type: toggle-off. The vote row is deleted
//     and the original deltas are reversed using the stored weight, never
//     a recomputed one, so the member's contribution reverts exactly.
//   - change of vote type: the stored weight is applied twice in the new
//     direction, cancelling the prior vote and applying the new one. The
//     row's type flips in place, the weight is unchanged.
func ApplyVote(meta model.FeedItemMetadata, existing *model.Vote, incoming model.VoteType, itemAge time.Duration) ScoreResult {
	direction := float64(1)
	if incoming == model.VoteTypeDisapprove {
		direction = -1
	}

	if existing == nil {
		weight := RelevanceWeight(itemAge)
		meta.RelevanceScore += direction * weight
		meta.RawScore += int64(direction)
		meta.TopAllTimeScore += int64(direction)
		return ScoreResult{
			Metadata: meta,
			Vote:     model.Vote{Type: incoming, RelevanceWeight: weight},
			Mutation: VoteMutationCreate,
		}
	}

	if existing.Type == incoming {
		meta.RelevanceScore -= direction * existing.RelevanceWeight
		meta.RawScore -= int64(direction)
		meta.TopAllTimeScore -= int64(direction)
		return ScoreResult{
			Metadata: meta,
			Vote:     *existing,
			Mutation: VoteMutationDelete,
		}
	}

	meta.RelevanceScore += 2 * direction * existing.RelevanceWeight
	meta.RawScore += 2 * int64(direction)
	meta.TopAllTimeScore += 2 * int64(direction)
	updated := *existing
	updated.Type = incoming
	return ScoreResult{
		Metadata: meta,
		Vote:     updated,
		Mutation: VoteMutationUpdate,
	}
}
