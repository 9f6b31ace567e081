package model

import "time"

type ProposalState string

const (
	ProposalStateDraft      ProposalState = "DRAFT"
	ProposalStateVoting     ProposalState = "VOTING"
	ProposalStateExecutable ProposalState = "EXECUTABLE"
	ProposalStateCompleted  ProposalState = "COMPLETED"
	ProposalStateDefeated   ProposalState = "DEFEATED"
	ProposalStateCancelled  ProposalState = "CANCELLED"
)

var AllProposalState = []ProposalState{
	ProposalStateDraft,
	ProposalStateVoting,
	ProposalStateExecutable,
	ProposalStateCompleted,
	ProposalStateDefeated,
	ProposalStateCancelled,
}

func (e ProposalState) IsValid() bool {
	switch e {
	case ProposalStateDraft, ProposalStateVoting, ProposalStateExecutable,
		ProposalStateCompleted, ProposalStateDefeated, ProposalStateCancelled:
		return true
	}
	return false
}

func (e ProposalState) String() string {
	return string(e)
}

// IsActive reports whether the proposal still accepts or awaits on-chain
// action. Active proposals are the ones pinned on top of the feed.
func (e ProposalState) IsActive() bool {
	return e == ProposalStateVoting || e == ProposalStateExecutable
}

// PinPriority orders active proposals on the pinned rail. Lower sorts
// first.
func (e ProposalState) PinPriority() int {
	switch e {
	case ProposalStateVoting:
		return 0
	case ProposalStateExecutable:
		return 1
	}
	return 2
}

/*

Proposal is a governance proposal resolved from the external registry.
It is a view object, never persisted locally; the local footprint of a
proposal is its FeedItem row keyed by PublicIdentity.

*/
type Proposal struct {
	PublicIdentity string        `json:"publicIdentity"`
	RealmID        string        `json:"realmId"`
	Name           string        `json:"name"`
	State          ProposalState `json:"state"`
	Created        time.Time     `json:"created"`
	Updated        time.Time     `json:"updated"`
}
