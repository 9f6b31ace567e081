package model

import "time"

type VoteType string

const (
	VoteTypeApprove    VoteType = "APPROVE"
	VoteTypeDisapprove VoteType = "DISAPPROVE"
)

var AllVoteType = []VoteType{
	VoteTypeApprove,
	VoteTypeDisapprove,
}

func (e VoteType) IsValid() bool {
	switch e {
	case VoteTypeApprove, VoteTypeDisapprove:
		return true
	}
	return false
}

func (e VoteType) String() string {
	return string(e)
}

/*

Vote is one member's standing vote on one feed item

FeedItemID: feed item id, part of the composite primary key
UserID: voting member id, part of the composite primary key
CreatedAt: time when relation is created
UpdatedAt: time when relation is updated
Type: approve or disapprove
RelevanceWeight: weight fixed at creation from the item's age at vote
	time, never recomputed afterwards. A later vote type change reuses
	this stored weight so a member's influence does not grow as the item
	ages across repeated toggles.

A member holds at most one active vote per item. The row is deleted when
the member repeats the same vote (toggle-off).

*/
type Vote struct {
	FeedItemID      string `gorm:"primaryKey"`
	UserID          string `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Type            VoteType
	RelevanceWeight float64
}
