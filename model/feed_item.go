package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FeedItemType string

const (
	FeedItemTypePost     FeedItemType = "POST"
	FeedItemTypeProposal FeedItemType = "PROPOSAL"
)

var AllFeedItemType = []FeedItemType{
	FeedItemTypePost,
	FeedItemTypeProposal,
}

func (e FeedItemType) IsValid() bool {
	switch e {
	case FeedItemTypePost, FeedItemTypeProposal:
		return true
	}
	return false
}

func (e FeedItemType) String() string {
	return string(e)
}

// FeedItemMetadata is the mutable scoring part of a feed item. It is stored
// as a single JSON column and always rewritten as a whole snapshot, never
// field by field.
type FeedItemMetadata struct {
	RelevanceScore  float64 `json:"relevanceScore"`
	RawScore        int64   `json:"rawScore"`
	TopAllTimeScore int64   `json:"topAllTimeScore"`
}

/*

FeedItem is one aggregated entry of a realm's feed

Id: primary key, use to identify a feed item
CreatedAt: time when entity is created
UpdatedAt: time when entity is updated, changes on score mutation or external sync
DeletedAt: time when entity is deleted

RealmID: realm this item belongs to
Environment: network partition the item lives on (mainnet/devnet)
Type: which external provider resolves the payload, post or proposal
SourceRef: identity of the underlying post or proposal in its own domain
Metadata: scoring snapshot, see FeedItemMetadata

(RealmID, Environment, Type, SourceRef) is the natural key, enforced unique
so external sync can never insert a duplicate row for the same proposal.

*/
type FeedItem struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	// UpdatedAt mirrors the external registry's timestamp for proposals,
	// so gorm must not touch it on save.
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
	DeletedAt   gorm.DeletedAt
	RealmID     string       `gorm:"uniqueIndex:idx_feed_item_source"`
	Environment Environment  `gorm:"uniqueIndex:idx_feed_item_source"`
	Type        FeedItemType `gorm:"uniqueIndex:idx_feed_item_source"`
	SourceRef   string       `gorm:"uniqueIndex:idx_feed_item_source"`
	Metadata    datatypes.JSON
}

// Meta decodes the metadata JSON column. An empty column decodes to the
// zero snapshot.
func (f *FeedItem) Meta() (FeedItemMetadata, error) {
	var meta FeedItemMetadata
	if len(f.Metadata) == 0 {
		return meta, nil
	}
	err := json.Unmarshal(f.Metadata, &meta)
	return meta, err
}

// SetMeta replaces the metadata JSON column with the given snapshot.
func (f *FeedItem) SetMeta(meta FeedItemMetadata) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	f.Metadata = datatypes.JSON(raw)
	return nil
}
