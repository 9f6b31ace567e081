package feed

import (
	"sort"

	"github.com/realmkit/realmfeed/model"
)

/*

RankedFeedItem is a feed item with its payload resolved and its metadata
snapshot decoded, ready for ranking and serving.

Exactly one of Post / Proposal is set, matching Item.Type. Consumers
dispatch on the type tag and must handle both variants.

*/
type RankedFeedItem struct {
	Item     model.FeedItem         `json:"item"`
	Meta     model.FeedItemMetadata `json:"metadata"`
	Post     *model.Post            `json:"post,omitempty"`
	Proposal *model.Proposal        `json:"proposal,omitempty"`
}

// NodeID implements pagination identity for feed lists.
func (r *RankedFeedItem) NodeID() string {
	return r.Item.Id
}

// sortRankedItems orders items per the requested sort order. Every
// comparator ends on the item id so the order is strictly total and
// pagination against it is deterministic.
func sortRankedItems(items []*RankedFeedItem, order model.SortOrder) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch order {
		case model.SortOrderRelevance:
			if a.Meta.RelevanceScore != b.Meta.RelevanceScore {
				return a.Meta.RelevanceScore > b.Meta.RelevanceScore
			}
		case model.SortOrderTopAllTime:
			if a.Meta.TopAllTimeScore != b.Meta.TopAllTimeScore {
				return a.Meta.TopAllTimeScore > b.Meta.TopAllTimeScore
			}
		}
		// Chronological order, and the recency tie break of the ranked
		// orders.
		if !a.Item.UpdatedAt.Equal(b.Item.UpdatedAt) {
			return a.Item.UpdatedAt.After(b.Item.UpdatedAt)
		}
		return a.Item.Id < b.Item.Id
	})
}
