package model

type SortOrder string

const (
	SortOrderNew          SortOrder = "NEW"
	SortOrderRelevance    SortOrder = "RELEVANCE"
	SortOrderTopAllTime   SortOrder = "TOP_ALL_TIME"
	SortOrderAlphabetical SortOrder = "ALPHABETICAL"
)

var AllSortOrder = []SortOrder{
	SortOrderNew,
	SortOrderRelevance,
	SortOrderTopAllTime,
	SortOrderAlphabetical,
}

func (e SortOrder) IsValid() bool {
	switch e {
	case SortOrderNew, SortOrderRelevance, SortOrderTopAllTime, SortOrderAlphabetical:
		return true
	}
	return false
}

func (e SortOrder) String() string {
	return string(e)
}

// PageInfo is the Relay style window descriptor returned next to every
// page of edges.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}
