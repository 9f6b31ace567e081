package feed

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/realmkit/realmfeed/model"
)

// DefaultPageSize is the page size used when a request carries only a
// cursor and no explicit count. Overridable per service, see Service.
const DefaultPageSize = 25

// PageNode is anything the paginator can slice: feed items, members, or
// any future ordered collection with a stable identity.
type PageNode interface {
	NodeID() string
}

// PageArgs are Relay style pagination arguments. Exactly one request
// shape must be set: first, last, after or before. A cursor argument may
// additionally carry an explicit count (first with after, last with
// before); any other combination is malformed.
type PageArgs struct {
	First  *int    `json:"first"`
	Last   *int    `json:"last"`
	After  *string `json:"after"`
	Before *string `json:"before"`
}

type Edge[T PageNode] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

type Connection[T PageNode] struct {
	Edges    []Edge[T]      `json:"edges"`
	PageInfo model.PageInfo `json:"pageInfo"`
}

// Paginate computes the requested sub-window of nodes, which must already
// be sorted per order. Cursors minted under a different sort order are
// rejected with ErrMalformedData. A cursor referencing an identity that
// is no longer in nodes yields an empty page, not an error: the item may
// simply have been removed between two requests.
func Paginate[T PageNode](nodes []T, args PageArgs, order model.SortOrder, pageSize int) (*Connection[T], error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	switch {
	case args.After != nil:
		if args.Before != nil || args.Last != nil {
			return nil, errors.Wrap(ErrMalformedData, "after cannot combine with before or last")
		}
		count := pageSize
		if args.First != nil {
			count = *args.First
		}
		return paginateAfter(nodes, *args.After, order, count)

	case args.Before != nil:
		if args.First != nil {
			return nil, errors.Wrap(ErrMalformedData, "before cannot combine with first")
		}
		count := pageSize
		if args.Last != nil {
			count = *args.Last
		}
		return paginateBefore(nodes, *args.Before, order, count)

	case args.First != nil:
		if args.Last != nil {
			return nil, errors.Wrap(ErrMalformedData, "first cannot combine with last")
		}
		return paginateFirst(nodes, order, *args.First), nil

	case args.Last != nil:
		return paginateLast(nodes, order, *args.Last), nil
	}

	return nil, errors.Wrap(ErrMalformedData, "exactly one of first/last/after/before must be set")
}

func paginateFirst[T PageNode](nodes []T, order model.SortOrder, count int) *Connection[T] {
	if count < 0 {
		count = 0
	}
	if count > len(nodes) {
		count = len(nodes)
	}
	edges := buildEdges(nodes[:count], order)
	return &Connection[T]{
		Edges: edges,
		PageInfo: model.PageInfo{
			HasNextPage:     len(edges) > 0,
			HasPreviousPage: false,
			StartCursor:     nil,
			EndCursor:       endCursor(edges),
		},
	}
}

func paginateLast[T PageNode](nodes []T, order model.SortOrder, count int) *Connection[T] {
	if count < 0 {
		count = 0
	}
	if count > len(nodes) {
		count = len(nodes)
	}
	edges := buildEdges(nodes[len(nodes)-count:], order)
	return &Connection[T]{
		Edges: edges,
		PageInfo: model.PageInfo{
			HasNextPage:     false,
			HasPreviousPage: len(edges) > 0,
			StartCursor:     startCursor(edges),
			EndCursor:       nil,
		},
	}
}

func paginateAfter[T PageNode](nodes []T, cursor string, order model.SortOrder, count int) (*Connection[T], error) {
	id, err := verifyCursor(cursor, order)
	if err != nil {
		return nil, err
	}

	idx := indexOf(nodes, id)
	if idx < 0 {
		// The anchor item vanished between requests. Nothing is after it.
		return &Connection[T]{Edges: []Edge[T]{}, PageInfo: model.PageInfo{}}, nil
	}

	rest := nodes[idx+1:]
	if count < 0 {
		count = 0
	}
	if count > len(rest) {
		count = len(rest)
	}
	edges := buildEdges(rest[:count], order)
	return &Connection[T]{
		Edges: edges,
		PageInfo: model.PageInfo{
			HasNextPage:     len(rest) > len(edges),
			HasPreviousPage: true,
			StartCursor:     startCursor(edges),
			EndCursor:       endCursor(edges),
		},
	}, nil
}

func paginateBefore[T PageNode](nodes []T, cursor string, order model.SortOrder, count int) (*Connection[T], error) {
	id, err := verifyCursor(cursor, order)
	if err != nil {
		return nil, err
	}

	idx := indexOf(nodes, id)
	if idx < 0 {
		return &Connection[T]{Edges: []Edge[T]{}, PageInfo: model.PageInfo{}}, nil
	}

	prefix := nodes[:idx]
	if count < 0 {
		count = 0
	}
	if count > len(prefix) {
		count = len(prefix)
	}
	edges := buildEdges(prefix[len(prefix)-count:], order)
	return &Connection[T]{
		Edges: edges,
		PageInfo: model.PageInfo{
			HasNextPage:     true,
			HasPreviousPage: len(prefix) > len(edges),
			StartCursor:     startCursor(edges),
			EndCursor:       endCursor(edges),
		},
	}, nil
}

// verifyCursor decodes the cursor and enforces that it was minted under
// the requested sort order.
func verifyCursor(cursor string, order model.SortOrder) (string, error) {
	id, cursorOrder, err := DecodeCursor(cursor)
	if err != nil {
		return "", err
	}
	if cursorOrder != order {
		return "", errors.Wrapf(ErrMalformedData,
			"cursor was minted under sort order %s, requested %s", cursorOrder, order)
	}
	return id, nil
}

func buildEdges[T PageNode](nodes []T, order model.SortOrder) []Edge[T] {
	edges := make([]Edge[T], 0, len(nodes))
	for _, node := range nodes {
		edges = append(edges, Edge[T]{
			Node:   node,
			Cursor: EncodeCursor(node.NodeID(), order),
		})
	}
	return edges
}

func indexOf[T PageNode](nodes []T, id string) int {
	for idx := range nodes {
		if nodes[idx].NodeID() == id {
			return idx
		}
	}
	return -1
}

func startCursor[T PageNode](edges []Edge[T]) *string {
	if len(edges) == 0 {
		return nil
	}
	return &edges[0].Cursor
}

func endCursor[T PageNode](edges []Edge[T]) *string {
	if len(edges) == 0 {
		return nil
	}
	return &edges[len(edges)-1].Cursor
}

// CompareMembersAlphabetical is the member list ordering: case
// insensitive by display name, named members before nameless ones,
// identity as the final tie break. The result is a strict total order so
// repeated pagination against a changing member set stays deterministic.
func CompareMembersAlphabetical(a, b *model.Member) int {
	switch {
	case a.DisplayName != nil && b.DisplayName == nil:
		return -1
	case a.DisplayName == nil && b.DisplayName != nil:
		return 1
	case a.DisplayName != nil && b.DisplayName != nil:
		if cmp := strings.Compare(strings.ToLower(*a.DisplayName), strings.ToLower(*b.DisplayName)); cmp != 0 {
			return cmp
		}
	}
	return strings.Compare(a.Id, b.Id)
}
