package model

// Member is a realm member resolved from the external registry. The
// display name is optional, many members never set one.
type Member struct {
	Id          string  `json:"id"`
	DisplayName *string `json:"displayName"`
}

// NodeID implements pagination identity for member lists.
func (m *Member) NodeID() string {
	return m.Id
}
