package feed

import "github.com/pkg/errors"

// Error taxonomy shared by every feed operation. The transport layer maps
// each sentinel to a fixed status code; anything that is not one of these
// is an opaque lower-layer failure wrapped with pkg/errors.
var (
	// ErrMalformedData marks a bad cursor, a cursor presented under the
	// wrong sort order, or an invalid pagination argument combination.
	ErrMalformedData = errors.New("malformed data")

	// ErrNotFound marks a referenced feed item that does not exist in the
	// requested realm and environment.
	ErrNotFound = errors.New("feed item not found")

	// ErrUnauthorized marks a vote submission without an authenticated
	// member.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnsupportedDevnet marks any operation attempted against a devnet
	// environment. This is a hard precondition, checked before storage or
	// providers are touched.
	ErrUnsupportedDevnet = errors.New("unsupported devnet")
)

func IsMalformedData(err error) bool {
	return errors.Cause(err) == ErrMalformedData
}

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

func IsUnauthorized(err error) bool {
	return errors.Cause(err) == ErrUnauthorized
}

func IsUnsupportedDevnet(err error) bool {
	return errors.Cause(err) == ErrUnsupportedDevnet
}
