package utils

import (
	"testing"

	"github.com/realmkit/realmfeed/model"
	"github.com/stretchr/testify/require"
)

func TestContainsString(t *testing.T) {
	require.True(t, ContainsString([]string{"a", "b"}, "b"))
	require.False(t, ContainsString([]string{"a", "b"}, "c"))
	require.False(t, ContainsString(nil, "a"))
}

func TestMin(t *testing.T) {
	require.Equal(t, 1, Min(1, 2))
	require.Equal(t, 1, Min(2, 1))
	require.Equal(t, -3, Min(-3, 0))
}

func TestRandomAlphabetString(t *testing.T) {
	str := RandomAlphabetString(8)
	require.Equal(t, 8, len(str))
	for _, char := range str {
		require.True(t, char >= 'a' && char <= 'z')
	}
}

func TestRedisKeyParser(t *testing.T) {
	parser := RedisKeyParser{delimiter: "__"}

	t.Run("round trip", func(t *testing.T) {
		key, err := parser.EncodeSyncKey("realm-1", model.EnvironmentMainnet)
		require.NoError(t, err)

		realmID, env, err := parser.DecodeSyncKey(key)
		require.NoError(t, err)
		require.Equal(t, "realm-1", realmID)
		require.Equal(t, model.EnvironmentMainnet, env)
	})

	t.Run("rejects id containing the delimiter", func(t *testing.T) {
		_, err := parser.EncodeSyncKey("bad__realm", model.EnvironmentMainnet)
		require.Error(t, err)
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		_, _, err := parser.DecodeSyncKey("no-delimiter")
		require.Error(t, err)
	})
}
