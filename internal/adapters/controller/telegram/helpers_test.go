package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIDArg(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"/answer 42", 42, true},
		{"/question 1", 1, true},
		{"/answer   7  extra", 7, true},
		{"/answer", 0, false},
		{"/answer abc", 0, false},
		{"/answer 0", 0, false},
		{"/answer -3", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseIDArg(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseInt64Part(t *testing.T) {
	v, ok := parseInt64Part("vote:u:42", 2)
	require.True(t, ok)
	require.Equal(t, int64(42), v)

	_, ok = parseInt64Part("vote:u", 2)
	require.False(t, ok)

	_, ok = parseInt64Part("vote:u:abc", 2)
	require.False(t, ok)
}
