package callback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleRoundTrip(t *testing.T) {
	token, err := EncodeToggle("u1", true)
	require.NoError(t, err)

	action, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, ToggleAction{TargetID: "u1", Approved: true}, action)

	token, err = EncodeToggle("550e8400-e29b-41d4-a716-446655440000", false)
	require.NoError(t, err)

	action, err = Decode(token)
	require.NoError(t, err)
	assert.Equal(t, ToggleAction{TargetID: "550e8400-e29b-41d4-a716-446655440000", Approved: false}, action)
}

func TestPageRoundTrip(t *testing.T) {
	action, err := Decode(EncodePage(3))
	require.NoError(t, err)
	assert.Equal(t, PageAction{Index: 3}, action)

	action, err = Decode(EncodePage(0))
	require.NoError(t, err)
	assert.Equal(t, PageAction{Index: 0}, action)
}

func TestEncodeToggleRejectsBadIDs(t *testing.T) {
	_, err := EncodeToggle("", false)
	assert.Error(t, err)

	_, err = EncodeToggle("u:1", false)
	assert.Error(t, err)

	_, err = EncodeToggle(strings.Repeat("x", 80), false)
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	cases := []string{
		"garbage",
		"",
		"toggle",
		"toggle:u1",
		"toggle:u1:maybe",
		"toggle::true",
		"toggle:u1:true:extra",
		"page",
		"page:abc",
		"page:-1",
		"page:1:2",
		"delete:u1",
	}
	for _, token := range cases {
		t.Run(token, func(t *testing.T) {
			_, err := Decode(token)
			require.Error(t, err)
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.NotEmpty(t, decodeErr.Reason)
		})
	}
}
