package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkError_KindsAndMessages(t *testing.T) {
	cause := errors.New("connection refused")

	e := &NetworkError{Kind: NetworkUnreachable, Err: cause}
	assert.Contains(t, e.Error(), "unreachable")
	assert.ErrorIs(t, e, cause)

	bs := &NetworkError{Kind: NetworkBadStatus, Status: 503}
	assert.Contains(t, bs.Error(), "503")
}

func TestTaggedPredicates(t *testing.T) {
	wrapped := fmt.Errorf("fetch: %w", &NetworkError{Kind: NetworkDecodeFailure})
	require.True(t, IsNetwork(wrapped))
	require.False(t, IsStorage(wrapped))

	serr := fmt.Errorf("upsert: %w", &StorageError{Op: "upsert transaction", Err: errors.New("disk full")})
	require.True(t, IsStorage(serr))

	verr := &ValidationError{Field: "amount", Reason: "must not be negative"}
	require.True(t, IsValidation(verr))
	assert.Equal(t, "invalid amount: must not be negative", verr.Error())
}
