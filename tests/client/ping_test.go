// +build client_integration_tests

package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	c := testClient()

	info, err := c.LoadNodeInfo()
	require.NoError(t, err)
	require.NotEmpty(t, info.Node.Address)
	require.Equal(t, networkID, info.Policy.NetworkID)
}
