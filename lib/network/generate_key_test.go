package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/common"
)

func TestGenerateKey(t *testing.T) {
	g := NewKeyGenerator("tls_tmp", "stakegate.cert", "stakegate.key")
	defer g.Close()

	certPath := "tls_tmp/stakegate.cert"
	keyPath := "tls_tmp/stakegate.key"

	require.Equal(t, g.GetCertPath(), certPath)
	require.Equal(t, g.GetKeyPath(), keyPath)

	require.Equal(t, common.IsExists(certPath), true)
	require.Equal(t, common.IsExists(keyPath), true)

}
