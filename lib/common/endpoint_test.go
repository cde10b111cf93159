package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	{ // fully specified
		e, err := ParseEndpoint("https://localhost:12380")
		require.NoError(t, err)
		require.Equal(t, "https://localhost:12380", e.String())
	}

	{ // missing port falls back to the default
		e, err := ParseEndpoint("https://example.com")
		require.NoError(t, err)
		require.Equal(t, "example.com:12380", e.Host)
	}

	{ // missing scheme is rejected
		_, err := ParseEndpoint("localhost:12380")
		require.Error(t, err)
	}

	{ // loopback address is normalized
		e, err := ParseEndpoint("http://127.0.0.1:4000")
		require.NoError(t, err)
		require.Equal(t, "localhost:4000", e.Host)
	}

	{ // memory scheme needs no port
		e, err := ParseEndpoint("memory://test")
		require.NoError(t, err)
		require.Equal(t, "memory", e.Scheme)
	}
}

func TestCheckBindString(t *testing.T) {
	require.NoError(t, CheckBindString("localhost:12380"))
	require.Error(t, CheckBindString("localhost"))
	require.Error(t, CheckBindString("localhost:0"))
}
