package main

import (
	"context"
	"github.com/kritsada/personaguess/internal/e2etest"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "PERSONAGUESS_ADDR":
		// Port 0 lets the kernel pick a free port.
		return "localhost:0", true
	case "PERSONAGUESS_SQLITE_URL":
		return ":memory:", true
	default:
		return "", false
	}
}

// startTestServer boots the whole application against an in-memory database
// seeded with the sample corpus.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}
