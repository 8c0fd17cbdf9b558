package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/pkg/socialsdk"
)

// TestHealthEndpoints verifies the liveness and readiness probes respond
// once the container reports healthy.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupSocialContainer(t)
	defer cleanup()

	client := socialsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	require.NoError(t, client.Livez(ctx), "livez should report ok")
	require.NoError(t, client.Readyz(ctx), "readyz should report ok with the database reachable")
}
