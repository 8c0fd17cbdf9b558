package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/pkg/socialsdk"
)

// TestRateLimitLoginEndpoint verifies that /v1/auth/login is rate limited.
// The endpoint carries the strict profile (5 req/min) to slow credential
// stuffing.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupSocialContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := socialsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	// Make requests until the limit trips. The first 5 fail on credentials,
	// the 6th on the limiter.
	var lastErr error
	for i := range 6 {
		_, err := client.Login(ctx, "nobody", "wrong-password")
		if i < 5 {
			require.Error(t, err)
			require.False(t, socialsdk.IsCode(err, socialsdk.ErrorCodeRateLimitExceeded),
				"should not be rate limited yet (request %d)", i+1)
		} else {
			lastErr = err
		}
	}

	requireAPIErrorCode(t, lastErr, socialsdk.ErrorCodeRateLimitExceeded)
}

// TestRateLimitHealthExempt verifies the probes stay reachable under the
// public profile even while other endpoints are throttled.
func TestRateLimitHealthExempt(t *testing.T) {
	baseURL, cleanup := setupSocialContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := socialsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	for range 20 {
		require.NoError(t, client.Livez(ctx))
	}
}
