package social_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tetherchat/tether/pkg/socialsdk"
)

/*
 * Common constants and helper functions for social service end-to-end tests.
 * This includes container setup, account creation, and assertions.
 */

const (
	testImageName = "tether-social-test:latest"

	// Any value over 32 bytes works; the container is throwaway.
	sessionSecret = "e2e-session-secret-0123456789abcdef"

	defaultPassword = "correct horse battery"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Social Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Social Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/social/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupSocialContainer starts the social service in a container and returns
// the base URL. Rate limits are relaxed so rapid test traffic does not trip
// the production defaults; use setupSocialContainerWithDefaultRateLimits to
// test the limiter itself.
func setupSocialContainer(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, map[string]string{
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
		"RATELIMIT_LENIENT_REQUESTS":  "1000",
		"RATELIMIT_LENIENT_BURST":     "1000",
	})
}

// setupSocialContainerWithDefaultRateLimits starts the social service with
// production rate limits, specifically for testing that limiting works.
func setupSocialContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"SOCIAL_SESSION_SECRET":       sessionSecret,
		"SOCIAL_DATABASE_FILE":        "/tmp/social.db",
		"SOCIAL_ISSUER":               "tether-social",
		"SOCIAL_DEFAULT_COUNTRY_CODE": "+61",
		"ENV":                         "test",
		"LOG_LEVEL":                   "info",
		"LOG_FORMAT":                  "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerAndLogin creates an account and returns an authenticated session.
func registerAndLogin(t *testing.T, client *socialsdk.SDKClient, username string) *socialsdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := client.Register(ctx, socialsdk.RegisterRequest{
		Username: username,
		Password: defaultPassword,
	})
	require.NoError(t, err, "registration should succeed")

	session, err := client.Login(ctx, username, defaultPassword)
	require.NoError(t, err, "login should succeed")
	require.NotNil(t, session)
	require.NotEmpty(t, session.Token())

	return session
}

// requireAPIErrorCode asserts that err is an APIError carrying the given
// stable error code.
func requireAPIErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, socialsdk.IsCode(err, code), "expected error code %q, got: %v", code, err)
}

// findRequestFrom locates the pending incoming request sent by the given user.
func findRequestFrom(t *testing.T, session *socialsdk.Session, fromUsername string) socialsdk.FriendRequest {
	t.Helper()

	requests, err := session.PendingFriendRequests(context.Background())
	require.NoError(t, err)

	for _, req := range requests {
		if req.Incoming && req.Username == fromUsername {
			return req
		}
	}

	t.Fatalf("no incoming request from %q found", fromUsername)
	return socialsdk.FriendRequest{}
}
