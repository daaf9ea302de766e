//go:build integration

package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeviceLifecycle tests that the device starts, runs commands and
// cleans up.
func TestDeviceLifecycle(t *testing.T) {
	ctx := context.Background()

	device, err := NewTestDevice(ctx)
	require.NoError(t, err, "Failed to create test device")
	defer func() {
		assert.NoError(t, device.Close(ctx), "Failed to close device")
	}()

	assert.NotEmpty(t, device.ContainerID())
	require.NoError(t, device.WaitForReady(ctx, 30*time.Second))

	code, out, err := device.Exec(ctx, "uname", "-s")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, strings.TrimSpace(out), "Linux")
}
