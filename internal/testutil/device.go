// Package testutil provides testing utilities for the device backends.
// It includes a disposable Linux device running in a test container.
package testutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDevice provides a Linux userland running in a test container. It is
// reached through "docker exec" like any other docker device.
type TestDevice struct {
	container testcontainers.Container
	id        string
}

// NewTestDevice creates and starts a new device container.
//
// The default image is Alpine, whose utilities are BusyBox applets. Set
// TEST_DEVICE_IMAGE to run against another userland.
//
// Example usage:
//
//	device, err := NewTestDevice(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer device.Close(ctx)
//
//	runner := shell.NewDockerRunner(device.ContainerID())
func NewTestDevice(ctx context.Context) (*TestDevice, error) {
	image := os.Getenv("TEST_DEVICE_IMAGE")
	if image == "" {
		image = "alpine:3.20"
	}

	req := testcontainers.ContainerRequest{
		Image:      image,
		Cmd:        []string{"sleep", "infinity"},
		WaitingFor: wait.ForExec([]string{"sh", "-c", "true"}).WithStartupTimeout(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start device container: %w", err)
	}

	return &TestDevice{
		container: container,
		id:        container.GetContainerID(),
	}, nil
}

// ContainerID returns the identifier docker exec accepts for the device.
func (d *TestDevice) ContainerID() string {
	return d.id
}

// Exec runs a command in the device and returns its exit code and combined
// output.
func (d *TestDevice) Exec(ctx context.Context, cmd ...string) (int, string, error) {
	code, reader, err := d.container.Exec(ctx, cmd, tcexec.Multiplexed())
	if err != nil {
		return -1, "", fmt.Errorf("failed to exec in device container: %w", err)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return code, "", fmt.Errorf("failed to read exec output: %w", err)
	}
	return code, string(out), nil
}

// Close terminates the device container and cleans up resources.
// It should be called in test cleanup (defer statement).
func (d *TestDevice) Close(ctx context.Context) error {
	if d.container != nil {
		if err := d.container.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate device container: %w", err)
		}
	}
	return nil
}

// WaitForReady waits until commands can be run in the device.
func (d *TestDevice) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for device to be ready: %w", ctx.Err())
		case <-ticker.C:
			if code, _, err := d.Exec(ctx, "true"); err == nil && code == 0 {
				return nil
			}
		}
	}
}
