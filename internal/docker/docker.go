// Package docker manages the Neo4j container backing the neo4j task store.
// It shells out to the Docker CLI.
package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"
)

// ErrDockerUnavailable is returned when the docker CLI cannot reach a daemon.
var ErrDockerUnavailable = errors.New("docker is not available, install Docker and ensure it is running")

const (
	defaultBoltPort = "7687"
	browserPort     = "7474"
	readyMarker     = "Started."
)

// ContainerConfig describes the Neo4j container.
type ContainerConfig struct {
	Name     string
	Image    string
	URI      string
	Username string
	Password string
}

// Validate checks that all required fields are set.
func (c *ContainerConfig) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"Name", c.Name},
		{"Image", c.Image},
		{"URI", c.URI},
		{"Username", c.Username},
		{"Password", c.Password},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if _, err := c.BoltPort(); err != nil {
		return err
	}
	return nil
}

// BoltPort returns the port the store will dial, taken from the URI.
func (c *ContainerConfig) BoltPort() (string, error) {
	u, err := url.Parse(c.URI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %q: %w", c.URI, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid URI %q: missing host", c.URI)
	}
	if port := u.Port(); port != "" {
		return port, nil
	}
	return defaultBoltPort, nil
}

// RunArgs builds the `docker run` arguments for the container.
func (c *ContainerConfig) RunArgs() ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid container config: %w", err)
	}
	port, _ := c.BoltPort()
	return []string{
		"run",
		"-d",
		"--name", c.Name,
		"-p", port + ":7687",
		"-p", browserPort + ":" + browserPort,
		"-e", fmt.Sprintf("NEO4J_AUTH=%s/%s", c.Username, c.Password),
		c.Image,
	}, nil
}

// Runner executes a docker subcommand and returns its stdout.
type Runner func(ctx context.Context, args ...string) (string, error)

// ExecRunner runs the docker binary on PATH.
func ExecRunner(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("docker %s: %w (stderr: %s)", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Manager drives container lifecycle through a Runner.
type Manager struct {
	run Runner

	// settle is how long to wait after creating or starting a container.
	settle time.Duration
	poll   time.Duration
}

// NewManager returns a Manager using run, or ExecRunner when run is nil.
func NewManager(run Runner) *Manager {
	if run == nil {
		run = ExecRunner
	}
	return &Manager{run: run, settle: 2 * time.Second, poll: time.Second}
}

// Available reports whether the docker daemon answers.
func (m *Manager) Available(ctx context.Context) bool {
	_, err := m.run(ctx, "version")
	return err == nil
}

func (m *Manager) listNames(ctx context.Context, all bool, name string) (bool, error) {
	args := []string{"ps"}
	if all {
		args = append(args, "-a")
	}
	args = append(args, "--filter", fmt.Sprintf("name=^%s$", name), "--format", "{{.Names}}")

	out, err := m.run(ctx, args...)
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// Exists reports whether a container named name exists in any state.
func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := m.listNames(ctx, true, name)
	if err != nil {
		return false, fmt.Errorf("failed to check container existence: %w", err)
	}
	return ok, nil
}

// Running reports whether a container named name is running.
func (m *Manager) Running(ctx context.Context, name string) (bool, error) {
	ok, err := m.listNames(ctx, false, name)
	if err != nil {
		return false, fmt.Errorf("failed to check container status: %w", err)
	}
	return ok, nil
}

// Create starts a new container from config.
func (m *Manager) Create(ctx context.Context, config *ContainerConfig) error {
	args, err := config.RunArgs()
	if err != nil {
		return err
	}
	if _, err := m.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	return nil
}

// Start starts an existing container.
func (m *Manager) Start(ctx context.Context, name string) error {
	if _, err := m.run(ctx, "start", name); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	return nil
}

// Stop stops a running container.
func (m *Manager) Stop(ctx context.Context, name string) error {
	if _, err := m.run(ctx, "stop", name); err != nil {
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

// Remove removes a stopped container.
func (m *Manager) Remove(ctx context.Context, name string) error {
	if _, err := m.run(ctx, "rm", name); err != nil {
		return fmt.Errorf("failed to remove container: %w", err)
	}
	return nil
}

// Ensure makes sure the container described by config is running, creating
// or starting it as needed. created is true only when a new container was
// made.
func (m *Manager) Ensure(ctx context.Context, config *ContainerConfig) (created bool, err error) {
	if !m.Available(ctx) {
		return false, ErrDockerUnavailable
	}
	if err := config.Validate(); err != nil {
		return false, fmt.Errorf("invalid container config: %w", err)
	}

	exists, err := m.Exists(ctx, config.Name)
	if err != nil {
		return false, err
	}
	if !exists {
		if err := m.Create(ctx, config); err != nil {
			return false, err
		}
		return true, m.wait(ctx, m.settle)
	}

	running, err := m.Running(ctx, config.Name)
	if err != nil {
		return false, err
	}
	if !running {
		if err := m.Start(ctx, config.Name); err != nil {
			return false, err
		}
		return false, m.wait(ctx, m.settle)
	}
	return false, nil
}

// WaitReady polls the container logs until Neo4j reports it has started.
func (m *Manager) WaitReady(ctx context.Context, name string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		running, err := m.Running(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return err
		}
		if !running {
			return fmt.Errorf("container %s is not running", name)
		}

		logs, err := m.run(ctx, "logs", name)
		if err == nil && strings.Contains(logs, readyMarker) {
			return nil
		}

		if m.wait(ctx, m.poll) != nil {
			break
		}
	}
	return fmt.Errorf("timeout waiting for container %s to be ready", name)
}

func (m *Manager) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
