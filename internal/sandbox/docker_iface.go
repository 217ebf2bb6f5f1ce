package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/sirupsen/logrus"

	"resource_search/internal/search"
)

const requestTimeout = 30 * time.Second

// Runtime implements the search.ContainerRuntime capability on top of the
// Docker daemon.
type Runtime struct {
	cli *client.Client
	log *logrus.Entry
}

// NewRuntime connects to the Docker daemon configured in the environment and
// verifies it is reachable.
func NewRuntime(log *logrus.Entry) (*Runtime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create a Docker client - %v", search.ErrRuntimeUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to ping the Docker daemon - %v", search.ErrRuntimeUnavailable, err)
	}

	return &Runtime{cli: cli, log: log}, nil
}

func resolveImage(cli *client.Client, image string, log *logrus.Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	start := time.Now()

	reader, err := cli.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return err
	}
	defer reader.Close()

	io.Copy(os.Stdout, reader)

	log.Debug("Image pull took: ", time.Since(start).Microseconds(), " μs")

	return nil
}

func isImageMissing(err error) bool {
	noSuchImageString := "No such image"
	return strings.Contains(err.Error(), noSuchImageString)
}

func (r *Runtime) Launch(ctx context.Context, image string, cfg search.ResourceConfiguration, scriptPath string, runName string) (search.RunHandle, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	hostConfig, containerConfig := CreateSandboxConfig(image, cfg.CPU, cfg.Memory, scriptPath)

	var containerID string

	for {
		resp, err := r.cli.ContainerCreate(reqCtx, containerConfig, hostConfig, nil, nil, runName)
		containerID = resp.ID

		if err != nil && isImageMissing(err) {
			r.log.Debug("Image not found. Fetching...")
			err = resolveImage(r.cli, image, r.log)
		}

		if err != nil {
			return "", err
		}

		if containerID != "" {
			break
		}
	}

	if err := r.cli.ContainerStart(reqCtx, containerID, types.ContainerStartOptions{}); err != nil {
		return "", err
	}

	return search.RunHandle(containerID), nil
}

func (r *Runtime) IsActive(ctx context.Context, handle search.RunHandle) (bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	inspect, err := r.cli.ContainerInspect(reqCtx, string(handle))
	if err != nil {
		return false, err
	}

	return inspect.State != nil && inspect.State.Running, nil
}

func (r *Runtime) ExitCode(ctx context.Context, handle search.RunHandle) (int64, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	inspect, err := r.cli.ContainerInspect(reqCtx, string(handle))
	if err != nil {
		return 0, err
	}

	return int64(inspect.State.ExitCode), nil
}

func (r *Runtime) Logs(ctx context.Context, handle search.RunHandle) ([]string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reader, err := r.cli.ContainerLogs(reqCtx, string(handle), types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
	})
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	// stdout and stderr arrive multiplexed on one stream.
	var buffer bytes.Buffer
	if _, err := stdcopy.StdCopy(&buffer, &buffer, reader); err != nil {
		return nil, err
	}

	return strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n"), nil
}

func (r *Runtime) Terminate(ctx context.Context, handle search.RunHandle) error {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	return r.cli.ContainerKill(reqCtx, string(handle), "SIGKILL")
}

func (r *Runtime) StopAndRemove(ctx context.Context, handle search.RunHandle) error {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if active, err := r.IsActive(ctx, handle); err == nil && active {
		if err := r.cli.ContainerStop(reqCtx, string(handle), container.StopOptions{}); err != nil {
			r.log.Warnf("Failed to stop container %s - %v", handle, err)
		}
	}

	return r.cli.ContainerRemove(reqCtx, string(handle), types.ContainerRemoveOptions{Force: true})
}
