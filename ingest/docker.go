package ingest

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
)

// copyFunc streams a path out of a container as a tar archive
type copyFunc func(ctx context.Context, containerID, srcPath string) (io.ReadCloser, error)

// DockerClient wraps the Docker SDK client
type DockerClient struct {
	cli      *client.Client
	copyFrom copyFunc
}

// NewDockerClient creates a Docker client configured from the environment
// (DOCKER_HOST, DOCKER_API_VERSION, DOCKER_CERT_PATH, DOCKER_TLS_VERIFY)
func NewDockerClient() (*DockerClient, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	copyFrom := func(ctx context.Context, containerID, srcPath string) (io.ReadCloser, error) {
		reader, _, err := cli.CopyFromContainer(ctx, containerID, srcPath)
		return reader, err
	}
	return &DockerClient{cli: cli, copyFrom: copyFrom}, nil
}

// Close closes the Docker client
func (d *DockerClient) Close() error {
	if d.cli == nil {
		return nil
	}
	return d.cli.Close()
}

// OpenFile returns a reader for a regular file inside a container. The
// caller must close the returned reader.
func (d *DockerClient) OpenFile(ctx context.Context, containerID, srcPath string) (io.ReadCloser, error) {
	reader, err := d.copyFrom(ctx, containerID, srcPath)
	if err != nil {
		switch {
		case errdefs.IsNotFound(err):
			return nil, fmt.Errorf("file '%s' in container %s: %w", srcPath, containerID, ErrNotFound)
		case errdefs.IsForbidden(err) || errdefs.IsUnauthorized(err):
			return nil, fmt.Errorf("file '%s' in container %s: %w", srcPath, containerID, ErrPermission)
		default:
			return nil, fmt.Errorf("failed to copy from container: %w", err)
		}
	}

	// Extract from tar
	file, err := firstRegularFile(tar.NewReader(reader))
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("file '%s' in container %s: %w", srcPath, containerID, err)
	}

	return struct {
		io.Reader
		io.Closer
	}{file, reader}, nil
}

// firstRegularFile advances tr to the first regular file entry
func firstRegularFile(tr *tar.Reader) (io.Reader, error) {
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("no regular file in archive: %w", ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar: %w", err)
		}
		if header.Typeflag == tar.TypeReg {
			return tr, nil
		}
	}
}

// ContainerSource reads a sample from a file inside a running container
type ContainerSource struct {
	Client      *DockerClient
	ContainerID string
	Path        string
}

// Name returns "<container>:<path>"
func (c ContainerSource) Name() string {
	id := c.ContainerID
	if len(id) > 12 {
		id = id[:12]
	}
	return fmt.Sprintf("%s:%s", id, path.Clean(c.Path))
}

// Load copies the file out of the container and parses it
func (c ContainerSource) Load(ctx context.Context, opts Options) (*Data, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("container source %s has no Docker client", c.Name())
	}

	reader, err := c.Client.OpenFile(ctx, c.ContainerID, c.Path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return Parse(reader, c.Name(), opts)
}
