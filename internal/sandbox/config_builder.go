package sandbox

import (
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
)

// scriptMountTarget is where the workload script is bind-mounted inside the
// container; the workload image expects it at this fixed path.
const scriptMountTarget = "/test_script.sql"

func CreateSandboxConfig(image string, cpu float64, memoryBytes int64, scriptPath string) (*container.HostConfig, *container.Config) {
	hostConfig := &container.HostConfig{
		Resources: container.Resources{
			NanoCPUs: int64(cpu * 1e9),
			Memory:   memoryBytes,
		},
		Mounts: []mount.Mount{
			{
				Type:     mount.TypeBind,
				Source:   scriptPath,
				Target:   scriptMountTarget,
				ReadOnly: true,
			},
		},
	}

	containerConfig := &container.Config{Image: image}

	return hostConfig, containerConfig
}
