package sandbox

import (
	"testing"

	"github.com/docker/docker/api/types/mount"
	"github.com/stretchr/testify/assert"
)

func TestCreateSandboxConfig(t *testing.T) {
	hostConfig, containerConfig := CreateSandboxConfig("sourcherrypick:latest", 1.5, 256*1024*1024, "/tmp/queries.sql")

	assert.Equal(t, "sourcherrypick:latest", containerConfig.Image)
	assert.Equal(t, int64(1_500_000_000), hostConfig.Resources.NanoCPUs)
	assert.Equal(t, int64(256*1024*1024), hostConfig.Resources.Memory)

	assert.Len(t, hostConfig.Mounts, 1)
	assert.Equal(t, mount.TypeBind, hostConfig.Mounts[0].Type)
	assert.Equal(t, "/tmp/queries.sql", hostConfig.Mounts[0].Source)
	assert.Equal(t, scriptMountTarget, hostConfig.Mounts[0].Target)
	assert.True(t, hostConfig.Mounts[0].ReadOnly)
}
