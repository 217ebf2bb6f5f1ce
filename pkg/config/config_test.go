package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	readConfigError  string = "Failed to read configuration"
	parseConfigError string = "Failed to parse configuration"
)

func TestReadSearchConfiguration(t *testing.T) {
	config, err := ReadSearchConfiguration("../../cmd/search_controller/config.yaml")
	assert.NoError(t, err, readConfigError)

	assert.True(t, len(config.Verbosity) > 0, parseConfigError)
	assert.True(t, len(config.Image) > 0, parseConfigError)
	assert.True(t, config.PollIntervalMs > 0, parseConfigError)
	assert.True(t, config.Pricing.CpuPrice > 0, parseConfigError)
	assert.True(t, config.Penalty.Base > 0, parseConfigError)
}

func TestGetReaderFromPath(t *testing.T) {
	type want struct {
		configFolder string
		configName   string
		configType   string
	}

	tests := []struct {
		name     string
		input    string
		expected want
	}{
		{
			name:  "Simple smoke input",
			input: "test/test.yaml",
			expected: want{
				configFolder: "test/",
				configName:   "test",
				configType:   "yaml",
			},
		},
		{
			name:  "Test with no folder",
			input: "filename.txt",
			expected: want{
				configFolder: "./",
				configName:   "filename",
				configType:   "txt",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			configFolder, configName, configType := parseConfigPath(test.input)

			assert.Equal(t, test.expected.configFolder, configFolder)
			assert.Equal(t, test.expected.configName, configName)
			assert.Equal(t, test.expected.configType, configType)
		})
	}
}
