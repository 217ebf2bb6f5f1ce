package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type SearchConfig struct {
	Verbosity      string        `mapstructure:"verbosity"`
	Image          string        `mapstructure:"image"`
	PollIntervalMs int           `mapstructure:"pollIntervalMs"`
	InitPoints     int           `mapstructure:"initPoints"`
	Optimizer      string        `mapstructure:"optimizer"`
	NoiseSigma     float64       `mapstructure:"noiseSigma"`
	Pricing        PricingConfig `mapstructure:"pricing"`
	Penalty        PenaltyConfig `mapstructure:"penalty"`
}

type PricingConfig struct {
	CpuPrice float64 `mapstructure:"cpuPrice"`
	RamPrice float64 `mapstructure:"ramPrice"`
}

type PenaltyConfig struct {
	Base   float64 `mapstructure:"base"`
	Jitter float64 `mapstructure:"jitter"`
}

func parseConfigPath(configPath string) (string, string, string) {
	configFolder, configName := filepath.Split(configPath)
	configName = strings.TrimSuffix(configName, filepath.Ext(configName))
	configType := strings.ReplaceAll(filepath.Ext(configPath), ".", "")

	if configFolder == "" {
		configFolder = "./"
	}

	return configFolder, configName, configType
}

func setupViper(configPath string) error {
	configFolder, configName, configType := parseConfigPath(configPath)

	viper.SetConfigName(configName)
	viper.SetConfigType(configType)
	viper.AddConfigPath(configFolder)
	viper.AutomaticEnv()

	return viper.ReadInConfig()
}

func ReadSearchConfiguration(configPath string) (SearchConfig, error) {
	err := setupViper(configPath)
	if err != nil {
		return SearchConfig{}, err
	}

	searchConfig := SearchConfig{}

	err = viper.Unmarshal(&searchConfig)
	if err != nil {
		return SearchConfig{}, err
	}

	return searchConfig, nil
}
