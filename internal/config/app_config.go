// Package config loads the optional .tree.ini configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/tree/internal/utils"
)

const configurationType = "ini"

// builtInExclusions are excluded when no configuration file lists exclusions.
var builtInExclusions = []string{".venv", ".pytest_cache", "__pycache__", utils.GitDirectoryName, ".vscode", "node_modules"}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the defaults read from configuration files.
type ApplicationConfiguration struct {
	Filter FilterConfiguration `mapstructure:"filter"`
	Render RenderConfiguration `mapstructure:"render"`
}

// FilterConfiguration is the [filter] section. Exclude holds comma-separated directory names.
type FilterConfiguration struct {
	Exclude *string `mapstructure:"exclude"`
}

// RenderConfiguration is the [render] section with defaults for the rendering flags.
type RenderConfiguration struct {
	FoldersFirst *bool   `mapstructure:"folders_first"`
	MaxDepth     *string `mapstructure:"max_depth"`
}

// BuiltInExclusions returns a copy of the exclusion list used without configuration.
func BuiltInExclusions() []string {
	return append([]string{}, builtInExclusions...)
}

// LoadApplicationConfiguration loads configuration from the global file and then
// from the local or explicitly requested file, later sources overriding earlier ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, filepath.FromSlash(utils.GlobalConfigDirectoryName), utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	return merged, nil
}

// DefaultExclusions returns the configured exclusion list, or the built-in list
// when no configuration file set the exclude key. An empty exclude value disables exclusions.
func (config ApplicationConfiguration) DefaultExclusions() []string {
	if config.Filter.Exclude == nil {
		return BuiltInExclusions()
	}
	return utils.SplitList(*config.Filter.Exclude)
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

// loadConfigurationFromPath reads one file. A missing file yields an empty
// configuration unless the file was requested explicitly.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(configurationType)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Filter = result.Filter.merge(override.Filter)
	result.Render = result.Render.merge(override.Render)
	return result
}

func (config FilterConfiguration) merge(override FilterConfiguration) FilterConfiguration {
	result := config
	if override.Exclude != nil {
		result.Exclude = cloneString(override.Exclude)
	}
	return result
}

func (config RenderConfiguration) merge(override RenderConfiguration) RenderConfiguration {
	result := config
	if override.FoldersFirst != nil {
		result.FoldersFirst = cloneBool(override.FoldersFirst)
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneString(override.MaxDepth)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
