package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config using the standard search order:
// customPath -> ~/.gridarcade/configs/<name>.yaml -> ./configs/<name>.yaml
// -> embedded default. A custom path that fails to read or parse is an
// error; the fallback locations are silently skipped on failure.
func load(customPath, name string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	if userCfgPath := userConfigPath(name + ".yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", name+".yaml")); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	return yaml.Unmarshal(embedded, out)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridarcade", "configs", filename)
}

// LoadBreakout loads Breakout configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	var cfg BreakoutConfig
	if err := load(customPath, "breakout", defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig(), err
	}
	return cfg, nil
}

// LoadSpaceInvaders loads Space Invaders configuration.
func LoadSpaceInvaders(customPath string) (SpaceInvadersConfig, error) {
	var cfg SpaceInvadersConfig
	if err := load(customPath, "spaceinvaders", defaultSpaceInvadersYAML, &cfg); err != nil {
		return DefaultSpaceInvadersConfig(), err
	}
	return cfg, nil
}

// LoadFreeway loads Freeway configuration.
func LoadFreeway(customPath string) (FreewayConfig, error) {
	var cfg FreewayConfig
	if err := load(customPath, "freeway", defaultFreewayYAML, &cfg); err != nil {
		return DefaultFreewayConfig(), err
	}
	return cfg, nil
}

// LoadAsterix loads Asterix configuration.
func LoadAsterix(customPath string) (AsterixConfig, error) {
	var cfg AsterixConfig
	if err := load(customPath, "asterix", defaultAsterixYAML, &cfg); err != nil {
		return DefaultAsterixConfig(), err
	}
	return cfg, nil
}

// LoadSeaquest loads Seaquest configuration.
func LoadSeaquest(customPath string) (SeaquestConfig, error) {
	var cfg SeaquestConfig
	if err := load(customPath, "seaquest", defaultSeaquestYAML, &cfg); err != nil {
		return DefaultSeaquestConfig(), err
	}
	return cfg, nil
}
