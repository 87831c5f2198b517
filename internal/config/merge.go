package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI           = "api"
	keyOutput        = "output"
	keyLogging       = "logging"
	keyCache         = "cache"
	keyNotifications = "notifications"
	keyMock          = "mock"
)

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. A section present in the file is decoded over the target's current
// value, so keys missing from that section keep their defaults. Unknown
// top-level keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		section := sectionFor(target, key)
		if section == nil {
			continue
		}
		if err = node.Decode(section); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// sectionFor returns a pointer to the field of target named by key, or nil.
func sectionFor(target *Config, key string) any {
	switch key {
	case keyAPI:
		return &target.API
	case keyOutput:
		return &target.Output
	case keyLogging:
		return &target.Logging
	case keyCache:
		return &target.Cache
	case keyNotifications:
		return &target.Notifications
	case keyMock:
		return &target.Mock
	default:
		return nil
	}
}
