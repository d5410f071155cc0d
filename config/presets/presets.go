// Package presets holds named configurations that replace the defaults.
package presets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spacemeshos/go-ledger/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exists := presets[name]; exists {
		panic(fmt.Sprintf("preset with name %s already exists", name))
	}
	presets[name] = conf
}

// Options returns the names of registered presets.
func Options() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Get a copy of the preset with name.
func Get(name string) (config.Config, error) {
	conf, exists := presets[name]
	if !exists {
		return config.Config{}, fmt.Errorf("preset %s is not registered. select one from: %v", name, Options())
	}
	if conf.Address != nil {
		address := *conf.Address
		conf.Address = &address
	}
	return conf, nil
}
