// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const configFileName = ".arbor.yaml"

type NearestConfig struct {
	K int `yaml:"k"`
}

type GenealogyConfig struct {
	DedupeAncestors bool `yaml:"dedupe_ancestors"`
}

type BrowseConfig struct {
	CacheMinutes int `yaml:"cache_minutes"`
	Suggestions  int `yaml:"suggestions"`
}

type Config struct {
	Nearest   NearestConfig   `yaml:"nearest"`
	Genealogy GenealogyConfig `yaml:"genealogy"`
	Browse    BrowseConfig    `yaml:"browse"`
}

var defaultConfig = Config{
	Nearest: NearestConfig{
		K: 3,
	},
	Genealogy: GenealogyConfig{
		DedupeAncestors: false,
	},
	Browse: BrowseConfig{
		CacheMinutes: 30,
		Suggestions:  3,
	},
}

// LoadConfig reads ~/.arbor.yaml. A missing or unreadable file yields the
// defaults, and zero values in a readable file are filled from them.
func LoadConfig() (*Config, error) {
	defaults := defaultConfig

	configPath, err := getConfigPath()
	if err != nil {
		return &defaults, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return &defaults, nil
	}

	config := defaultConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return &defaults, nil
	}
	if config.Nearest.K <= 0 {
		config.Nearest.K = defaultConfig.Nearest.K
	}
	if config.Browse.CacheMinutes <= 0 {
		config.Browse.CacheMinutes = defaultConfig.Browse.CacheMinutes
	}
	if config.Browse.Suggestions < 0 {
		config.Browse.Suggestions = defaultConfig.Browse.Suggestions
	}

	return &config, nil
}

func getConfigPath() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func createDefaultConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return errors.Wrap(err, "failed to get config path")
	}

	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

func displaySettings() {
	configPath, err := getConfigPath()
	if err != nil {
		fmt.Printf("❌ Failed to get config path: %v\n", err)
		return
	}

	config, err := LoadConfig()
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return
	}

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("📝 Configuration file not found. Creating default configuration...\n\n")

		if err := createDefaultConfigFile(); err != nil {
			fmt.Printf("❌ Failed to create default config file: %v\n", err)
			return
		}
		fmt.Printf("✅ Created default configuration at: %s\n\n", configPath)
	}

	fmt.Printf("🔧 Arbor Configuration Settings\n")
	fmt.Printf("═══════════════════════════════\n\n")

	if configExists {
		fmt.Printf("📍 Config file: %s\n", configPath)
	} else {
		fmt.Printf("📍 Config file: %s (newly created)\n", configPath)
	}

	fmt.Printf("📊 Current settings:\n\n")

	fmt.Printf("📡 %sNearest servers:%s\n", Green, Reset)
	fmt.Printf("  • %sk%s: %d\n", Green, Reset, config.Nearest.K)
	fmt.Printf("    Servers returned by `arbor cdn nearest` when -k is not given\n\n")

	fmt.Printf("🌳 %sGenealogy:%s\n", Green, Reset)
	dedupeDesc := "Repeated ancestors are listed once per path (pedigree collapse kept)"
	if config.Genealogy.DedupeAncestors {
		dedupeDesc = "Repeated ancestors are listed once"
	}
	fmt.Printf("  • %sdedupe_ancestors%s: %t\n", Green, Reset, config.Genealogy.DedupeAncestors)
	fmt.Printf("    %s\n\n", dedupeDesc)

	fmt.Printf("🔍 %sBrowser:%s\n", Green, Reset)
	fmt.Printf("  • %scache_minutes%s: %d\n", Green, Reset, config.Browse.CacheMinutes)
	fmt.Printf("    Query results are remembered for this long\n")
	fmt.Printf("  • %ssuggestions%s: %d\n", Green, Reset, config.Browse.Suggestions)
	fmt.Printf("    Similar keys offered when a lookup finds nothing\n\n")

	fmt.Printf("💡 To change a setting, edit %s:\n", configPath)
	fmt.Printf("   nearest:\n     k: 5\n\n")
}
