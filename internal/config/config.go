// Copyright 2025 EngFlow Inc. All rights reserved.
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

// Package config loads optional CLI defaults for cmd/minicc from a YAML
// file, so flags don't all have to be repeated on every invocation. Explicit
// flags always win over a loaded value; config.Config only supplies the
// defaults the flag package doesn't already have.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional `.miniccrc.yaml` document read by cmd/minicc's
// `-config` flag.
type Config struct {
	// Verbose turns on progress logging (log.Printf) in the CLI and batch
	// runner.
	Verbose bool `yaml:"verbose"`
	// Format selects the default -ast output encoding ("text" or "proto")
	// when -format is not passed explicitly.
	Format string `yaml:"format"`
	// BatchConcurrency bounds the number of files the batch runner processes
	// at once. Zero means no limit, see internal/batch.Run.
	BatchConcurrency int `yaml:"batch_concurrency"`
}

// Load reads and parses the YAML document at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
