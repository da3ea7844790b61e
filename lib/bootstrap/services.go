// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"

	"github.com/aiprog-tools/aiprog/lib/aamp"
	"github.com/aiprog-tools/aiprog/lib/aidef"
	"github.com/aiprog-tools/aiprog/lib/aiprog"
	"github.com/aiprog-tools/aiprog/lib/config"
	"github.com/aiprog-tools/aiprog/lib/names"
)

// Services bundles the read-only collaborators of the consistency
// engine, built from bundled data plus configured overrides.
type Services struct {
	Config    *config.Config
	Names     *names.Table
	Catalog   *aidef.Catalog
	Localizer *aidef.Localizer
}

// Load builds the services. configPath overrides the AIPROG_CONFIG
// environment variable when non-empty (the --config flag).
func Load(configPath string) (*Services, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	table, err := names.New()
	if err != nil {
		return nil, err
	}
	for _, path := range cfg.Tables.Names {
		if err := table.AddFile(path); err != nil {
			return nil, err
		}
	}

	catalog, err := aidef.NewCatalog()
	if err != nil {
		return nil, err
	}
	if cfg.Tables.Catalog != "" {
		catalog, err = aidef.LoadCatalog(cfg.Tables.Catalog)
		if err != nil {
			return nil, err
		}
	}

	localizer, err := aidef.NewLocalizer()
	if err != nil {
		return nil, err
	}
	if cfg.Tables.Translations != "" {
		localizer, err = aidef.LoadLocalizer(cfg.Tables.Translations)
		if err != nil {
			return nil, err
		}
	}

	return &Services{
		Config:    cfg,
		Names:     table,
		Catalog:   catalog,
		Localizer: localizer,
	}, nil
}

// Open reads an archive file and wraps it in the consistency engine,
// harvesting observed names into the reverse table when configured.
func (s *Services) Open(path string) (*aiprog.Program, error) {
	pio, err := aamp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if s.Config.Viewer.HarvestNames {
		s.Names.Harvest(pio)
	}
	return aiprog.New(pio, s.Names, s.Catalog, s.Localizer)
}
