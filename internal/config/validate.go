package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// maxGroups bounds the number of configured groups.
const maxGroups = 32

// Validate performs comprehensive validation on the configuration.
func Validate(cfg *Config) error {
	if err := validateGroups(cfg); err != nil {
		return fmt.Errorf("group validation failed: %w", err)
	}

	if err := validateSRP(cfg); err != nil {
		return fmt.Errorf("srp validation failed: %w", err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

func validateGroups(cfg *Config) error {
	if len(cfg.Definitions) == 0 {
		return fmt.Errorf("groups cannot be empty")
	}

	if len(cfg.Definitions) > maxGroups {
		return fmt.Errorf("groups cannot exceed %d entries", maxGroups)
	}

	seen := make(map[int]bool)

	for i, def := range cfg.Definitions {
		if def.ID <= 0 {
			return fmt.Errorf("groups[%d]: id must be a positive integer", i)
		}

		if seen[def.ID] {
			return fmt.Errorf("groups[%d]: duplicate group id %d", i, def.ID)
		}
		seen[def.ID] = true

		if def.N == "" {
			return fmt.Errorf("groups[%d]: n is required", i)
		}

		if def.G == 0 {
			return fmt.Errorf("groups[%d]: g is required", i)
		}

		if def.Hash == "" {
			return fmt.Errorf("groups[%d]: hash is required", i)
		}

		// Parses N and checks N odd, N > g > 1, supported hash.
		if _, err := def.build(); err != nil {
			return fmt.Errorf("groups[%d] (id %d): %w", i, def.ID, err)
		}
	}

	return nil
}

func validateSRP(cfg *Config) error {
	ids := make([]int, 0, len(cfg.Definitions))
	for _, def := range cfg.Definitions {
		ids = append(ids, def.ID)
	}

	if !slices.Contains(ids, cfg.SRP.MinGroup) {
		return fmt.Errorf("srp.min_group %d is not a configured group", cfg.SRP.MinGroup)
	}

	if !slices.Contains(ids, cfg.SRP.DefaultGroup) {
		return fmt.Errorf("srp.default_group %d is not a configured group", cfg.SRP.DefaultGroup)
	}

	if cfg.SRP.DefaultGroup < cfg.SRP.MinGroup {
		return fmt.Errorf("srp.default_group %d is below srp.min_group %d", cfg.SRP.DefaultGroup, cfg.SRP.MinGroup)
	}

	if _, err := srp.ParseXMode(cfg.SRP.XDerivation); err != nil {
		return fmt.Errorf("srp.x_derivation: %w", err)
	}

	return nil
}

func validateLogging(cfg *Config) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Logging.Level)) {
		return fmt.Errorf("logging.level must be one of: %s", strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "human"}
	if !slices.Contains(validFormats, strings.ToLower(cfg.Logging.Format)) {
		return fmt.Errorf("logging.format must be one of: %s", strings.Join(validFormats, ", "))
	}

	return nil
}
