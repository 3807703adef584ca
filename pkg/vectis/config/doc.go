/*
Package config loads the tunable pricing and UI policy of the POS core.

# Overview

Raw configuration is a map[string]any decoded from YAML or JSON. Config wraps
that map with typed accessors that fall back to a default on a missing key or a
type mismatch, so a half-written settings file never breaks startup.

	cfg, err := config.FromFile("vectis.yaml")
	if err != nil {
	    return err
	}
	settings := config.SettingsFrom(cfg)
	if err := config.ApplyEnv(&settings); err != nil {
	    return err
	}

# Settings

Settings is the resolved policy consumed by the cart, order and screen
packages. Precedence, lowest first: DefaultSettings, the file, VECTIS_*
environment variables.

	pricing:
	  checkout_tax_rate: 0.21
	  history_tax_rate: 0.15
	  size_multiplier: 1.2
	  sized_category: pizza
	  small_size: 30cm
	  large_size: 40cm
	state:
	  history_limit: 50
	ui:
	  switch_cooldown: 100ms
	  search_class: vect-search-input
	  currency: "€"
*/
package config
