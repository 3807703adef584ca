package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the variable holding an explicit settings file path.
const EnvConfigFile = "VECTIS_CONFIG"

// DefaultFileNames are the settings files Discover looks for, in order.
var DefaultFileNames = []string{"vectis.yaml", "vectis.yml", "vectis.json"}

// decoders maps a file extension to its parser.
var decoders = map[string]func([]byte) (Config, error){
	".yaml": FromYAML,
	".yml":  FromYAML,
	".json": FromJSON,
}

// FromFile loads a terminal config file. The format follows the extension:
// .yaml, .yml or .json.
func FromFile(path string) (Config, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Config{}, fmt.Errorf("unsupported config file extension: %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromYAML parses a YAML document. An empty document yields an empty Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses a JSON object.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// Discover returns the first of DefaultFileNames present in dirs, searched in
// order. An empty dirs searches the working directory.
func Discover(dirs ...string) (string, bool) {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		for _, name := range DefaultFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, true
			}
		}
	}
	return "", false
}

// LoadSettings resolves the terminal policy. The file is path when given,
// else $VECTIS_CONFIG, else whatever Discover finds in dirs. Without a file
// the defaults apply. VECTIS_* variables override the file and the result
// is validated.
func LoadSettings(path string, dirs ...string) (Settings, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path, _ = Discover(dirs...)
	}

	settings := DefaultSettings()
	if path != "" {
		cfg, err := FromFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("settings file %s not found", path)
		}
		if err != nil {
			return Settings{}, err
		}
		settings = SettingsFrom(cfg)
	}
	if err := ApplyEnv(&settings); err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	return settings, nil
}
