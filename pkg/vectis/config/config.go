package config

import (
	"time"
)

// Config wraps a decoded document for typed, defaulting reads.
// Keys may be dotted ("pricing.size_multiplier") to reach nested sections.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map. A nil map yields an empty Config.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// lookup resolves a dotted key through nested maps.
func (c Config) lookup(key string) (any, bool) {
	var cur any = c.data
	start := 0
	for i := 0; i <= len(key); i++ {
		if i < len(key) && key[i] != '.' {
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key[start:i]]
		if !ok {
			return nil, false
		}
		start = i + 1
	}
	return cur, true
}

// String returns the string at key, or defaultVal.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.mustLookup(key).(string); ok {
		return s
	}
	return defaultVal
}

// Float returns the float at key, or defaultVal. Integers are widened.
func (c Config) Float(key string, defaultVal float64) float64 {
	switch val := c.mustLookup(key).(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return defaultVal
}

// Int returns the integer at key, or defaultVal.
// Floats are accepted only when they carry no fractional part.
func (c Config) Int(key string, defaultVal int) int {
	switch val := c.mustLookup(key).(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Duration returns the duration at key, or defaultVal.
//
// Strings go through time.ParseDuration; bare numbers are milliseconds,
// which is the unit every POS timing knob is expressed in.
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	switch val := c.mustLookup(key).(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case int:
		return time.Duration(val) * time.Millisecond
	case int64:
		return time.Duration(val) * time.Millisecond
	case float64:
		return time.Duration(val * float64(time.Millisecond))
	case time.Duration:
		return val
	}
	return defaultVal
}

// Has reports whether key resolves to a value.
func (c Config) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Section returns the nested map at key as its own Config.
func (c Config) Section(key string) Config {
	if m, ok := c.mustLookup(key).(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// Raw returns the underlying map. Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}

func (c Config) mustLookup(key string) any {
	v, _ := c.lookup(key)
	return v
}
