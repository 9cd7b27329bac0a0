package strategyconfig

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML task file. KnownFields(true) makes a typo or an
// unused field an immediate failure instead of a silently ignored option.
func Load(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a YAML task document.
func Parse(data []byte) (*Task, error) {
	var task Task
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&task); err != nil {
		return nil, err
	}

	task.Defaults()

	if err := Validate(&task); err != nil {
		return nil, err
	}
	return &task, nil
}
