package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RolePrompt is one role's system framing loaded from YAML.
type RolePrompt struct {
	Role   string `yaml:"role"`
	System string `yaml:"system"`
}

// LoadPrompt reads a role prompt file.
func LoadPrompt(path string) (*RolePrompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt %s: %w", path, err)
	}
	var prompt RolePrompt
	if err := yaml.Unmarshal(data, &prompt); err != nil {
		return nil, fmt.Errorf("parse prompt %s: %w", path, err)
	}
	if prompt.System == "" {
		return nil, fmt.Errorf("prompt %s: empty system text", path)
	}
	return &prompt, nil
}
