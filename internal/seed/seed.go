// Package seed loads the sample projects every new board starts with.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rpggio/keydeck/internal/domain/project"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sample []byte

type document struct {
	Projects []entry `yaml:"projects"`
}

type entry struct {
	Name         string   `yaml:"name"`
	APIKey       string   `yaml:"api_key"`
	Status       string   `yaml:"status"`
	CreatedAt    string   `yaml:"created_at"`
	Integrations []string `yaml:"integrations"`
}

// Default returns the built-in sample projects.
func Default() ([]project.SeedRequest, error) {
	return Parse(sample)
}

// Load reads seed projects from a YAML file. An empty path yields the defaults.
func Load(path string) ([]project.SeedRequest, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a seed document.
func Parse(data []byte) ([]project.SeedRequest, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]project.SeedRequest, 0, len(doc.Projects))
	for i, e := range doc.Projects {
		if e.Name == "" {
			return nil, fmt.Errorf("seed project %d: name is required", i)
		}
		status := project.Status(e.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("seed project %q: invalid status %q", e.Name, e.Status)
		}
		createdAt, err := project.ParseDate(e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("seed project %q: %w", e.Name, err)
		}

		names := make([]project.IntegrationName, 0, len(e.Integrations))
		seen := make(map[project.IntegrationName]bool, len(e.Integrations))
		for _, raw := range e.Integrations {
			name, err := project.ParseIntegrationName(raw)
			if err != nil {
				return nil, fmt.Errorf("seed project %q: %w", e.Name, err)
			}
			if seen[name] {
				return nil, fmt.Errorf("seed project %q: duplicate integration %q", e.Name, raw)
			}
			seen[name] = true
			names = append(names, name)
		}

		out = append(out, project.SeedRequest{
			Name:         e.Name,
			APIKey:       e.APIKey,
			Status:       status,
			CreatedAt:    createdAt,
			Integrations: names,
		})
	}
	return out, nil
}
