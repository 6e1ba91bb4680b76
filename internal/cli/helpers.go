package cli

import (
	"fmt"
	"os"

	"github.com/mgrove/cohort/internal/client"
	"github.com/mgrove/cohort/internal/definition"
	"github.com/mgrove/cohort/internal/extract"
	"github.com/mgrove/cohort/internal/schema"
)

// loadSchema loads the schema from the current workspace, falling back to
// the built-in default when no schema.yaml exists.
func loadSchema() (*schema.Schema, error) {
	return schema.Load(".")
}

// newClient builds an extract API client from the resolved config.
func newClient() (*client.Client, error) {
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("no extract server configured\n\nSet [server] url in %s or pass --server", configDescription())
	}
	return client.New(client.Options{
		BaseURL: cfg.Server.URL,
		Token:   cfg.Server.Token,
	})
}

func configDescription() string {
	if configPath != "" {
		return configPath
	}
	return "~/.config/cohort/config.toml"
}

// loadAndBuild loads a definition file and replays it into an extract query.
func loadAndBuild(path string) (*definition.Definition, *extract.Query, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("definition not found: %s", path)
	}

	def, err := definition.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	sch, err := loadSchema()
	if err != nil {
		return nil, nil, err
	}

	q, err := def.Build(sch)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build extract from %s: %w", path, err)
	}
	return def, q, nil
}
