package roster

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/quorumhq/quorum/pkg/models"
)

//go:embed defaults.yaml
var defaultPanelYAML []byte

type defaultPanelFile struct {
	Experts []struct {
		Name        string `yaml:"name"`
		Role        string `yaml:"role"`
		Avatar      string `yaml:"avatar"`
		Description string `yaml:"description"`
	} `yaml:"experts"`
}

// DefaultExperts returns the built-in starter panel with fresh IDs.
func DefaultExperts() ([]models.Expert, error) {
	var file defaultPanelFile
	if err := yaml.Unmarshal(defaultPanelYAML, &file); err != nil {
		return nil, fmt.Errorf("parse default panel: %w", err)
	}

	experts := make([]models.Expert, 0, len(file.Experts))
	for _, e := range file.Experts {
		experts = append(experts, models.Expert{
			ID:          uuid.New().String(),
			Name:        e.Name,
			Role:        e.Role,
			Avatar:      e.Avatar,
			Description: e.Description,
		})
	}

	return experts, nil
}
