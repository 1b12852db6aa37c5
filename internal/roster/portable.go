package roster

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/quorumhq/quorum/pkg/models"
)

// portableExpert is the YAML shape used for roster import/export files.
type portableExpert struct {
	Name        string `yaml:"name"`
	Role        string `yaml:"role,omitempty"`
	Avatar      string `yaml:"avatar,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type portableFile struct {
	Experts []portableExpert `yaml:"experts"`
}

// ExportYAML renders a team as a portable YAML document. IDs are not
// exported; imports always mint fresh ones.
func ExportYAML(experts []models.Expert) ([]byte, error) {
	file := portableFile{Experts: make([]portableExpert, 0, len(experts))}
	for _, e := range experts {
		file.Experts = append(file.Experts, portableExpert{
			Name:        e.Name,
			Role:        e.Role,
			Avatar:      e.Avatar,
			Description: e.Description,
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("marshal roster: %w", err)
	}
	return data, nil
}

// ExportFile writes a team to a YAML file at path.
func ExportFile(path string, experts []models.Expert) error {
	data, err := ExportYAML(experts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write roster file: %w", err)
	}
	return nil
}

// ImportYAML parses a portable roster document. Entries with a blank
// name are rejected rather than silently skipped.
func ImportYAML(data []byte) ([]models.Expert, error) {
	var file portableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(file.Experts) == 0 {
		return nil, fmt.Errorf("roster file contains no experts")
	}

	experts := make([]models.Expert, 0, len(file.Experts))
	for i, e := range file.Experts {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("expert %d: name is required", i+1)
		}
		experts = append(experts, models.Expert{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(e.Name),
			Role:        e.Role,
			Avatar:      e.Avatar,
			Description: e.Description,
		})
	}

	return experts, nil
}

// ImportFile reads a portable roster document from path.
func ImportFile(path string) ([]models.Expert, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	return ImportYAML(data)
}
