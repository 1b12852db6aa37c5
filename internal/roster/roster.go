package roster

import (
	"fmt"
	"path/filepath"

	"github.com/quorumhq/quorum/pkg/models"
)

// Manager loads and maintains the expert panel, seeding the built-in
// defaults the first time the database is created.
type Manager struct {
	store *ExpertStore
}

// DefaultDBPath returns the expert database path under dataDir.
func DefaultDBPath(dataDir string) string {
	return filepath.Join(dataDir, "experts.db")
}

// Open opens the roster at dbPath and seeds the default panel when the
// store is empty.
func Open(dbPath string) (*Manager, error) {
	store, err := NewExpertStore(dbPath)
	if err != nil {
		return nil, err
	}

	n, err := store.Count()
	if err != nil {
		store.Close()
		return nil, err
	}
	if n == 0 {
		defaults, err := DefaultExperts()
		if err != nil {
			store.Close()
			return nil, err
		}
		for _, e := range defaults {
			if _, err := store.Add(e); err != nil {
				store.Close()
				return nil, fmt.Errorf("seed default expert %q: %w", e.Name, err)
			}
		}
	}

	return &Manager{store: store}, nil
}

// Team returns the current panel in roster order.
func (m *Manager) Team() (models.Team, error) {
	experts, err := m.store.List()
	if err != nil {
		return nil, err
	}
	return models.Team(experts), nil
}

// Add appends a new expert to the panel.
func (m *Manager) Add(expert models.Expert) (models.Expert, error) {
	return m.store.Add(expert)
}

// Update rewrites an expert's persona fields.
func (m *Manager) Update(expert models.Expert) error {
	return m.store.Update(expert)
}

// Remove deletes an expert. The reference is resolved with the same
// fuzzy matching used for delegation targets, so `quorum experts remove
// grace` works without the full ID.
func (m *Manager) Remove(ref string) error {
	team, err := m.Team()
	if err != nil {
		return err
	}
	if expert, ok := team.ByID(ref); ok {
		return m.store.Remove(expert.ID)
	}
	if expert, ok := team.ResolveName(ref); ok {
		return m.store.Remove(expert.ID)
	}
	return fmt.Errorf("no expert matches %q", ref)
}

// Import merges experts from a portable YAML file into the panel.
func (m *Manager) Import(path string) ([]models.Expert, error) {
	experts, err := ImportFile(path)
	if err != nil {
		return nil, err
	}
	for _, e := range experts {
		if _, err := m.store.Add(e); err != nil {
			return nil, err
		}
	}
	return experts, nil
}

// Export writes the current panel to a portable YAML file.
func (m *Manager) Export(path string) error {
	team, err := m.Team()
	if err != nil {
		return err
	}
	return ExportFile(path, team)
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}
