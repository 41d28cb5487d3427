// Package project persists user data — saved shipments and manifest
// templates — as JSON files under the user's home directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/StowPlan/internal/model"
)

// DefaultDir returns the StowPlan data directory, ~/.stowplan.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stowplan"), nil
}

// DefaultTemplatesPath returns the default template store file path.
func DefaultTemplatesPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates.json"), nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveShipment writes a planned shipment to the specified JSON file,
// creating parent directories as needed.
func SaveShipment(path string, sh model.Shipment) error {
	return writeJSON(path, sh)
}

// LoadShipment reads a previously saved shipment.
func LoadShipment(path string) (model.Shipment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Shipment{}, err
	}
	var sh model.Shipment
	if err := json.Unmarshal(data, &sh); err != nil {
		return model.Shipment{}, err
	}
	return sh, nil
}

// SaveTemplates writes the manifest template store.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads the template store. If the file does not exist, an
// empty store is returned and saved so the file exists from then on.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			store := model.NewTemplateStore()
			if saveErr := SaveTemplates(path, store); saveErr != nil {
				return store, saveErr
			}
			return store, nil
		}
		return model.TemplateStore{}, err
	}
	var store model.TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.TemplateStore{}, err
	}
	return store, nil
}
