package model

import (
	"time"

	"github.com/google/uuid"
)

// ManifestTemplate is a reusable named cargo list. Templates capture specs
// but never packing results.
type ManifestTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Cargo       []CargoSpec `json:"cargo"`
	IsBuiltIn   bool        `json:"is_built_in,omitempty"`
}

// NewManifestTemplate creates a template from the given cargo list.
func NewManifestTemplate(name, description string, cargo []CargoSpec) ManifestTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	cp := make([]CargoSpec, len(cargo))
	copy(cp, cargo)
	return ManifestTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Cargo:       cp,
	}
}

// ToSpecs instantiates the template's cargo with fresh spec IDs so the
// result is independent of the template.
func (t ManifestTemplate) ToSpecs() []CargoSpec {
	specs := make([]CargoSpec, len(t.Cargo))
	for i, c := range t.Cargo {
		specs[i] = NewCargoSpec(c.Name, c.Length, c.Width, c.Height, c.Weight, c.Quantity)
		specs[i].Unstackable = c.Unstackable
		specs[i].Tag = c.Tag
	}
	return specs
}

// BuiltInTemplates are common export cargo presets shipped with the tool.
var BuiltInTemplates = []ManifestTemplate{
	{
		ID:          "tpl-euro",
		Name:        "Euro pallets",
		Description: "Standard EUR-1 pallets loaded to 1.5 m",
		IsBuiltIn:   true,
		Cargo: []CargoSpec{
			{ID: "tpl-euro-1", Name: "EUR-1 pallet", Length: 120, Width: 80, Height: 150, Weight: 450, Quantity: 10},
		},
	},
	{
		ID:          "tpl-drums",
		Name:        "Steel drums",
		Description: "205 l drums on footprint crates, top-only",
		IsBuiltIn:   true,
		Cargo: []CargoSpec{
			{ID: "tpl-drums-1", Name: "205l drum crate", Length: 60, Width: 60, Height: 90, Weight: 220, Quantity: 16, Unstackable: true},
		},
	},
	{
		ID:          "tpl-cartons",
		Name:        "Export cartons",
		Description: "Mixed master cartons, double-stackable",
		IsBuiltIn:   true,
		Cargo: []CargoSpec{
			{ID: "tpl-cartons-1", Name: "Master carton L", Length: 60, Width: 40, Height: 40, Weight: 18, Quantity: 60},
			{ID: "tpl-cartons-2", Name: "Master carton S", Length: 40, Width: 30, Height: 30, Weight: 9, Quantity: 40},
		},
	},
}

// TemplateStore holds a collection of manifest templates.
type TemplateStore struct {
	Templates []ManifestTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ManifestTemplate{}}
}

// All returns built-in templates followed by the store's own.
func (ts *TemplateStore) All() []ManifestTemplate {
	all := make([]ManifestTemplate, 0, len(BuiltInTemplates)+len(ts.Templates))
	all = append(all, BuiltInTemplates...)
	all = append(all, ts.Templates...)
	return all
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ManifestTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
// Built-in templates cannot be removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns the first template (built-in first) with the given
// name, or nil.
func (ts *TemplateStore) FindByName(name string) *ManifestTemplate {
	for i := range BuiltInTemplates {
		if BuiltInTemplates[i].Name == name {
			return &BuiltInTemplates[i]
		}
	}
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns all template names, built-in first.
func (ts *TemplateStore) Names() []string {
	all := ts.All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return names
}
