package core

import (
	"encoding/json"
)

type ManifestEntry struct {
	Source string `json:"source"`
	Hash   string `json:"hash"`
}

// Manifest describes a written client bundle.
type Manifest struct {
	Bundle    string                   `json:"bundle"`
	Namespace string                   `json:"namespace"`
	Hash      string                   `json:"hash"`
	Views     map[string]ManifestEntry `json:"views"`
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Views[key]
	return ok
}
