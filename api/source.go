package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//LoadFixtureFile reads Fixtures from a JSON (.json) or YAML (.yaml, .yml) file
func LoadFixtureFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serverError(fmt.Sprintf("Could not read fixture file %s", path), err)
	}

	f := new(Fixtures)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		d := json.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		if err = d.Decode(f); err != nil {
			return nil, userError(fmt.Sprintf("Could not decode fixture file %s", path), err)
		}
	case ".yaml", ".yml":
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		if err = d.Decode(f); err != nil {
			return nil, userError(fmt.Sprintf("Could not decode fixture file %s", path), err)
		}
	default:
		return nil, userError("Could not load fixture file", fmt.Errorf("unsupported extension %q", ext))
	}

	return f, nil
}
