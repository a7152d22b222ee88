package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ReadProfile reads a profile file (YAML or JSON) on top of
// domain.DefaultProfile, so a file only needs the settings it changes.
func ReadProfile(path string) (domain.Profile, error) {
	profile := domain.DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read profile: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &profile)
	} else {
		err = yaml.Unmarshal(data, &profile)
	}
	if err != nil {
		return profile, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	if err := profile.Validate(); err != nil {
		return profile, fmt.Errorf("profile %s: %w", path, err)
	}
	return profile, nil
}
