package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Persona is the coaching voice injected into every prompt
type Persona struct {
	Brand        string `yaml:"brand" json:"brand"`
	CoachRole    string `yaml:"coach_role" json:"coachRole"`
	Consultation string `yaml:"consultation" json:"consultation"`
	Participants string `yaml:"participants" json:"participants"`
	Style        string `yaml:"style" json:"style"`
	Tone         string `yaml:"tone" json:"tone"`
}

// DefaultPersona returns the bridal beauty persona, with env overrides applied
func DefaultPersona() Persona {
	return Persona{
		Brand:        getEnvOrDefault("COACH_BRAND", "Rachael Peffer"),
		CoachRole:    getEnvOrDefault("COACH_ROLE", "Bridal Beauty Consultation Coach"),
		Consultation: getEnvOrDefault("COACH_CONSULTATION", "bridal beauty consultation"),
		Participants: getEnvOrDefault("COACH_PARTICIPANTS", "an artist and a bride/client"),
		Style:        getEnvOrDefault("COACH_STYLE", "timeless strategy, quiet power, direct feedback"),
		Tone:         getEnvOrDefault("COACH_TONE", "calm, concise, direct, quiet power; no hype"),
	}
}

// LoadPersona reads a persona YAML file. Fields missing from the file keep their defaults.
func LoadPersona(path string) (Persona, error) {
	p := DefaultPersona()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read persona file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse persona file %s: %w", path, err)
	}
	return p, nil
}
