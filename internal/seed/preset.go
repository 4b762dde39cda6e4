package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PresetSkill is one entry in a seed skill pool.
type PresetSkill struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

// Preset allows seeding from a YAML file instead of the built-in pool.
//
//	users: 30
//	swaps: 80
//	skills:
//	  - name: Sourdough Baking
//	    category: cooking
type Preset struct {
	Users  int           `yaml:"users"`
	Swaps  int           `yaml:"swaps"`
	Skills []PresetSkill `yaml:"skills"`
}

// LoadPreset reads and parses a YAML seed preset.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	for i, s := range p.Skills {
		if s.Name == "" {
			return nil, fmt.Errorf("preset skill %d has no name", i)
		}
		if s.Category == "" {
			p.Skills[i].Category = "other"
		}
	}
	return &p, nil
}

var defaultSkillPool = []PresetSkill{
	{Name: "Guitar", Category: "music"},
	{Name: "Piano", Category: "music"},
	{Name: "Music Production", Category: "music"},
	{Name: "Spanish Conversation", Category: "languages"},
	{Name: "French", Category: "languages"},
	{Name: "Japanese", Category: "languages"},
	{Name: "Python Programming", Category: "development"},
	{Name: "Web Development", Category: "development"},
	{Name: "Logo Design", Category: "design"},
	{Name: "UI Sketching", Category: "design"},
	{Name: "Portrait Photography", Category: "photography"},
	{Name: "Photo Editing", Category: "photography"},
	{Name: "Sourdough Baking", Category: "cooking"},
	{Name: "Thai Cooking", Category: "cooking"},
	{Name: "Knife Skills", Category: "cooking"},
	{Name: "Yoga", Category: "sports"},
	{Name: "Running Coaching", Category: "sports"},
	{Name: "Strength Training", Category: "sports"},
	{Name: "Resume Writing", Category: "writing"},
	{Name: "Creative Writing", Category: "writing"},
	{Name: "Public Speaking", Category: "business"},
	{Name: "Bookkeeping", Category: "business"},
	{Name: "Social Media Strategy", Category: "marketing"},
	{Name: "Email Campaigns", Category: "marketing"},
	{Name: "Chess", Category: "other"},
	{Name: "Car Maintenance", Category: "other"},
}
