package config

import "sort"

// Preset is a named canvas size.
type Preset struct {
	Width       int
	Height      int
	Description string
}

var Presets = map[string]Preset{
	"terminal": {Width: 80, Height: 24, Description: "classic terminal screen"},
	"wide":     {Width: 132, Height: 43, Description: "wide terminal screen"},
	"banner":   {Width: 120, Height: 10, Description: "text banner"},
	"square":   {Width: 32, Height: 16, Description: "square in character cells"},
	"postcard": {Width: 60, Height: 20, Description: "postcard"},
	"tweet":    {Width: 40, Height: 12, Description: "small enough to paste anywhere"},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
