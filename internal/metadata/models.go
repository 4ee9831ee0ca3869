package metadata

// GeminiModel describes a model reachable from a translation mode.
type GeminiModel struct {
	ID    string
	Label string
	// Mode is the settings tag that selects this model.
	Mode string
}

const (
	ModeFast    = "FAST"
	ModePrecise = "PRECISE"
)

var GeminiModels = []GeminiModel{
	{
		ID:    "gemini-2.5-flash",
		Label: "Gemini 2.5 Flash",
		Mode:  ModeFast,
	},
	{
		ID:    "gemini-3-pro-preview",
		Label: "Gemini 3 Pro (preview)",
		Mode:  ModePrecise,
	},
}

// DefaultModel is used for unknown or empty mode tags.
var DefaultModel = GeminiModels[0]

// ModelForMode returns the model bound to mode, falling back to DefaultModel.
func ModelForMode(mode string) (GeminiModel, bool) {
	for _, m := range GeminiModels {
		if m.Mode == mode {
			return m, true
		}
	}
	return DefaultModel, false
}

func GeminiModelIDs() []string {
	ids := make([]string, 0, len(GeminiModels))
	for _, m := range GeminiModels {
		ids = append(ids, m.ID)
	}
	return ids
}
