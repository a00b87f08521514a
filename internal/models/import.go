package models

// ImportTextRequest is the request body for importing a pasted recipe.
// The first non-empty line becomes the recipe name, every following
// non-empty line becomes one ingredient line.
type ImportTextRequest struct {
	Content string `json:"content"`
	Save    bool   `json:"save"` // when false, only a preview is returned
}

// ImportPreview is the parse result for an imported recipe
type ImportPreview struct {
	Name   string       `json:"name"`
	Lines  []string     `json:"lines"`
	Parsed []Ingredient `json:"parsed"`
	Recipe *Recipe      `json:"recipe,omitempty"` // set when the import was saved
}
