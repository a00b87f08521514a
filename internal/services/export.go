package services

import (
	"fmt"
	htmltemplate "html/template"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/foxxcyber/recipe-box/internal/models"
)

// ExportFormat selects the rendering of an exported recipe or list
type ExportFormat string

const (
	FormatText     ExportFormat = "text"
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
)

// ContentType returns the MIME type for the format
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Ext returns the file extension for the format
func (f ExportFormat) Ext() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "md"
	default:
		return "txt"
	}
}

// Exporter renders recipes and shopping lists for sharing: plain text for
// messaging apps, markdown checklists, and a standalone HTML page.
type Exporter struct {
	listText       *texttemplate.Template
	listMarkdown   *texttemplate.Template
	listHTML       *htmltemplate.Template
	recipeText     *texttemplate.Template
	recipeMarkdown *texttemplate.Template
	recipeHTML     *htmltemplate.Template
}

// NewExporter creates an exporter with all templates parsed
func NewExporter() *Exporter {
	inc := func(i int) int { return i + 1 }
	textFuncs := texttemplate.FuncMap{"qty": FormatQuantity, "join": strings.Join, "inc": inc}
	htmlFuncs := htmltemplate.FuncMap{"qty": FormatQuantity, "join": strings.Join, "inc": inc}

	return &Exporter{
		listText:       texttemplate.Must(texttemplate.New("list").Funcs(textFuncs).Parse(groceryListTextTemplate)),
		listMarkdown:   texttemplate.Must(texttemplate.New("list").Funcs(textFuncs).Parse(groceryListMarkdownTemplate)),
		listHTML:       htmltemplate.Must(htmltemplate.New("list").Funcs(htmlFuncs).Parse(groceryListHTMLTemplate)),
		recipeText:     texttemplate.Must(texttemplate.New("recipe").Funcs(textFuncs).Parse(recipeTextTemplate)),
		recipeMarkdown: texttemplate.Must(texttemplate.New("recipe").Funcs(textFuncs).Parse(recipeMarkdownTemplate)),
		recipeHTML:     htmltemplate.Must(htmltemplate.New("recipe").Funcs(htmlFuncs).Parse(recipeHTMLTemplate)),
	}
}

// FormatQuantity renders a quantity without trailing zeros: 2, 1.5, 0.25
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// groceryGroup is one store section of a rendered list
type groceryGroup struct {
	Category models.GroceryCategory
	Items    []models.GroceryItem
}

// groceryListView is the template payload for list exports
type groceryListView struct {
	RecipeNames []string
	Groups      []groceryGroup
	ToBuy       int
}

// buildListView groups a session's items by category in aisle order
func buildListView(session *models.GroceryListSession) groceryListView {
	items := make([]models.GroceryItem, len(session.Items))
	copy(items, session.Items)
	SortByCategory(items)

	var groups []groceryGroup
	for _, item := range items {
		if len(groups) == 0 || groups[len(groups)-1].Category != item.Category {
			groups = append(groups, groceryGroup{Category: item.Category})
		}
		last := len(groups) - 1
		groups[last].Items = append(groups[last].Items, item)
	}

	return groceryListView{
		RecipeNames: session.RecipeNames,
		Groups:      groups,
		ToBuy:       session.ToBuyCount(),
	}
}

// GroceryList renders a shopping list session in the requested format
func (e *Exporter) GroceryList(session *models.GroceryListSession, format ExportFormat) (string, error) {
	view := buildListView(session)

	var b strings.Builder
	var err error
	switch format {
	case FormatMarkdown:
		err = e.listMarkdown.Execute(&b, view)
	case FormatHTML:
		err = e.listHTML.Execute(&b, view)
	case FormatText, "":
		err = e.listText.Execute(&b, view)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render grocery list: %w", err)
	}
	return b.String(), nil
}

// Recipe renders a single recipe in the requested format
func (e *Exporter) Recipe(recipe *models.Recipe, format ExportFormat) (string, error) {
	var b strings.Builder
	var err error
	switch format {
	case FormatMarkdown:
		err = e.recipeMarkdown.Execute(&b, recipe)
	case FormatHTML:
		err = e.recipeHTML.Execute(&b, recipe)
	case FormatText, "":
		err = e.recipeText.Execute(&b, recipe)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render recipe: %w", err)
	}
	return b.String(), nil
}

const groceryListTextTemplate = `Shopping List{{if .RecipeNames}} ({{join .RecipeNames ", "}}){{end}}
{{range .Groups}}
{{.Category}}:
{{- range .Items}}
  [{{if .Checked}}x{{else}} {{end}}] {{qty .Quantity}}{{if .Unit}} {{.Unit}}{{end}} {{.Name}}{{if .AlreadyHave}} (have){{end}}
{{- end}}
{{end}}
{{.ToBuy}} item(s) to buy
`

const groceryListMarkdownTemplate = `# Shopping List
{{if .RecipeNames}}
Recipes: {{join .RecipeNames ", "}}
{{end}}{{range .Groups}}
## {{.Category}}

{{range .Items -}}
- [{{if .Checked}}x{{else}} {{end}}] {{qty .Quantity}}{{if .Unit}} {{.Unit}}{{end}} {{.Name}}{{if .AlreadyHave}} *(have)*{{end}}
{{end}}{{end}}
**{{.ToBuy}} item(s) to buy**
`

const groceryListHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Shopping List</title>
<style>
  body { font-family: -apple-system, sans-serif; max-width: 600px; margin: 2rem auto; padding: 0 1rem; }
  h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.25rem; }
  li.checked { text-decoration: line-through; color: #999; }
  li.have { color: #999; }
  .meta { color: #666; }
</style>
</head>
<body>
<h1>Shopping List</h1>
{{if .RecipeNames}}<p class="meta">Recipes: {{join .RecipeNames ", "}}</p>{{end}}
{{range .Groups}}
<h2>{{.Category}}</h2>
<ul>
{{range .Items}}  <li class="{{if .Checked}}checked{{else if .AlreadyHave}}have{{end}}">{{qty .Quantity}}{{if .Unit}} {{.Unit}}{{end}} {{.Name}}</li>
{{end}}</ul>
{{end}}
<p><strong>{{.ToBuy}} item(s) to buy</strong></p>
</body>
</html>
`

const recipeTextTemplate = `{{.Name}}
{{if .Description}}
{{.Description}}
{{end}}{{if .Servings}}Serves {{.Servings}}. {{end}}{{if .PrepMinutes}}Prep {{.PrepMinutes}} min. {{end}}{{if .CookMinutes}}Cook {{.CookMinutes}} min.{{end}}

Ingredients:
{{- range .Ingredients}}
  - {{.}}
{{- end}}
{{if .Instructions}}
Instructions:
{{- range $i, $step := .Instructions}}
  {{inc $i}}. {{$step}}
{{- end}}
{{end}}{{if .Notes}}
Notes: {{.Notes}}
{{end}}`

const recipeMarkdownTemplate = `# {{.Name}}
{{if .Description}}
{{.Description}}
{{end}}{{if .Servings}}
Serves {{.Servings}}{{if .PrepMinutes}} · Prep {{.PrepMinutes}} min{{end}}{{if .CookMinutes}} · Cook {{.CookMinutes}} min{{end}}
{{end}}
## Ingredients

{{range .Ingredients -}}
- {{.}}
{{end}}{{if .Instructions}}
## Instructions

{{range $i, $step := .Instructions -}}
1. {{$step}}
{{end}}{{end}}{{if .Notes}}
## Notes

{{.Notes}}
{{end}}`

const recipeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}}</title>
<style>
  body { font-family: -apple-system, sans-serif; max-width: 600px; margin: 2rem auto; padding: 0 1rem; }
  h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.25rem; }
  .meta { color: #666; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<p class="meta">{{if .Servings}}Serves {{.Servings}}.{{end}}
{{if .PrepMinutes}}Prep {{.PrepMinutes}} min.{{end}}
{{if .CookMinutes}}Cook {{.CookMinutes}} min.{{end}}
{{if .Rating}}Rated {{.Rating}}/5.{{end}}</p>
<h2>Ingredients</h2>
<ul>
{{range .Ingredients}}  <li>{{.}}</li>
{{end}}</ul>
{{if .Instructions}}<h2>Instructions</h2>
<ol>
{{range .Instructions}}  <li>{{.}}</li>
{{end}}</ol>
{{end}}{{if .Notes}}<h2>Notes</h2>
<p>{{.Notes}}</p>
{{end}}</body>
</html>
`
