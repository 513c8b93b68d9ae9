package router

import (
	"html/template"
	"path/filepath"

	"skillswap/internal/models"

	"github.com/gin-contrib/multitemplate"
)

// LoadTemplates builds the renderer for every page and fragment the
// handlers name.
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	components, err := filepath.Glob(templatesDir + "/components/*.html")
	if err != nil {
		panic(err)
	}

	// "board/list.html" -> [base, components..., list]
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(components)+1)
		files = append(files, layouts...)
		files = append(files, components...)
		files = append(files, view)
		return files
	}

	// Fragments start from the view so it becomes the root template. Views
	// and components must not share a basename.
	fragment := func(view string) []string {
		files := make([]string, 0, len(components)+1)
		files = append(files, view)
		files = append(files, components...)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"eq": func(a, b interface{}) bool {
			return a == b
		},
		"categoryLabel": models.FormatCategory,
	}

	r.AddFromFilesFuncs("board/list.html", funcMap, assemble(templatesDir+"/views/board/list.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	// HTMX fragments
	r.AddFromFilesFuncs("board/rating.html", funcMap, fragment(templatesDir+"/views/board/rating.html")...)

	return r
}
