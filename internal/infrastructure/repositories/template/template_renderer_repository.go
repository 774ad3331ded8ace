package template

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"regexp"
	"strings"
	texttemplate "text/template"

	"github.com/rios0rios0/folio/internal/domain/entities"
)

const (
	fileIndex   = "index.html"
	fileStyles  = "styles.css"
	fileScript  = "script.js"
	filePackage = "package.json"
	fileReadme  = "README.md"
)

//go:embed templates
var templatesFS embed.FS

// colours are copied into a stylesheet, so only plain CSS colour syntax passes
var cssColorPattern = regexp.MustCompile(
	`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\(\s*[0-9.%,\s]+\)|hsla?\(\s*[0-9.%,\sdeg]+\))$`,
)

// TemplateRendererRepository implements repositories.RendererRepository with
// templates embedded in the binary. Every user-supplied string of the page
// goes through html/template contextual escaping.
type TemplateRendererRepository struct {
	page   *htmltemplate.Template
	styles *texttemplate.Template
	readme *texttemplate.Template
	script string
	year   func() int
}

// NewTemplateRendererRepository parses the embedded templates.
func NewTemplateRendererRepository(now entities.Clock) (*TemplateRendererRepository, error) {
	page, err := htmltemplate.ParseFS(templatesFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	styles, err := texttemplate.ParseFS(templatesFS, "templates/styles.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse stylesheet template: %w", err)
	}
	readme, err := texttemplate.ParseFS(templatesFS, "templates/README.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse README template: %w", err)
	}
	script, err := templatesFS.ReadFile("templates/script.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return &TemplateRendererRepository{
		page:   page,
		styles: styles,
		readme: readme,
		script: string(script),
		year:   func() int { return now().Year() },
	}, nil
}

type pageData struct {
	entities.PortfolioData
	Year int
}

type packageManifest struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Main        string            `json:"main"`
	Scripts     map[string]string `json:"scripts"`
	Keywords    []string          `json:"keywords"`
	Author      string            `json:"author"`
	License     string            `json:"license"`
}

// Render produces index.html, styles.css, script.js, package.json and README.md.
func (r *TemplateRendererRepository) Render(data entities.PortfolioData) (entities.FileSet, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	data = data.WithDefaults()

	var page bytes.Buffer
	if err := r.page.Execute(&page, pageData{PortfolioData: data, Year: r.year()}); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", fileIndex, err)
	}

	var styles bytes.Buffer
	if err := r.styles.Execute(&styles, safeTheme(data.Theme)); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", fileStyles, err)
	}

	var readme bytes.Buffer
	if err := r.readme.Execute(&readme, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", fileReadme, err)
	}

	manifest, err := packageJSON(data.PersonalInfo.Name)
	if err != nil {
		return nil, err
	}

	return entities.FileSet{
		fileIndex:   page.String(),
		fileStyles:  styles.String(),
		fileScript:  r.script,
		filePackage: manifest,
		fileReadme:  readme.String(),
	}, nil
}

func packageJSON(name string) (string, error) {
	slug := entities.Slugify(name)
	if slug == "" {
		slug = "my"
	}
	manifest, err := json.MarshalIndent(packageManifest{
		Name:        slug + "-portfolio",
		Version:     "1.0.0",
		Description: "Portfolio website for " + name,
		Main:        fileIndex,
		Scripts: map[string]string{
			"start": "python -m http.server 8000",
			"build": `echo "Static site - no build needed"`,
		},
		Keywords: []string{"portfolio", "website", "personal"},
		Author:   name,
		License:  "MIT",
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", filePackage, err)
	}
	return string(manifest) + "\n", nil
}

// safeTheme drops values that are not plain colours or http(s) URLs.
func safeTheme(theme entities.Theme) entities.Theme {
	defaults := entities.PortfolioData{}.WithDefaults().Theme
	if !cssColorPattern.MatchString(strings.TrimSpace(theme.PrimaryColor)) {
		theme.PrimaryColor = defaults.PrimaryColor
	}
	if !cssColorPattern.MatchString(strings.TrimSpace(theme.SecondaryColor)) {
		theme.SecondaryColor = defaults.SecondaryColor
	}
	theme.BackgroundImageURL = safeImageURL(theme.BackgroundImageURL)
	return theme
}

func safeImageURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ""
	}
	// String() percent-encodes quotes, parentheses are encoded by hand
	return strings.NewReplacer("(", "%28", ")", "%29").Replace(parsed.String())
}
