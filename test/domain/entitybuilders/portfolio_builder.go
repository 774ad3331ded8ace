//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/folio/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PortfolioBuilder helps create test portfolio data with a fluent interface.
type PortfolioBuilder struct {
	*testkit.BaseBuilder
	data entities.PortfolioData
}

// NewPortfolioBuilder creates a portfolio that passes validation.
func NewPortfolioBuilder() *PortfolioBuilder {
	return &PortfolioBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		data: entities.PortfolioData{
			PersonalInfo: entities.PersonalInfo{
				Name:  "Jane Doe",
				Title: "Software Engineer",
				Email: "jane@example.com",
			},
		},
	}
}

// WithName sets the display name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.data.PersonalInfo.Name = name
	return b
}

// WithTitle sets the professional title.
func (b *PortfolioBuilder) WithTitle(title string) *PortfolioBuilder {
	b.data.PersonalInfo.Title = title
	return b
}

// WithEmail sets the personal email.
func (b *PortfolioBuilder) WithEmail(email string) *PortfolioBuilder {
	b.data.PersonalInfo.Email = email
	return b
}

// WithTagline sets the hero tagline.
func (b *PortfolioBuilder) WithTagline(tagline string) *PortfolioBuilder {
	b.data.PersonalInfo.Tagline = tagline
	return b
}

// WithAbout sets the about description.
func (b *PortfolioBuilder) WithAbout(description string) *PortfolioBuilder {
	b.data.About.Description = description
	return b
}

// WithSkill appends a skill.
func (b *PortfolioBuilder) WithSkill(name string, level int) *PortfolioBuilder {
	b.data.About.Skills = append(b.data.About.Skills, entities.Skill{Name: name, Level: level})
	return b
}

// WithProject appends a project.
func (b *PortfolioBuilder) WithProject(project entities.Project) *PortfolioBuilder {
	b.data.Projects = append(b.data.Projects, project)
	return b
}

// WithExperience appends a work experience entry.
func (b *PortfolioBuilder) WithExperience(experience entities.Experience) *PortfolioBuilder {
	b.data.Resume.Experience = append(b.data.Resume.Experience, experience)
	return b
}

// WithSocial sets the social links.
func (b *PortfolioBuilder) WithSocial(social entities.Social) *PortfolioBuilder {
	b.data.Social = social
	return b
}

// WithTheme sets the theme.
func (b *PortfolioBuilder) WithTheme(theme entities.Theme) *PortfolioBuilder {
	b.data.Theme = theme
	return b
}

// Build creates the portfolio data.
func (b *PortfolioBuilder) Build() any {
	return b.data
}

// BuildPortfolio creates the portfolio data with its concrete type.
func (b *PortfolioBuilder) BuildPortfolio() entities.PortfolioData {
	return b.data
}
