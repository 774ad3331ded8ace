package entities

import (
	"fmt"
	"strings"
)

const (
	defaultPrimaryColor   = "#667eea"
	defaultSecondaryColor = "#764ba2"
)

// PortfolioData is the structured record collected by the web form.
// Every optional section defaults to empty.
type PortfolioData struct {
	PersonalInfo PersonalInfo `json:"personalInfo" yaml:"personalInfo"`
	About        About        `json:"about"        yaml:"about"`
	Resume       Resume       `json:"resume"       yaml:"resume"`
	Projects     []Project    `json:"projects"     yaml:"projects"`
	Social       Social       `json:"social"       yaml:"social"`
	Contact      Contact      `json:"contact"      yaml:"contact"`
	Theme        Theme        `json:"theme"        yaml:"theme"`
}

// PersonalInfo holds the hero section of the portfolio.
type PersonalInfo struct {
	Name            string `json:"name"            yaml:"name"`
	Title           string `json:"title"           yaml:"title"`
	Tagline         string `json:"tagline"         yaml:"tagline"`
	Email           string `json:"email"           yaml:"email"`
	Phone           string `json:"phone"           yaml:"phone"`
	Location        string `json:"location"        yaml:"location"`
	ProfileImageURL string `json:"profileImageUrl" yaml:"profileImageUrl"`
}

type About struct {
	Description string  `json:"description" yaml:"description"`
	Skills      []Skill `json:"skills"      yaml:"skills"`
}

// Skill is rendered as a progress bar; Level is a percentage.
type Skill struct {
	Name  string `json:"name"  yaml:"name"`
	Level int    `json:"level" yaml:"level"`
}

type Resume struct {
	Education  []Education  `json:"education"  yaml:"education"`
	Experience []Experience `json:"experience" yaml:"experience"`
}

type Education struct {
	Degree      string `json:"degree"      yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Year        string `json:"year"        yaml:"year"`
	Description string `json:"description" yaml:"description"`
}

type Experience struct {
	Position    string `json:"position"    yaml:"position"`
	Company     string `json:"company"     yaml:"company"`
	Duration    string `json:"duration"    yaml:"duration"`
	Description string `json:"description" yaml:"description"`
}

type Project struct {
	Title        string   `json:"title"        yaml:"title"`
	Description  string   `json:"description"  yaml:"description"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	LiveURL      string   `json:"liveUrl"      yaml:"liveUrl"`
	GithubURL    string   `json:"githubUrl"    yaml:"githubUrl"`
	ImageURL     string   `json:"imageUrl"     yaml:"imageUrl"`
}

type Social struct {
	LinkedIn  string `json:"linkedin"  yaml:"linkedin"`
	GitHub    string `json:"github"    yaml:"github"`
	Twitter   string `json:"twitter"   yaml:"twitter"`
	Instagram string `json:"instagram" yaml:"instagram"`
	Website   string `json:"website"   yaml:"website"`
}

type Contact struct {
	Email    string `json:"email"    yaml:"email"`
	Phone    string `json:"phone"    yaml:"phone"`
	Location string `json:"location" yaml:"location"`
}

type Theme struct {
	PrimaryColor       string `json:"primaryColor"       yaml:"primaryColor"`
	SecondaryColor     string `json:"secondaryColor"     yaml:"secondaryColor"`
	BackgroundImageURL string `json:"backgroundImageUrl" yaml:"backgroundImageUrl"`
}

// Validate checks the fields the renderer cannot do without.
func (d PortfolioData) Validate() error {
	var missing []string
	if strings.TrimSpace(d.PersonalInfo.Name) == "" {
		missing = append(missing, "personalInfo.name")
	}
	if strings.TrimSpace(d.PersonalInfo.Title) == "" {
		missing = append(missing, "personalInfo.title")
	}
	if strings.TrimSpace(d.PersonalInfo.Email) == "" && strings.TrimSpace(d.Contact.Email) == "" {
		missing = append(missing, "personalInfo.email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	for i, s := range d.About.Skills {
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("%w: about.skills[%d].level must be between 0 and 100", ErrValidation, i)
		}
	}
	return nil
}

// WithDefaults returns a copy where empty optional values are filled in.
// Contact details fall back to the personal info and vice versa.
func (d PortfolioData) WithDefaults() PortfolioData {
	out := d
	if out.Theme.PrimaryColor == "" {
		out.Theme.PrimaryColor = defaultPrimaryColor
	}
	if out.Theme.SecondaryColor == "" {
		out.Theme.SecondaryColor = defaultSecondaryColor
	}
	if out.Contact.Email == "" {
		out.Contact.Email = out.PersonalInfo.Email
	}
	if out.PersonalInfo.Email == "" {
		out.PersonalInfo.Email = out.Contact.Email
	}
	if out.Contact.Phone == "" {
		out.Contact.Phone = out.PersonalInfo.Phone
	}
	if out.Contact.Location == "" {
		out.Contact.Location = out.PersonalInfo.Location
	}
	return out
}
