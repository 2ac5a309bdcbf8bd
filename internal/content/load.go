package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidContent is returned when a portfolio document fails validation.
var ErrInvalidContent = errors.New("invalid portfolio content")

//go:embed default.yaml
var defaultDocument []byte

// Default returns the embedded portfolio.
func Default() (*Portfolio, error) {
	p, err := Parse(defaultDocument)
	if err != nil {
		return nil, fmt.Errorf("embedded portfolio: %w", err)
	}
	return p, nil
}

// LoadFile reads and validates a portfolio YAML file. An empty path yields
// the embedded default.
func LoadFile(path string) (*Portfolio, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("portfolio %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a portfolio document. Unknown keys are
// rejected so typos do not silently drop content.
func Parse(data []byte) (*Portfolio, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Portfolio
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants renderers rely on. All problems are
// reported together.
func Validate(p *Portfolio) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(p.Owner) == "" {
		add("owner is required")
	}
	if strings.TrimSpace(p.Hero.Name) == "" {
		add("hero.name is required")
	}
	if len(p.Hero.Roles) == 0 {
		add("hero.roles must list at least one role")
	}
	for i, role := range p.Hero.Roles {
		if strings.TrimSpace(role) == "" {
			add("hero.roles[%d] is empty", i)
		}
	}
	checkAssetPath(add, "hero.cv.path", p.Hero.CV.Path)
	checkAssetPath(add, "about.image.path", p.About.Image.Path)
	for i, project := range p.Projects.Items {
		if strings.TrimSpace(project.Name) == "" {
			add("projects.items[%d].name is required", i)
		}
		if strings.HasPrefix(project.Image, ".") {
			add("projects.items[%d].image must be an emoji or start with /", i)
		}
	}

	seen := map[LinkKind]bool{}
	for i, link := range p.Contact.Links {
		if seen[link.Kind] {
			add("contact.links[%d]: duplicate %s link", i, link.Kind)
		}
		seen[link.Kind] = true
		if msg := checkLink(link); msg != "" {
			add("contact.links[%d]: %s", i, msg)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
}

func checkAssetPath(add func(string, ...any), field, path string) {
	if path == "" {
		return
	}
	if !strings.HasPrefix(path, "/") {
		add("%s must start with /", field)
	}
}

func checkLink(link Link) string {
	if strings.TrimSpace(link.Label) == "" {
		return "label is required"
	}
	switch link.Kind {
	case LinkEmail:
		if !strings.HasPrefix(link.Href, "mailto:") {
			return "email href must use mailto:"
		}
	case LinkPhone:
		if !strings.HasPrefix(link.Href, "tel:") {
			return "phone href must use tel:"
		}
	case LinkLinkedIn, LinkGitHub:
		if !strings.HasPrefix(link.Href, "https://") && !strings.HasPrefix(link.Href, "http://") {
			return fmt.Sprintf("%s href must be an http(s) URL", link.Kind)
		}
	default:
		return fmt.Sprintf("unknown link kind %q", link.Kind)
	}
	return ""
}
