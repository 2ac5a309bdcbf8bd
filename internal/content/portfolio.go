package content

// Portfolio is the full static content of the page.
type Portfolio struct {
	Owner          string         `yaml:"owner"`
	Hero           Hero           `yaml:"hero"`
	About          About          `yaml:"about"`
	Education      Education      `yaml:"education"`
	Skills         Skills         `yaml:"skills"`
	Projects       Projects       `yaml:"projects"`
	Experience     Experience     `yaml:"experience"`
	Certifications Certifications `yaml:"certifications"`
	Contact        Contact        `yaml:"contact"`
}

// Hero is the landing block shown above the first section.
type Hero struct {
	Greeting string   `yaml:"greeting"`
	Name     string   `yaml:"name"`
	Emoji    string   `yaml:"emoji"`
	Roles    []string `yaml:"roles"`
	Tagline  string   `yaml:"tagline"`
	CV       Asset    `yaml:"cv"`
}

// Asset references a file served from the asset directory.
type Asset struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
}

// IsZero reports whether the asset was left undeclared.
func (a Asset) IsZero() bool { return a.Path == "" }

type About struct {
	Heading    string   `yaml:"heading"`
	Image      Asset    `yaml:"image"`
	Badge      string   `yaml:"badge"`
	Paragraphs []string `yaml:"paragraphs"`
	Facts      []Fact   `yaml:"facts"`
}

type Fact struct {
	Icon string `yaml:"icon"`
	Text string `yaml:"text"`
}

type Education struct {
	Heading string          `yaml:"heading"`
	Items   []EducationItem `yaml:"items"`
}

type EducationItem struct {
	Institution string   `yaml:"institution"`
	Degree      string   `yaml:"degree"`
	Period      string   `yaml:"period"`
	Location    string   `yaml:"location"`
	Details     []string `yaml:"details"`
}

type Skills struct {
	Heading    string          `yaml:"heading"`
	Categories []SkillCategory `yaml:"categories"`
}

type SkillCategory struct {
	Title  string   `yaml:"title"`
	Icon   string   `yaml:"icon"`
	Skills []string `yaml:"skills"`
}

type Projects struct {
	Heading string    `yaml:"heading"`
	Items   []Project `yaml:"items"`
}

// Project is one featured project card. Image is either an emoji or an
// absolute asset path such as "/assets/apartment.png".
type Project struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	TechStack    []string `yaml:"tech_stack"`
	Image        string   `yaml:"image"`
	Contribution string   `yaml:"contribution"`
	CodeURL      string   `yaml:"code_url"`
	DemoURL      string   `yaml:"demo_url"`
}

// HasThumbnail reports whether Image points at an asset rather than an emoji.
func (p Project) HasThumbnail() bool {
	return len(p.Image) > 0 && p.Image[0] == '/'
}

type Experience struct {
	Heading string     `yaml:"heading"`
	Items   []Position `yaml:"items"`
}

type Position struct {
	Company     string `yaml:"company"`
	Title       string `yaml:"position"`
	Period      string `yaml:"period"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

type Certifications struct {
	Heading string          `yaml:"heading"`
	Items   []Certification `yaml:"items"`
}

type Certification struct {
	Name   string `yaml:"name"`
	Issuer string `yaml:"issuer"`
	Icon   string `yaml:"icon"`
}

type Contact struct {
	Heading string `yaml:"heading"`
	Title   string `yaml:"title"`
	Blurb   string `yaml:"blurb"`
	Links   []Link `yaml:"links"`
	Address string `yaml:"address"`
}

// LinkKind classifies outbound contact links.
type LinkKind string

const (
	LinkEmail    LinkKind = "email"
	LinkPhone    LinkKind = "phone"
	LinkLinkedIn LinkKind = "linkedin"
	LinkGitHub   LinkKind = "github"
)

// Link is a fixed outbound link; Href is declared verbatim, never built.
type Link struct {
	Kind  LinkKind `yaml:"kind"`
	Label string   `yaml:"label"`
	Href  string   `yaml:"href"`
}

// External reports whether the link leaves the page for another site.
func (l Link) External() bool {
	return l.Kind == LinkLinkedIn || l.Kind == LinkGitHub
}
