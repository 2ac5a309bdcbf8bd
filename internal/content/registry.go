package content

// SectionID is the stable anchor name of a section.
type SectionID string

const (
	SectionAbout          SectionID = "about"
	SectionEducation      SectionID = "education"
	SectionSkills         SectionID = "skills"
	SectionProjects       SectionID = "projects"
	SectionExperience     SectionID = "experience"
	SectionCertifications SectionID = "certifications"
	SectionContact        SectionID = "contact"
)

// Descriptor names one section and carries its static content. Content holds
// one of About, Education, Skills, Projects, Experience, Certifications or
// Contact.
type Descriptor struct {
	ID      SectionID
	Label   string
	Content any
}

var sectionOrder = [...]struct {
	id    SectionID
	label string
}{
	{SectionAbout, "About"},
	{SectionEducation, "Education"},
	{SectionSkills, "Skills"},
	{SectionProjects, "Projects"},
	{SectionExperience, "Experience"},
	{SectionCertifications, "Certifications"},
	{SectionContact, "Contact"},
}

// AllSectionIDs returns every known section id in page order.
func AllSectionIDs() []SectionID {
	out := make([]SectionID, 0, len(sectionOrder))
	for _, s := range sectionOrder {
		out = append(out, s.id)
	}
	return out
}

// Registry is the fixed, ordered list of sections a page renders.
type Registry struct {
	entries []Descriptor
	index   map[SectionID]int
}

// NewRegistry builds the registry for p. Education is only listed when the
// portfolio declares at least one education entry.
func NewRegistry(p *Portfolio) Registry {
	r := Registry{index: make(map[SectionID]int, len(sectionOrder))}
	for _, s := range sectionOrder {
		body, ok := sectionContent(p, s.id)
		if !ok {
			continue
		}
		r.index[s.id] = len(r.entries)
		r.entries = append(r.entries, Descriptor{ID: s.id, Label: s.label, Content: body})
	}
	return r
}

func sectionContent(p *Portfolio, id SectionID) (any, bool) {
	switch id {
	case SectionAbout:
		return p.About, true
	case SectionEducation:
		return p.Education, len(p.Education.Items) > 0
	case SectionSkills:
		return p.Skills, true
	case SectionProjects:
		return p.Projects, true
	case SectionExperience:
		return p.Experience, true
	case SectionCertifications:
		return p.Certifications, true
	case SectionContact:
		return p.Contact, true
	}
	return nil, false
}

// Entries returns a copy of the registry in page order.
func (r Registry) Entries() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r Registry) Len() int { return len(r.entries) }

// At returns the i-th entry.
func (r Registry) At(i int) (Descriptor, bool) {
	if i < 0 || i >= len(r.entries) {
		return Descriptor{}, false
	}
	return r.entries[i], true
}

// Lookup finds a section by id.
func (r Registry) Lookup(id SectionID) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.entries[i], true
}

// Index returns the position of id, or -1.
func (r Registry) Index(id SectionID) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}
