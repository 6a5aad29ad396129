package models

const CollectionProfile = "profile"

// Profile is the singleton "about me" document rendered on the public site.
type Profile struct {
	Base
	Header   ProfileHeader   `json:"header"`
	Stats    []ProfileStat   `json:"stats"`
	Contact  []ContactLink   `json:"contact"`
	Resume   ResumeLink      `json:"resume"`
	Sections ProfileSections `json:"sections"`
}

type ProfileHeader struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

type ProfileStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ContactLink struct {
	Icon  string `json:"icon"` // icon name, e.g. "Mail", "Github"
	Label string `json:"label"`
	Text  string `json:"text"`
	Href  string `json:"href"`
}

type ResumeLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type SectionMeta struct {
	Title string `json:"title"`
	ID    string `json:"id"`
	Icon  string `json:"icon"`
}

type ProfileSections struct {
	Manifesto  ManifestoSection            `json:"manifesto"`
	Experience ListSection[ExperienceItem] `json:"experience"`
	Education  ListSection[EducationItem]  `json:"education"`
	Skills     ListSection[SkillMeter]     `json:"skills"`
	Hobbies    ListSection[Hobby]          `json:"hobbies"`
	TechStack  ListSection[TechStackItem]  `json:"techStack"`
	Focus      ListSection[FocusItem]      `json:"focus"`
	Worldview  WorldviewSection            `json:"worldview"`
}

type ManifestoSection struct {
	Meta       SectionMeta `json:"meta"`
	Paragraphs []string    `json:"paragraphs"`
	Highlights []string    `json:"highlights"`
}

// ListSection is a titled section holding a list of items.
type ListSection[T any] struct {
	Meta  SectionMeta `json:"meta"`
	Items []T         `json:"items"`
}

type WorldviewSection struct {
	Meta SectionMeta `json:"meta"`
	Text string      `json:"text"`
}

type ExperienceItem struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Date    string `json:"date"`
	Desc    string `json:"desc"`
}

type EducationItem struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Date   string `json:"date"`
	Desc   string `json:"desc"`
}

type SkillMeter struct {
	Name string    `json:"name"`
	Val  FlexFloat `json:"val"` // percent
}

type Hobby struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type TechStackItem struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
}

type FocusItem struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Icon   string `json:"icon"`
}

const (
	defaultProfileName = "Anonymous"
	defaultProfileRole = "FULL_STACK_ARCHITECT"
	defaultResumeLabel = "Download Resume"
)

func (p *Profile) ApplyDefaults() {
	if p.Header.Name == "" {
		p.Header.Name = defaultProfileName
	}
	if p.Header.Role == "" {
		p.Header.Role = defaultProfileRole
	}
	if p.Resume.Label == "" {
		p.Resume.Label = defaultResumeLabel
	}
}
