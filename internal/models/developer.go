package models

const (
	CollectionSkills            = "skills"
	CollectionProjects          = "projects"
	CollectionDeveloperServices = "developer_services"
)

type Skill struct {
	Base
	Category string  `json:"category" binding:"required"` // e.g. LANGUAGES, FRAMEWORKS
	Name     string  `json:"name" binding:"required"`
	Level    FlexInt `json:"level" binding:"required,min=1,max=5"`
	Icon     string  `json:"icon,omitempty"`
	XP       string  `json:"xp"`
}

const defaultSkillXP = "0 Yrs"

func (s *Skill) ApplyDefaults() {
	if s.XP == "" {
		s.XP = defaultSkillXP
	}
}

type Project struct {
	Base
	Title      string   `json:"title" binding:"required"`
	Desc       string   `json:"desc" binding:"required"`
	Tech       []string `json:"tech" binding:"required"`
	Year       string   `json:"year" binding:"required"`
	Image      string   `json:"image,omitempty"`
	SourceLink string   `json:"sourceLink,omitempty"`
	LiveLink   string   `json:"liveLink,omitempty"`
	Status     string   `json:"status,omitempty"`
}

type DeveloperService struct {
	Base
	Title string   `json:"title" binding:"required"`
	Icon  string   `json:"icon" binding:"required"`
	Desc  string   `json:"desc" binding:"required"`
	Tags  []string `json:"tags" binding:"required"`
}
