package models

const (
	CollectionSnippets = "snippets"
	CollectionRoadmaps = "roadmaps"
	CollectionArticles = "articles"
)

type Snippet struct {
	Base
	Cat   string `json:"cat" binding:"required"`
	Title string `json:"title" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type RoadmapStep struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type Roadmap struct {
	Base
	Title string        `json:"title" binding:"required"`
	Level string        `json:"level" binding:"required"`
	Steps []RoadmapStep `json:"steps" binding:"required"`
}

// Article is a blog post; Content holds markdown.
type Article struct {
	Base
	Title   string   `json:"title" binding:"required"`
	Date    string   `json:"date" binding:"required"`
	Tags    []string `json:"tags" binding:"required"`
	Image   string   `json:"image" binding:"required"`
	Desc    string   `json:"desc" binding:"required"`
	Content string   `json:"content" binding:"required"`
}
