package models

const (
	CollectionGallery          = "gallery"
	CollectionTools            = "tools"
	CollectionDesignerServices = "designer_services"
)

// GalleryItem is a single piece of design work.
type GalleryItem struct {
	Base
	Title    string   `json:"title" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Image    string   `json:"image" binding:"required"`
	Tags     []string `json:"tags" binding:"required"`
	Link     string   `json:"link,omitempty"`
}

type Tool struct {
	Base
	Name  string `json:"name" binding:"required"`
	Icon  string `json:"icon" binding:"required"`
	Level string `json:"level" binding:"required"` // free text, e.g. "Expert"
}

type DesignerService struct {
	Base
	Title string   `json:"title" binding:"required"`
	Icon  string   `json:"icon" binding:"required"`
	Desc  string   `json:"desc" binding:"required"`
	Items []string `json:"items" binding:"required"`
}
