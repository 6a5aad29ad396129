package models

const (
	CollectionSketches = "sketches"
	CollectionBooks    = "books"
	CollectionThoughts = "thoughts"
)

type Sketch struct {
	Base
	Title string `json:"title" binding:"required"`
	Date  string `json:"date" binding:"required"`
	Img   string `json:"img" binding:"required"`
}

type Book struct {
	Base
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	Desc   string `json:"desc" binding:"required"`
	Cover  string `json:"cover" binding:"required"`
}

type Thought struct {
	Base
	Date string `json:"date" binding:"required"`
	Text string `json:"text" binding:"required"`
}
