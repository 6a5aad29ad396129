package models

const CollectionMessages = "messages"

// Message is a note left through the public contact form.
type Message struct {
	Base
	Name    string `json:"name" binding:"required"`
	Message string `json:"message" binding:"required"`
}
