package models

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
