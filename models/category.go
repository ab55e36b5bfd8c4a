package models

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Day struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Short string `json:"short"`
}
