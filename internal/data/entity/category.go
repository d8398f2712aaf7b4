package entity

type Category struct {
	BaseSimple
	Name        string  `db:"name"`
	Slug        string  `db:"slug"`
	Description *string `db:"description"`
	ImageURL    *string `db:"image_url"`
}
