package models

// Product is a catalog entry for a fish product.
type Product struct {
	BaseModel
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImagePath   string  `json:"image_path"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Available   bool    `json:"available"`
}
