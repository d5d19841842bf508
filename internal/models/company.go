package models

// Company holds the public company profile. The table contains a
// single row created at bootstrap; handlers always operate on the
// first record.
type Company struct {
	BaseModel
	Name           string `json:"name"`
	LogoPath       string `json:"logo_path"`
	Description    string `json:"description"`
	Phone          string `json:"phone"`
	Whatsapp       string `json:"whatsapp"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	OperatingHours string `json:"operating_hours"`
}
