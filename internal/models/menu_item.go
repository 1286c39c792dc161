package models

// MenuItem is a sellable product mirrored from the backend's menu_items
// collection. Cost is a pointer because legacy records predate the field;
// Migrate folds the legacy single image into Images and fills Cost.
type MenuItem struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description"`
	Cost        *int64     `json:"cost,omitempty" yaml:"cost"`
	Price       int64      `json:"price" yaml:"price"`
	Category    string     `json:"category" yaml:"category"`
	Image       string     `json:"image,omitempty" yaml:"image"`
	Images      StringList `json:"images" yaml:"images"`
	Available   bool       `json:"available" yaml:"available"`
}

type Waiter struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
}
