package models

// ProductCategories lists the catalogue categories.
var ProductCategories = []string{"Electronics", "Wearables", "Accessories", "Home", "Gaming", "Office"}

// Product is a catalogue item with stock and sales counters.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Sales    int     `json:"sales"`
	Image    string  `json:"image,omitempty"`
}
