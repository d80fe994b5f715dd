package domain

type Item struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Owner       *User    `json:"owner,omitempty"` // Populated when fetching item details
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	// PricePerDay is in credits, the platform's internal unit.
	PricePerDay int    `json:"price_per_day"`
	Available   bool   `json:"available"`
	CreatedOn   string `json:"created_on"`
	UpdatedOn   string `json:"updated_on"`
}

// ItemFilter carries the browse/search parameters.
type ItemFilter struct {
	Query         string
	Category      string
	Location      string
	MaxPrice      int  // 0 means no cap
	OnlyAvailable bool
}
