package domain

// SourceSpec identifies one catalog JSON file and the category tag applied
// to every record it contributes.
type SourceSpec struct {
	File string `mapstructure:"file" json:"file"`
	Tag  string `mapstructure:"tag" json:"tag"`
}

// ProductRecord is the normalized view of a catalog entry. Source files are
// loosely typed, so every field is best-effort: missing or malformed values
// degrade to the zero value instead of failing the load.
type ProductRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price,omitempty"`
	SalePrice   *float64 `json:"salePrice,omitempty"`
	Image       string   `json:"image,omitempty"`
	HoverImage  string   `json:"hoverImage,omitempty"`
	Status      string   `json:"status,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Details     []string `json:"details,omitempty"`
	Source      string   `json:"source"`
}

// OnSale reports whether the record has a usable sale price
// (present and strictly between zero and the base price).
func (p ProductRecord) OnSale() bool {
	if p.SalePrice == nil || p.Price == nil {
		return false
	}
	return *p.SalePrice > 0 && *p.SalePrice < *p.Price
}

// ScoredMatch pairs a catalog record with the relevance score a scorer
// assigned to it for one query. Transient: built per query, never persisted.
type ScoredMatch struct {
	Record ProductRecord `json:"record"`
	Score  int           `json:"score"`
}
