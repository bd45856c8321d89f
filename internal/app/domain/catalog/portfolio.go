package catalog

// PortfolioItem is a published work showcased on the portfolio page. It has
// no commerce fields.
type PortfolioItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	Year        int    `json:"year,omitempty"`
}

// PortfolioInput is the insert schema for portfolio items.
type PortfolioInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	Year        int    `json:"year"`
}

// Validate checks the insert schema.
func (in PortfolioInput) Validate() error {
	var v ValidationError
	v.require("title", in.Title)
	v.require("description", in.Description)
	v.require("image", in.Image)
	v.require("category", in.Category)
	v.require("author", in.Author)
	if len(v.Fields) > 0 {
		return &v
	}
	return nil
}

// Item materialises the validated input. The identifier is assigned by the
// store.
func (in PortfolioInput) Item() PortfolioItem {
	return PortfolioItem{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Category:    in.Category,
		Author:      in.Author,
		Year:        in.Year,
	}
}

// PortfolioPatch carries a partial update. Nil fields are left untouched.
type PortfolioPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Category    *string `json:"category"`
	Author      *string `json:"author"`
	Year        *int    `json:"year"`
}

// Apply overlays the patch onto item.
func (p PortfolioPatch) Apply(item *PortfolioItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Author != nil {
		item.Author = *p.Author
	}
	if p.Year != nil {
		item.Year = *p.Year
	}
}
