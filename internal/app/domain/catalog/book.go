// Package catalog defines the read-facing entities of the storefront: books
// for sale and portfolio pieces, together with the validated shapes required
// to create them.
package catalog

// Book is a catalog entry. Price is an integer amount in the shop currency
// (taka); there are no fractional prices.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Price         int    `json:"price"`
	Description   string `json:"description"`
	CoverImage    string `json:"coverImage"`
	Category      string `json:"category"`
	Featured      bool   `json:"featured"`
	ISBN          string `json:"isbn,omitempty"`
	Pages         int    `json:"pages,omitempty"`
	PublishedYear int    `json:"publishedYear,omitempty"`
	InStock       bool   `json:"inStock"`
}

// BookInput is the insert schema for books. Optional flags use pointers so
// that absent fields pick up the schema defaults (featured=false,
// inStock=true) rather than the zero value.
type BookInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Price         *int   `json:"price"`
	Description   string `json:"description"`
	CoverImage    string `json:"coverImage"`
	Category      string `json:"category"`
	Featured      *bool  `json:"featured"`
	ISBN          string `json:"isbn"`
	Pages         int    `json:"pages"`
	PublishedYear int    `json:"publishedYear"`
	InStock       *bool  `json:"inStock"`
}

// Validate checks the insert schema. It returns a *ValidationError listing
// every missing or malformed field, or nil when the input is well formed.
func (in BookInput) Validate() error {
	var v ValidationError
	v.require("title", in.Title)
	v.require("author", in.Author)
	v.require("description", in.Description)
	v.require("coverImage", in.CoverImage)
	v.require("category", in.Category)
	if in.Price == nil {
		v.add("price", "price is required")
	} else if *in.Price < 0 {
		v.add("price", "price must not be negative")
	}
	if in.Pages < 0 {
		v.add("pages", "pages must not be negative")
	}
	if len(v.Fields) > 0 {
		return &v
	}
	return nil
}

// Book materialises the validated input into a Book with defaults applied.
// The identifier is assigned by the store.
func (in BookInput) Book() Book {
	b := Book{
		Title:         in.Title,
		Author:        in.Author,
		Description:   in.Description,
		CoverImage:    in.CoverImage,
		Category:      in.Category,
		ISBN:          in.ISBN,
		Pages:         in.Pages,
		PublishedYear: in.PublishedYear,
		InStock:       true,
	}
	if in.Price != nil {
		b.Price = *in.Price
	}
	if in.Featured != nil {
		b.Featured = *in.Featured
	}
	if in.InStock != nil {
		b.InStock = *in.InStock
	}
	return b
}

// BookPatch carries a partial update. Nil fields are left untouched.
type BookPatch struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Price         *int    `json:"price"`
	Description   *string `json:"description"`
	CoverImage    *string `json:"coverImage"`
	Category      *string `json:"category"`
	Featured      *bool   `json:"featured"`
	ISBN          *string `json:"isbn"`
	Pages         *int    `json:"pages"`
	PublishedYear *int    `json:"publishedYear"`
	InStock       *bool   `json:"inStock"`
}

// Apply overlays the patch onto b.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.CoverImage != nil {
		b.CoverImage = *p.CoverImage
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Featured != nil {
		b.Featured = *p.Featured
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.Pages != nil {
		b.Pages = *p.Pages
	}
	if p.PublishedYear != nil {
		b.PublishedYear = *p.PublishedYear
	}
	if p.InStock != nil {
		b.InStock = *p.InStock
	}
}
