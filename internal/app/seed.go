package app

import (
	"context"
	"fmt"

	"github.com/udvasito/storefront/internal/app/domain/catalog"
	"github.com/udvasito/storefront/internal/app/storage"
)

// Seed populates empty stores with the launch catalog. A store that already
// holds rows is left alone, so seeding is safe to run on every start.
func Seed(ctx context.Context, books storage.BookStore, portfolio storage.PortfolioStore) error {
	existing, err := books.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("seed: list books: %w", err)
	}
	if len(existing) == 0 {
		for _, b := range seedBooks {
			if _, err := books.CreateBook(ctx, b); err != nil {
				return fmt.Errorf("seed: create book %q: %w", b.Title, err)
			}
		}
	}

	items, err := portfolio.ListPortfolioItems(ctx)
	if err != nil {
		return fmt.Errorf("seed: list portfolio: %w", err)
	}
	if len(items) == 0 {
		for _, item := range seedPortfolio {
			if _, err := portfolio.CreatePortfolioItem(ctx, item); err != nil {
				return fmt.Errorf("seed: create portfolio item %q: %w", item.Title, err)
			}
		}
	}
	return nil
}

var seedBooks = []catalog.Book{
	{
		Title:         "The Silent Echo",
		Author:        "Aminul Islam",
		Price:         450,
		Description:   "A profound exploration of silence and its echoes in modern Bengali literature.",
		CoverImage:    "https://storage.googleapis.com/udvasito-media/covers/the-silent-echo.jpg",
		Category:      "Fiction",
		ISBN:          "978-984-123-456-7",
		Pages:         256,
		PublishedYear: 2024,
		InStock:       true,
	},
	{
		Title:         "Botanical Dreams",
		Author:        "Fatima Rahman",
		Price:         520,
		Description:   "Poetry collection inspired by the natural beauty of Bangladesh.",
		CoverImage:    "https://storage.googleapis.com/udvasito-media/covers/botanical-dreams.jpg",
		Category:      "Poetry",
		ISBN:          "978-984-123-457-4",
		Pages:         128,
		PublishedYear: 2024,
		InStock:       true,
	},
	{
		Title:         "Watercolor Memories",
		Author:        "Kamal Hossain",
		Price:         680,
		Description:   "An artistic memoir blending visual art with prose narratives.",
		CoverImage:    "https://storage.googleapis.com/udvasito-media/covers/watercolor-memories.jpg",
		Category:      "Art & Design",
		ISBN:          "978-984-123-458-1",
		Pages:         200,
		PublishedYear: 2025,
		InStock:       true,
	},
	{
		Title:         "Heritage Tales",
		Author:        "Nusrat Jahan",
		Price:         390,
		Description:   "Stories rooted in the rich cultural heritage of Bengal.",
		CoverImage:    "https://storage.googleapis.com/udvasito-media/covers/heritage-tales.jpg",
		Category:      "Fiction",
		ISBN:          "978-984-123-459-8",
		Pages:         312,
		PublishedYear: 2024,
		InStock:       true,
	},
}

var seedPortfolio = []catalog.PortfolioItem{
	{
		Title:       "The Silent Echo",
		Author:      "Aminul Islam",
		Image:       "https://storage.googleapis.com/udvasito-media/covers/the-silent-echo.jpg",
		Year:        2024,
		Description: "Award-winning debut novel exploring themes of identity and belonging.",
	},
	{
		Title:       "Botanical Dreams",
		Author:      "Fatima Rahman",
		Image:       "https://storage.googleapis.com/udvasito-media/covers/botanical-dreams.jpg",
		Year:        2024,
		Description: "Featured in the National Poetry Festival 2024.",
	},
	{
		Title:       "Watercolor Memories",
		Author:      "Kamal Hossain",
		Image:       "https://storage.googleapis.com/udvasito-media/covers/watercolor-memories.jpg",
		Year:        2025,
		Description: "A unique fusion of visual art and literary narrative.",
	},
}
