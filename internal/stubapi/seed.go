// internal/stubapi/seed.go
package stubapi

import (
	"fmt"

	"mediastore/internal/catalog"
	"mediastore/internal/identity"
)

// Seed fills a fresh store with an admin account, a customer account and one
// product of each variant, so the consoles have something to show right away.
// Credentials: admin/admin123 and alice/alice123.
func Seed(store *Store) error {
	if _, err := store.CreateUser(identity.Registration{
		Username: "admin", Email: "admin@mediastore.local",
		Password: "admin123", FullName: "Store Admin", PhoneNumber: "0900000000",
	}); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if _, err := store.CreateUser(identity.Registration{
		Username: "alice", Email: "alice@example.com",
		Password: "alice123", FullName: "Alice Nguyen", PhoneNumber: "0987654321",
	}); err != nil {
		return fmt.Errorf("failed to seed customer user: %w", err)
	}

	products := []catalog.Product{
		{
			Title: "Clean Architecture", Barcode: "9780134494166", Category: "Software",
			ProductType: catalog.TypeBook, Description: "A craftsman's guide to software structure.",
			OriginalValue: 250000, CurrentPrice: 300000, Quantity: 12,
			Weight: 0.6, Height: 23, Width: 16, Length: 2.5, IsNew: true,
			PrimaryColor: "Blue", ReturnCondition: "New",
			Authors: "Robert C. Martin", Publisher: "Prentice Hall",
			CoverType: catalog.CoverPaperback, PublicationDate: "2017-09-10",
			NumberOfPages: 432, Language: "English", Genre: "Engineering",
		},
		{
			Title: "Abbey Road", Barcode: "0094638246817", Category: "Music",
			ProductType: catalog.TypeCD, Description: "Remastered studio album.",
			OriginalValue: 180000, CurrentPrice: 220000, Quantity: 30,
			Weight: 0.1, Height: 12.5, Width: 14, Length: 1, IsNew: true,
			PrimaryColor: "Multi", ReturnCondition: "New",
			Artists: "The Beatles", RecordLabel: "Apple Records",
			Genre: "Rock", ReleaseDate: "1969-09-26",
			Tracks: []catalog.Track{
				{Title: "Come Together", Length: 259, TrackNumber: 1},
				{Title: "Something", Length: 183, TrackNumber: 2},
				{Title: "Here Comes the Sun", Length: 185, TrackNumber: 3},
			},
		},
		{
			Title: "Spirited Away", Barcode: "0826663153712", Category: "Movies",
			ProductType: catalog.TypeDVD, Description: "Studio Ghibli classic.",
			OriginalValue: 200000, CurrentPrice: 250000, Quantity: 18,
			Weight: 0.15, Height: 19, Width: 13.5, Length: 1.5, IsNew: true,
			PrimaryColor: "Multi", ReturnCondition: "New",
			Director: "Hayao Miyazaki", Studio: "Studio Ghibli",
			DiscType: catalog.DiscBluRay, Runtime: 125,
			Language: "Japanese", Subtitles: "English, Vietnamese",
			Genre: "Animation", ReleaseDate: "2001-07-20",
		},
		{
			Title: "The Daily Chronicle", Barcode: "2000000000017", Category: "News",
			ProductType: catalog.TypeNewspaper, Description: "Morning edition.",
			OriginalValue: 10000, CurrentPrice: 12000, Quantity: 200,
			Weight: 0.2, Height: 40, Width: 28, Length: 0.3, IsNew: true,
			PrimaryColor: "Black", ReturnCondition: "None",
			EditorInChief: "Mai Tran", Publisher: "Chronicle Press",
			PublicationDate: "2025-01-06", PublicationFrequency: "Daily",
			IssueNumber: "2025-006", ISSN: "1234-5678",
			Language: "Vietnamese", Sections: "Politics, Business, Sports",
		},
	}

	for _, p := range products {
		if _, err := store.CreateProduct(p, "admin"); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Title, err)
		}
	}
	return nil
}
