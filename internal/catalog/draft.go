// internal/catalog/draft.go
package catalog

import (
	"fmt"
	"strconv"
)

// Draft is the in-memory, not-yet-submitted form state of a product being
// created or edited. It holds the fields of every variant at once, so values
// typed for one variant survive a type switch during editing, but BuildPayload
// emits only the group matching ProductType. The track list belongs to the
// draft; there is no second copy to keep in sync.
type Draft struct {
	// Common
	Title           string
	Barcode         string
	Category        string
	ProductType     ProductType
	OriginalValue   float64
	CurrentPrice    float64
	Quantity        int
	Weight          float64
	Height          float64
	Width           float64
	Length          float64
	Description     string
	IsNew           bool
	PrimaryColor    string
	ReturnCondition string
	Status          string

	// BOOK
	Authors         string
	Publisher       string
	CoverType       string
	PublicationDate string
	NumberOfPages   int
	Language        string
	Genre           string

	// CD
	Artists     string
	RecordLabel string
	ReleaseDate string
	Tracks      []Track

	// DVD
	Director  string
	DiscType  string
	Studio    string
	Subtitles string
	Runtime   int

	// NEWSPAPER
	EditorInChief        string
	IssueNumber          string
	PublicationFrequency string
	ISSN                 string
	Sections             string
}

// NewDraft returns a creation draft for the given variant, pre-filled with
// the same defaults the product form starts from.
func NewDraft(productType ProductType) *Draft {
	return &Draft{
		ProductType:          productType,
		IsNew:                true,
		PrimaryColor:         "Multi",
		ReturnCondition:      "New",
		CoverType:            CoverPaperback,
		DiscType:             DiscDVD,
		PublicationFrequency: "Daily",
		Tracks:               []Track{},
	}
}

// EditDraft returns a draft pre-populated from an existing record. For CDs
// the track list is copied, so editing the draft never mutates the fetched
// record.
func EditDraft(p *Product) *Draft {
	d := &Draft{
		Title:           p.Title,
		Barcode:         p.Barcode,
		Category:        p.Category,
		ProductType:     p.ProductType,
		OriginalValue:   p.OriginalValue,
		CurrentPrice:    p.CurrentPrice,
		Quantity:        p.Quantity,
		Weight:          p.Weight,
		Height:          p.Height,
		Width:           p.Width,
		Length:          p.Length,
		Description:     p.Description,
		IsNew:           p.IsNew,
		PrimaryColor:    p.PrimaryColor,
		ReturnCondition: p.ReturnCondition,
		Status:          p.Status,

		Authors:         p.Authors,
		Publisher:       p.Publisher,
		CoverType:       p.CoverType,
		PublicationDate: p.PublicationDate,
		NumberOfPages:   p.NumberOfPages,
		Language:        p.Language,
		Genre:           p.Genre,

		Artists:     p.Artists,
		RecordLabel: p.RecordLabel,
		ReleaseDate: p.ReleaseDate,
		Tracks:      make([]Track, len(p.Tracks)),

		Director:  p.Director,
		DiscType:  p.DiscType,
		Studio:    p.Studio,
		Subtitles: p.Subtitles,
		Runtime:   p.Runtime,

		EditorInChief:        p.EditorInChief,
		IssueNumber:          p.IssueNumber,
		PublicationFrequency: p.PublicationFrequency,
		ISSN:                 p.ISSN,
		Sections:             p.Sections,
	}
	copy(d.Tracks, p.Tracks)
	return d
}

// UpdateField sets one attribute by its wire name. Values arrive as whatever
// the console read from the user, so strings are coerced to the field's type.
// No cross-field recomputation happens here; the price band is checked only
// at submit time by ValidateForSubmit.
func (d *Draft) UpdateField(field string, value any) error {
	switch field {
	case "title":
		return setString(&d.Title, value)
	case "barcode":
		return setString(&d.Barcode, value)
	case "category":
		return setString(&d.Category, value)
	case "productType":
		var s string
		if err := setString(&s, value); err != nil {
			return err
		}
		t := ProductType(s)
		if !t.Valid() {
			return fmt.Errorf("unknown product type %q", s)
		}
		d.ProductType = t
		return nil
	case "originalValue":
		return setFloat(&d.OriginalValue, value)
	case "currentPrice":
		return setFloat(&d.CurrentPrice, value)
	case "quantity":
		return setInt(&d.Quantity, value)
	case "weight":
		return setFloat(&d.Weight, value)
	case "height":
		return setFloat(&d.Height, value)
	case "width":
		return setFloat(&d.Width, value)
	case "length":
		return setFloat(&d.Length, value)
	case "description":
		return setString(&d.Description, value)
	case "isNew":
		return setBool(&d.IsNew, value)
	case "primaryColor":
		return setString(&d.PrimaryColor, value)
	case "returnCondition":
		return setString(&d.ReturnCondition, value)
	case "authors":
		return setString(&d.Authors, value)
	case "publisher":
		return setString(&d.Publisher, value)
	case "coverType":
		return setString(&d.CoverType, value)
	case "publicationDate":
		return setString(&d.PublicationDate, value)
	case "numberOfPages":
		return setInt(&d.NumberOfPages, value)
	case "language":
		return setString(&d.Language, value)
	case "genre":
		return setString(&d.Genre, value)
	case "artists":
		return setString(&d.Artists, value)
	case "recordLabel":
		return setString(&d.RecordLabel, value)
	case "releaseDate":
		return setString(&d.ReleaseDate, value)
	case "director":
		return setString(&d.Director, value)
	case "discType":
		return setString(&d.DiscType, value)
	case "studio":
		return setString(&d.Studio, value)
	case "subtitles":
		return setString(&d.Subtitles, value)
	case "runtime":
		return setInt(&d.Runtime, value)
	case "editorInChief":
		return setString(&d.EditorInChief, value)
	case "issueNumber":
		return setString(&d.IssueNumber, value)
	case "publicationFrequency":
		return setString(&d.PublicationFrequency, value)
	case "issn":
		return setString(&d.ISSN, value)
	case "sections":
		return setString(&d.Sections, value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
}

// AddTrack appends an empty track numbered after the current last one.
func (d *Draft) AddTrack() {
	d.Tracks = append(d.Tracks, Track{
		Title:       "",
		Length:      0,
		TrackNumber: len(d.Tracks) + 1,
	})
}

// UpdateTrack sets the title or length of the track at index. Track numbers
// are untouched; only removal renumbers.
func (d *Draft) UpdateTrack(index int, field string, value any) error {
	if index < 0 || index >= len(d.Tracks) {
		return fmt.Errorf("track index %d out of range", index)
	}
	switch field {
	case "title":
		return setString(&d.Tracks[index].Title, value)
	case "length":
		return setFloat(&d.Tracks[index].Length, value)
	default:
		return fmt.Errorf("unknown track field %q", field)
	}
}

// RemoveTrack deletes the track at index and renumbers the remaining tracks
// 1..N in their current order. The renumbering is destructive: a gap left by
// the removed track is closed, not preserved.
func (d *Draft) RemoveTrack(index int) error {
	if index < 0 || index >= len(d.Tracks) {
		return fmt.Errorf("track index %d out of range", index)
	}
	d.Tracks = append(d.Tracks[:index], d.Tracks[index+1:]...)
	for i := range d.Tracks {
		d.Tracks[i].TrackNumber = i + 1
	}
	return nil
}

// PriceBandError reports a sale price outside the admissible band around the
// acquisition cost. The consoles show both computed bounds to the user.
type PriceBandError struct {
	MinPrice float64
	MaxPrice float64
}

func (e *PriceBandError) Error() string {
	return fmt.Sprintf("current price must be between %g and %g (30%%-150%% of original value)",
		e.MinPrice, e.MaxPrice)
}

// ValidateForSubmit checks the one rule enforced locally before any network
// call: currentPrice must lie within [0.3, 1.5] x originalValue. All other
// field requirements are the backend's to enforce.
func (d *Draft) ValidateForSubmit() error {
	minPrice := d.OriginalValue * 0.3
	maxPrice := d.OriginalValue * 1.5
	if d.CurrentPrice < minPrice || d.CurrentPrice > maxPrice {
		return &PriceBandError{MinPrice: minPrice, MaxPrice: maxPrice}
	}
	return nil
}

// Payload is the flat JSON object sent to the backend on create and update.
type Payload map[string]any

// BuildPayload assembles the wire payload: the common field set verbatim,
// merged with only the variant group matching ProductType. Fields belonging
// to other variants are absent from the result entirely, never sent as null,
// because the backend discriminates incoming records by productType plus the
// fields present.
func (d *Draft) BuildPayload() Payload {
	payload := Payload{
		"title":           d.Title,
		"barcode":         d.Barcode,
		"category":        d.Category,
		"productType":     d.ProductType,
		"originalValue":   d.OriginalValue,
		"currentPrice":    d.CurrentPrice,
		"quantity":        d.Quantity,
		"weight":          d.Weight,
		"height":          d.Height,
		"width":           d.Width,
		"length":          d.Length,
		"description":     d.Description,
		"isNew":           d.IsNew,
		"primaryColor":    d.PrimaryColor,
		"returnCondition": d.ReturnCondition,
	}
	if d.Status != "" {
		payload["status"] = d.Status
	}

	switch d.ProductType {
	case TypeBook:
		payload["authors"] = d.Authors
		payload["publisher"] = d.Publisher
		payload["coverType"] = d.CoverType
		payload["publicationDate"] = d.PublicationDate
		payload["numberOfPages"] = d.NumberOfPages
		payload["language"] = d.Language
		payload["genre"] = d.Genre
	case TypeCD:
		payload["artists"] = d.Artists
		payload["recordLabel"] = d.RecordLabel
		payload["genre"] = d.Genre
		payload["releaseDate"] = d.ReleaseDate
		payload["tracks"] = d.Tracks
	case TypeDVD:
		payload["director"] = d.Director
		payload["discType"] = d.DiscType
		payload["runtime"] = d.Runtime
		payload["studio"] = d.Studio
		payload["subtitles"] = d.Subtitles
		payload["language"] = d.Language
		payload["genre"] = d.Genre
		payload["releaseDate"] = d.ReleaseDate
	case TypeNewspaper:
		payload["editorInChief"] = d.EditorInChief
		payload["publisher"] = d.Publisher
		payload["publicationDate"] = d.PublicationDate
		payload["issueNumber"] = d.IssueNumber
		payload["publicationFrequency"] = d.PublicationFrequency
		payload["issn"] = d.ISSN
		payload["language"] = d.Language
		payload["sections"] = d.Sections
	}

	return payload
}

// Coercion helpers for UpdateField. Console input arrives as strings; tests
// and programmatic callers pass typed values.

func setString(dst *string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	*dst = s
	return nil
}

func setFloat(dst *float64, value any) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", v)
		}
		*dst = f
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
	return nil
}

func setInt(dst *int, value any) error {
	switch v := value.(type) {
	case int:
		*dst = v
	case float64:
		*dst = int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		*dst = n
	default:
		return fmt.Errorf("expected integer, got %T", value)
	}
	return nil
}

func setBool(dst *bool, value any) error {
	switch v := value.(type) {
	case bool:
		*dst = v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", v)
		}
		*dst = b
	default:
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}
