// internal/catalog/domain.go
package catalog

// ProductType discriminates the four product variants. The backend reads this
// field to decide which variant-specific attributes it expects, so payloads
// for one type must never carry another type's fields.
type ProductType string

const (
	TypeBook      ProductType = "BOOK"
	TypeCD        ProductType = "CD"
	TypeDVD       ProductType = "DVD"
	TypeNewspaper ProductType = "NEWSPAPER"
)

// ProductTypes lists every valid variant, in the order the consoles offer them.
var ProductTypes = []ProductType{TypeBook, TypeCD, TypeDVD, TypeNewspaper}

// Valid reports whether t names one of the four variants.
func (t ProductType) Valid() bool {
	switch t {
	case TypeBook, TypeCD, TypeDVD, TypeNewspaper:
		return true
	}
	return false
}

// Lifecycle statuses. Products are never physically deleted; "delete" with
// remaining stock transitions to DEACTIVATED, and a reactivation resubmits
// the full record with StatusActive.
const (
	StatusActive      = "ACTIVE"
	StatusDeactivated = "DEACTIVATED"
)

// Cover types for books.
const (
	CoverPaperback = "PAPERBACK"
	CoverHardcover = "HARDCOVER"
)

// Disc types for DVDs.
const (
	DiscDVD    = "DVD"
	DiscBluRay = "BLURAY"
	DiscHDDVD  = "HD_DVD"
)

// Track is one entry of a CD's track list. Tracks have no life of their own:
// they exist only inside their owning CD record and its in-memory draft, and
// TrackNumber is always kept dense, 1..N with no gaps.
type Track struct {
	ID          int     `json:"id,omitempty"`
	Title       string  `json:"title"`
	Length      float64 `json:"length"`
	TrackNumber int     `json:"trackNumber"`
}

// Product is a full catalog record as the backend returns it. Common fields
// are always present; the variant-specific groups are populated only for the
// matching ProductType.
type Product struct {
	ID              int         `json:"id"`
	Title           string      `json:"title"`
	Barcode         string      `json:"barcode"`
	Category        string      `json:"category"`
	ProductType     ProductType `json:"productType"`
	Description     string      `json:"description"`
	OriginalValue   float64     `json:"originalValue"`
	CurrentPrice    float64     `json:"currentPrice"`
	Quantity        int         `json:"quantity"`
	Status          string      `json:"status"`
	IsNew           bool        `json:"isNew"`
	PrimaryColor    string      `json:"primaryColor,omitempty"`
	ReturnCondition string      `json:"returnCondition,omitempty"`

	// Physical attributes, used by the backend's shipping fee calculation.
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`

	// Audit fields, assigned by the backend and read-only here.
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	// BOOK
	Authors         string `json:"authors,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	CoverType       string `json:"coverType,omitempty"`
	PublicationDate string `json:"publicationDate,omitempty"`
	NumberOfPages   int    `json:"numberOfPages,omitempty"`
	Language        string `json:"language,omitempty"`
	Genre           string `json:"genre,omitempty"`

	// CD
	Artists     string  `json:"artists,omitempty"`
	RecordLabel string  `json:"recordLabel,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Tracks      []Track `json:"tracks,omitempty"`

	// DVD
	Director  string `json:"director,omitempty"`
	DiscType  string `json:"discType,omitempty"`
	Studio    string `json:"studio,omitempty"`
	Subtitles string `json:"subtitles,omitempty"`
	Runtime   int    `json:"runtime,omitempty"`

	// NEWSPAPER
	EditorInChief        string `json:"editorInChief,omitempty"`
	IssueNumber          string `json:"issueNumber,omitempty"`
	PublicationFrequency string `json:"publicationFrequency,omitempty"`
	ISSN                 string `json:"issn,omitempty"`
	Sections             string `json:"sections,omitempty"`
}

// HistoryEntry is one line of a product's change journal, as shown on the
// admin history screen.
type HistoryEntry struct {
	ID          int    `json:"id"`
	ActionType  string `json:"actionType"` // ADDED, UPDATED, DELETED, STOCK_ADJUSTED
	ActionDate  string `json:"actionDate"`
	PerformedBy string `json:"performedBy"`
	Description string `json:"description"`
	OldValue    string `json:"oldValue,omitempty"`
	NewValue    string `json:"newValue,omitempty"`
}
