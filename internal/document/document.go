package document

import (
	"time"

	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
)

// Record is the type-independent view of an issued document. The three
// physical tables keep their legacy layouts; everything above the
// repository works with this shape.
type Record struct {
	ID              int64          `json:"id"`
	Type            datamodel.Type `json:"type"`
	LastName        string         `json:"LastName"`
	FirstName       string         `json:"FirstName"`
	MiddleName      string         `json:"MiddleName,omitempty"`
	Address         string         `json:"Address"`
	Age             int            `json:"Age"`
	Birthdate       time.Time      `json:"Birthdate"`
	ContactNumber   string         `json:"ContactNumber,omitempty"`
	Gender          string         `json:"Gender"`
	Purpose         string         `json:"Purpose,omitempty"`
	BusinessName    string         `json:"BusinessName,omitempty"`
	BusinessAddress string         `json:"BusinessAddress,omitempty"`
	Owner           string         `json:"Owner,omitempty"`
	BusinessNature  string         `json:"BusinessNature,omitempty"`
	Classification  string         `json:"Classification,omitempty"`
	IssuedOn        time.Time      `json:"IssuedOn"`
	HashCode        string         `json:"hashcode"`
	CreatedAt       time.Time      `json:"-"`
}

// FullName joins first, middle and last name, skipping an absent middle
// name the way the certificate layout does.
func (r *Record) FullName() string {
	name := r.FirstName
	if r.MiddleName != "" {
		name += " " + r.MiddleName
	}
	if r.LastName != "" {
		name += " " + r.LastName
	}
	return name
}

// RecentEntry is one row of the recent-issuance feed: the common subset
// the three tables share, business_nature standing in for purpose on
// permits.
type RecentEntry struct {
	Type       datamodel.Type `json:"type"`
	LastName   string         `json:"LastName"`
	FirstName  string         `json:"FirstName"`
	MiddleName string         `json:"MiddleName"`
	Address    string         `json:"Address"`
	Purpose    string         `json:"Purpose"`
	IssuedOn   time.Time      `json:"IssuedOn"`
}

type Stats struct {
	TotalIssued      int64 `json:"totalIssued"`
	Clearances       int64 `json:"clearances"`
	Indigencies      int64 `json:"indigencies"`
	BusinessPermits  int64 `json:"businessPermits"`
	SuccessfulChecks int64 `json:"successfulChecks"`
	FailedChecks     int64 `json:"failedChecks"`
}

// Repository is the persistence boundary for issued documents.
type Repository interface {
	Insert(rec *Record) error
	GetByID(t datamodel.Type, id int64) (*Record, error)
	GetByHash(t datamodel.Type, hash string) (*Record, error)
	Recent(t datamodel.Type, limit int) ([]RecentEntry, error)
	Count(t datamodel.Type) (int64, error)
}
