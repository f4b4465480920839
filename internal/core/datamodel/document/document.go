package document

import "time"

type Type string

const (
	TypeClearance      Type = "clearance"
	TypeIndigency      Type = "indigency"
	TypeBusinessPermit Type = "businesspermit"
)

func (t Type) Valid() bool {
	switch t {
	case TypeClearance, TypeIndigency, TypeBusinessPermit:
		return true
	}
	return false
}

// Clearance maps the barangay_clearance table. Column names mirror the
// legacy schema, PascalCase included.
type Clearance struct {
	ClearanceID   int64     `gorm:"column:clearance_id;primaryKey"`
	LastName      string    `gorm:"column:LastName;not null"`
	FirstName     string    `gorm:"column:FirstName;not null"`
	MiddleName    string    `gorm:"column:MiddleName"`
	Address       string    `gorm:"column:Address;not null"`
	Age           int       `gorm:"column:Age;not null"`
	Birthdate     time.Time `gorm:"column:Birthdate;type:date"`
	ContactNumber string    `gorm:"column:ContactNumber"`
	Gender        string    `gorm:"column:Gender;not null"`
	Purpose       string    `gorm:"column:Purpose;not null"`
	IssuedOn      time.Time `gorm:"column:IssuedOn;type:date"`
	HashCode      string    `gorm:"column:hash_code;type:char(32);uniqueIndex"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Clearance) TableName() string { return "barangay_clearance" }

// Indigency maps certificate_of_indigency. The legacy schema reuses
// clearance_id as the primary key name.
type Indigency struct {
	ClearanceID   int64     `gorm:"column:clearance_id;primaryKey"`
	LastName      string    `gorm:"column:LastName;not null"`
	FirstName     string    `gorm:"column:FirstName;not null"`
	MiddleName    string    `gorm:"column:MiddleName"`
	Address       string    `gorm:"column:Address;not null"`
	Age           int       `gorm:"column:Age;not null"`
	Birthdate     time.Time `gorm:"column:Birthdate;type:date"`
	ContactNumber string    `gorm:"column:ContactNumber"`
	Gender        string    `gorm:"column:Gender;not null"`
	Purpose       string    `gorm:"column:Purpose;not null"`
	IssuedOn      time.Time `gorm:"column:IssuedOn;type:date"`
	HashCode      string    `gorm:"column:hash_code;type:char(32);uniqueIndex"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Indigency) TableName() string { return "certificate_of_indigency" }

type BusinessPermit struct {
	PermitID        int64     `gorm:"column:permit_id;primaryKey"`
	LastName        string    `gorm:"column:last_name;not null"`
	FirstName       string    `gorm:"column:first_name;not null"`
	MiddleName      string    `gorm:"column:middle_name"`
	Address         string    `gorm:"column:address;not null"`
	Age             int       `gorm:"column:age;not null"`
	Birthdate       time.Time `gorm:"column:birthdate;type:date"`
	ContactNumber   string    `gorm:"column:contact_number"`
	Gender          string    `gorm:"column:gender;not null"`
	BusinessName    string    `gorm:"column:business_name;not null"`
	BusinessAddress string    `gorm:"column:business_address;not null"`
	Owner           string    `gorm:"column:owner;not null"`
	BusinessNature  string    `gorm:"column:business_nature;not null"`
	Classification  string    `gorm:"column:classification;not null"`
	IssuedOn        time.Time `gorm:"column:issued_on;type:date"`
	HashCode        string    `gorm:"column:hash_code;type:char(32);uniqueIndex"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (BusinessPermit) TableName() string { return "business_permit" }
