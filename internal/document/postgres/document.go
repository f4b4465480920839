package postgres

import (
	"github.com/barangay/docucheck/internal/core/datamodel/document"
	domain "github.com/barangay/docucheck/internal/document"
	"gorm.io/gorm"
)

// DocumentRepository implements document.Repository over the three
// legacy tables using GORM.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) domain.Repository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Insert(rec *domain.Record) error {
	switch rec.Type {
	case document.TypeClearance:
		row := clearanceFromRecord(rec)
		if err := r.db.Create(row).Error; err != nil {
			return err
		}
		rec.ID = row.ClearanceID
	case document.TypeIndigency:
		row := indigencyFromRecord(rec)
		if err := r.db.Create(row).Error; err != nil {
			return err
		}
		rec.ID = row.ClearanceID
	case document.TypeBusinessPermit:
		row := permitFromRecord(rec)
		if err := r.db.Create(row).Error; err != nil {
			return err
		}
		rec.ID = row.PermitID
	default:
		return gorm.ErrInvalidData
	}
	return nil
}

func (r *DocumentRepository) GetByID(t document.Type, id int64) (*domain.Record, error) {
	switch t {
	case document.TypeClearance:
		var row document.Clearance
		if err := r.db.Where("clearance_id = ?", id).First(&row).Error; err != nil {
			return nil, err
		}
		return clearanceToRecord(&row), nil
	case document.TypeIndigency:
		var row document.Indigency
		if err := r.db.Where("clearance_id = ?", id).First(&row).Error; err != nil {
			return nil, err
		}
		return indigencyToRecord(&row), nil
	case document.TypeBusinessPermit:
		var row document.BusinessPermit
		if err := r.db.Where("permit_id = ?", id).First(&row).Error; err != nil {
			return nil, err
		}
		return permitToRecord(&row), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *DocumentRepository) GetByHash(t document.Type, hash string) (*domain.Record, error) {
	switch t {
	case document.TypeClearance:
		var row document.Clearance
		if err := r.db.Where("hash_code = ?", hash).First(&row).Error; err != nil {
			return nil, err
		}
		return clearanceToRecord(&row), nil
	case document.TypeIndigency:
		var row document.Indigency
		if err := r.db.Where("hash_code = ?", hash).First(&row).Error; err != nil {
			return nil, err
		}
		return indigencyToRecord(&row), nil
	case document.TypeBusinessPermit:
		var row document.BusinessPermit
		if err := r.db.Where("hash_code = ?", hash).First(&row).Error; err != nil {
			return nil, err
		}
		return permitToRecord(&row), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *DocumentRepository) Recent(t document.Type, limit int) ([]domain.RecentEntry, error) {
	entries := make([]domain.RecentEntry, 0, limit)

	switch t {
	case document.TypeClearance:
		var rows []document.Clearance
		if err := r.db.Order("\"IssuedOn\" DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			entries = append(entries, *recentFromRecord(clearanceToRecord(&rows[i])))
		}
	case document.TypeIndigency:
		var rows []document.Indigency
		if err := r.db.Order("\"IssuedOn\" DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			entries = append(entries, *recentFromRecord(indigencyToRecord(&rows[i])))
		}
	case document.TypeBusinessPermit:
		var rows []document.BusinessPermit
		if err := r.db.Order("issued_on DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			entries = append(entries, *recentFromRecord(permitToRecord(&rows[i])))
		}
	}

	return entries, nil
}

func (r *DocumentRepository) Count(t document.Type) (int64, error) {
	var n int64
	var err error
	switch t {
	case document.TypeClearance:
		err = r.db.Model(&document.Clearance{}).Count(&n).Error
	case document.TypeIndigency:
		err = r.db.Model(&document.Indigency{}).Count(&n).Error
	case document.TypeBusinessPermit:
		err = r.db.Model(&document.BusinessPermit{}).Count(&n).Error
	}
	return n, err
}

func clearanceFromRecord(rec *domain.Record) *document.Clearance {
	return &document.Clearance{
		LastName:      rec.LastName,
		FirstName:     rec.FirstName,
		MiddleName:    rec.MiddleName,
		Address:       rec.Address,
		Age:           rec.Age,
		Birthdate:     rec.Birthdate,
		ContactNumber: rec.ContactNumber,
		Gender:        rec.Gender,
		Purpose:       rec.Purpose,
		IssuedOn:      rec.IssuedOn,
		HashCode:      rec.HashCode,
	}
}

func clearanceToRecord(row *document.Clearance) *domain.Record {
	return &domain.Record{
		ID:            row.ClearanceID,
		Type:          document.TypeClearance,
		LastName:      row.LastName,
		FirstName:     row.FirstName,
		MiddleName:    row.MiddleName,
		Address:       row.Address,
		Age:           row.Age,
		Birthdate:     row.Birthdate,
		ContactNumber: row.ContactNumber,
		Gender:        row.Gender,
		Purpose:       row.Purpose,
		IssuedOn:      row.IssuedOn,
		HashCode:      row.HashCode,
		CreatedAt:     row.CreatedAt,
	}
}

func indigencyFromRecord(rec *domain.Record) *document.Indigency {
	return &document.Indigency{
		LastName:      rec.LastName,
		FirstName:     rec.FirstName,
		MiddleName:    rec.MiddleName,
		Address:       rec.Address,
		Age:           rec.Age,
		Birthdate:     rec.Birthdate,
		ContactNumber: rec.ContactNumber,
		Gender:        rec.Gender,
		Purpose:       rec.Purpose,
		IssuedOn:      rec.IssuedOn,
		HashCode:      rec.HashCode,
	}
}

func indigencyToRecord(row *document.Indigency) *domain.Record {
	return &domain.Record{
		ID:            row.ClearanceID,
		Type:          document.TypeIndigency,
		LastName:      row.LastName,
		FirstName:     row.FirstName,
		MiddleName:    row.MiddleName,
		Address:       row.Address,
		Age:           row.Age,
		Birthdate:     row.Birthdate,
		ContactNumber: row.ContactNumber,
		Gender:        row.Gender,
		Purpose:       row.Purpose,
		IssuedOn:      row.IssuedOn,
		HashCode:      row.HashCode,
		CreatedAt:     row.CreatedAt,
	}
}

func permitFromRecord(rec *domain.Record) *document.BusinessPermit {
	return &document.BusinessPermit{
		LastName:        rec.LastName,
		FirstName:       rec.FirstName,
		MiddleName:      rec.MiddleName,
		Address:         rec.Address,
		Age:             rec.Age,
		Birthdate:       rec.Birthdate,
		ContactNumber:   rec.ContactNumber,
		Gender:          rec.Gender,
		BusinessName:    rec.BusinessName,
		BusinessAddress: rec.BusinessAddress,
		Owner:           rec.Owner,
		BusinessNature:  rec.BusinessNature,
		Classification:  rec.Classification,
		IssuedOn:        rec.IssuedOn,
		HashCode:        rec.HashCode,
	}
}

func permitToRecord(row *document.BusinessPermit) *domain.Record {
	return &domain.Record{
		ID:              row.PermitID,
		Type:            document.TypeBusinessPermit,
		LastName:        row.LastName,
		FirstName:       row.FirstName,
		MiddleName:      row.MiddleName,
		Address:         row.Address,
		Age:             row.Age,
		Birthdate:       row.Birthdate,
		ContactNumber:   row.ContactNumber,
		Gender:          row.Gender,
		BusinessName:    row.BusinessName,
		BusinessAddress: row.BusinessAddress,
		Owner:           row.Owner,
		BusinessNature:  row.BusinessNature,
		Classification:  row.Classification,
		IssuedOn:        row.IssuedOn,
		HashCode:        row.HashCode,
		CreatedAt:       row.CreatedAt,
	}
}

// recentFromRecord projects a record onto the feed shape; permits use
// the nature of business as the displayed purpose.
func recentFromRecord(rec *domain.Record) *domain.RecentEntry {
	purpose := rec.Purpose
	if rec.Type == document.TypeBusinessPermit {
		purpose = rec.BusinessNature
	}
	return &domain.RecentEntry{
		Type:       rec.Type,
		LastName:   rec.LastName,
		FirstName:  rec.FirstName,
		MiddleName: rec.MiddleName,
		Address:    rec.Address,
		Purpose:    purpose,
		IssuedOn:   rec.IssuedOn,
	}
}
