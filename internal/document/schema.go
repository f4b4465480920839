package document

import (
	errors "github.com/barangay/docucheck/internal"
	"github.com/barangay/docucheck/internal/core/common/validation"
	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
)

// Schema describes one document type: which submitted fields are
// mandatory and how the API phrases a successful issuance.
type Schema struct {
	Type           datamodel.Type
	RequiredFields []string
	SuccessMessage string
}

var schemas = map[datamodel.Type]Schema{
	datamodel.TypeClearance: {
		Type: datamodel.TypeClearance,
		RequiredFields: []string{
			"LastName", "FirstName", "Address", "Age", "Birthdate",
			"ContactNumber", "Gender", "Purpose", "issuedOn",
		},
		SuccessMessage: "Form submitted successfully",
	},
	datamodel.TypeIndigency: {
		Type: datamodel.TypeIndigency,
		RequiredFields: []string{
			"LastName", "FirstName", "Address", "Age", "Birthdate",
			"Gender", "Purpose", "issuedOn",
		},
		SuccessMessage: "Certificate of Indigency form submitted successfully",
	},
	datamodel.TypeBusinessPermit: {
		Type: datamodel.TypeBusinessPermit,
		RequiredFields: []string{
			"LastName", "FirstName", "Address", "Age", "Birthdate",
			"ContactNumber", "Gender", "BusinessName", "BusinessAddress",
			"Owner", "BusinessNature", "Classification", "issuedOn",
		},
		SuccessMessage: "Business Permit form submitted successfully",
	},
}

// SchemaFor looks up the schema for a document type.
func SchemaFor(t datamodel.Type) (Schema, bool) {
	s, ok := schemas[t]
	return s, ok
}

// Validate checks the submission against the schema. Any missing
// required field collapses to the single legacy 400 message; malformed
// dates surface per field.
func (s Schema) Validate(dto *SubmissionDTO) *errors.AppError {
	fields := map[string]string{
		"LastName":        dto.LastName,
		"FirstName":       dto.FirstName,
		"Address":         dto.Address,
		"Age":             dto.Age.String(),
		"Birthdate":       dto.Birthdate,
		"ContactNumber":   dto.ContactNumber,
		"Gender":          dto.Gender,
		"Purpose":         dto.Purpose,
		"BusinessName":    dto.BusinessName,
		"BusinessAddress": dto.BusinessAddress,
		"Owner":           dto.Owner,
		"BusinessNature":  dto.BusinessNature,
		"Classification":  dto.Classification,
		"issuedOn":        dto.IssuedOn,
	}

	v := validation.NewValidator()
	for _, name := range s.RequiredFields {
		v.Field(name, fields[name]).Required()
	}
	if err := v.Validate(); err != nil {
		return errors.NewValidationError("All required fields must be filled", errors.ErrCodeMissingField).
			WithDetails(err.Details)
	}

	if _, perr := parseDate(dto.Birthdate); perr != nil {
		return errors.NewValidationFieldError("Birthdate", "Birthdate must be a YYYY-MM-DD date", errors.ErrCodeInvalidDate)
	}
	if _, perr := parseDate(dto.IssuedOn); perr != nil {
		return errors.NewValidationFieldError("issuedOn", "issuedOn must be a YYYY-MM-DD date", errors.ErrCodeInvalidDate)
	}

	return nil
}

// ToRecord maps a validated submission onto the unified record shape.
func (s Schema) ToRecord(dto *SubmissionDTO) *Record {
	birthdate, _ := parseDate(dto.Birthdate)
	issuedOn, _ := parseDate(dto.IssuedOn)

	return &Record{
		Type:            s.Type,
		LastName:        dto.LastName,
		FirstName:       dto.FirstName,
		MiddleName:      dto.MiddleName,
		Address:         dto.Address,
		Age:             dto.Age.Int(),
		Birthdate:       birthdate,
		ContactNumber:   dto.ContactNumber,
		Gender:          dto.Gender,
		Purpose:         dto.Purpose,
		BusinessName:    dto.BusinessName,
		BusinessAddress: dto.BusinessAddress,
		Owner:           dto.Owner,
		BusinessNature:  dto.BusinessNature,
		Classification:  dto.Classification,
		IssuedOn:        issuedOn,
	}
}
