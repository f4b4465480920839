package pdf

import (
	"fmt"

	"github.com/barangay/docucheck/internal/document"
)

const barangayName = "Barangay 425 Zone 43 District IV"
const barangayLocation = "Barangay 425 Zone 43 District IV, Sampaloc, Manila"

const longDateLayout = "January 2, 2006"

// Honorific picks the salutation printed before the applicant's name.
func Honorific(gender string) string {
	switch gender {
	case "Male":
		return "MR."
	case "Female":
		return "MS."
	}
	return "MR./MS."
}

// CertificateText composes the narrative paragraph stamped into the
// certificate body, matching the issued paper layout.
func CertificateText(rec *document.Record) string {
	purpose := rec.Purpose
	if purpose == "" {
		purpose = rec.BusinessNature
	}

	return fmt.Sprintf(
		"This is to certify that %s, of legal age, a bonafide resident of %s with postal address at %s.\n\n"+
			"Further certify that the name mentioned above has no derogatory records in our community and known to me with good moral character.\n\n"+
			"This Certification is being issued upon the request of the above-named person for %s purposes.\n\n"+
			"Issued this %s at %s.",
		rec.FullName(),
		barangayName,
		rec.Address,
		purpose,
		rec.IssuedOn.Format(longDateLayout),
		barangayLocation,
	)
}
