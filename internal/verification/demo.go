package verification

import (
	"time"

	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/document"
)

// demoRecords is a fixed hash table consulted only in demo mode, after
// the real tables miss. Off by default.
var demoRecords = map[string]document.Record{
	"a1b2c3d4e5f60718293a4b5c6d7e8f90": {
		ID:        1,
		Type:      datamodel.TypeClearance,
		LastName:  "Dela Cruz",
		FirstName: "Juan",
		Address:   "123 Sampaloc St",
		Gender:    "Male",
		Purpose:   "Employment",
		IssuedOn:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		HashCode:  "a1b2c3d4e5f60718293a4b5c6d7e8f90",
	},
	"0f1e2d3c4b5a69788796a5b4c3d2e1f0": {
		ID:        1,
		Type:      datamodel.TypeIndigency,
		LastName:  "Santos",
		FirstName: "Maria",
		Address:   "45 Zone 43 District IV",
		Gender:    "Female",
		Purpose:   "Medical Assistance",
		IssuedOn:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		HashCode:  "0f1e2d3c4b5a69788796a5b4c3d2e1f0",
	},
}

func demoLookup(hash string, claimedType datamodel.Type) (*document.Record, bool) {
	rec, ok := demoRecords[hash]
	if !ok {
		return nil, false
	}
	if claimedType != "" && rec.Type != claimedType {
		return nil, false
	}
	return &rec, true
}
