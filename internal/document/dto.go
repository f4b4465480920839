package document

import (
	"encoding/json"
	"strconv"
	"time"
)

// SubmissionDTO is the superset of the three issuance request bodies.
// Field names match the legacy JSON payloads, issuedOn included.
type SubmissionDTO struct {
	LastName        string     `json:"LastName"`
	FirstName       string     `json:"FirstName"`
	MiddleName      string     `json:"MiddleName"`
	Address         string     `json:"Address"`
	Age             FlexString `json:"Age"`
	Birthdate       string     `json:"Birthdate"`
	ContactNumber   string     `json:"ContactNumber"`
	Gender          string     `json:"Gender"`
	Purpose         string     `json:"Purpose"`
	BusinessName    string     `json:"BusinessName"`
	BusinessAddress string     `json:"BusinessAddress"`
	Owner           string     `json:"Owner"`
	BusinessNature  string     `json:"BusinessNature"`
	Classification  string     `json:"Classification"`
	IssuedOn        string     `json:"issuedOn"`
}

// FlexString accepts both JSON strings and numbers; the legacy forms
// post Age either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

func (f FlexString) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return n
}

// Fields returns the submitted values keyed by wire name, empty values
// omitted. This is the input to hash derivation.
func (dto *SubmissionDTO) Fields() map[string]string {
	all := map[string]string{
		"LastName":        dto.LastName,
		"FirstName":       dto.FirstName,
		"MiddleName":      dto.MiddleName,
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
	fields := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// IssueResponseDTO mirrors the legacy success payload.
type IssueResponseDTO struct {
	Message  string `json:"message"`
	ID       int64  `json:"id"`
	HashCode string `json:"hashcode"`
}

type RecentIssuanceResponseDTO struct {
	Recent []RecentEntry `json:"recent"`
}
