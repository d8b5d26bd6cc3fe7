// Package model defines the records that flow through the reformatting pipeline.
package model

import (
	"github.com/sells-group/gchange/internal/phone"
	"github.com/sells-group/gchange/internal/resolve"
)

// Record is one business entry. Display fields keep their source rendering;
// the phone in particular is never reformatted. CompanyKey and PhoneDigits
// are derived comparison keys.
type Record struct {
	Company  string `json:"company"`
	Industry string `json:"industry"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`

	CompanyKey  string `json:"-"`
	PhoneDigits string `json:"-"`
	Highlight   bool   `json:"highlight,omitempty"`
}

// NewRecord builds a record from display values and derives its keys.
func NewRecord(company, industry, address, phoneText string) Record {
	r := Record{
		Company:  company,
		Industry: industry,
		Address:  address,
		Phone:    phoneText,
	}
	r.RefreshKeys()
	return r
}

// RefreshKeys recomputes CompanyKey and PhoneDigits from the display fields.
func (r *Record) RefreshKeys() {
	r.CompanyKey = resolve.CanonicalKey(r.Company)
	r.PhoneDigits = phone.Digits(r.Phone)
}

// Edit replaces the display fields verbatim, as an end user would in the
// review table, and recomputes the derived keys.
func (r Record) Edit(company, industry, address, phoneText string) Record {
	return NewRecord(company, industry, address, phoneText)
}

// IsEmpty reports whether all four display fields are empty.
func (r Record) IsEmpty() bool {
	return r.Company == "" && r.Industry == "" && r.Address == "" && r.Phone == ""
}

// Exclusion is one row of an NG (do-not-contact) list.
type Exclusion struct {
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	CompanyKey  string `json:"-"`
	PhoneDigits string `json:"-"`
}

// NewExclusion builds an exclusion entry from raw list text. An empty phone
// yields an empty digits key.
func NewExclusion(company, phoneText string) Exclusion {
	return Exclusion{
		Company:     company,
		Phone:       phoneText,
		CompanyKey:  resolve.CanonicalKey(company),
		PhoneDigits: phone.Digits(phoneText),
	}
}
