package model

// RemovalReason explains why a record was dropped.
type RemovalReason string

const (
	ReasonNGIndustry     RemovalReason = "ng-industry"
	ReasonNGCompany      RemovalReason = "ng-company"
	ReasonNGPhone        RemovalReason = "ng-phone"
	ReasonPhoneDuplicate RemovalReason = "phone-duplicate"
	ReasonEmptyRecord    RemovalReason = "empty-record"
)

// Removal is one audit-log entry. MatchKey is the record-side key that
// matched and MatchedAgainst is what it matched: an NG key, a blocklist
// keyword, or the company of the record kept for a duplicate phone.
type Removal struct {
	Reason         RemovalReason `json:"reason"`
	SourceCompany  string        `json:"source_company"`
	SourcePhone    string        `json:"source_phone"`
	MatchKey       string        `json:"match_key"`
	MatchedAgainst string        `json:"ng_hit"`
}

// NewRemoval builds a log entry for record r.
func NewRemoval(reason RemovalReason, r Record, matchKey, against string) Removal {
	return Removal{
		Reason:         reason,
		SourceCompany:  r.Company,
		SourcePhone:    r.Phone,
		MatchKey:       matchKey,
		MatchedAgainst: against,
	}
}
