package search

// Kind tags the entity space a candidate came from. Every decision point
// (tier assignment, deduplication, field exposure) switches on this tag.
type Kind string

const (
	KindRegistered Kind = "registered"
	KindPersonal   Kind = "personal"
)

// Candidate is a transient result wrapper produced by the record provider.
// It is never written back into persisted records; the match score lives here
// and only here.
type Candidate struct {
	Kind        Kind
	ID          string
	DisplayName string
	PhoneNumber string
	// OwnerID identifies the owning account for personal contacts; empty for
	// registered identities.
	OwnerID string
	Score   int
}

// Result is one entry of a search response.
type Result struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PhoneNumber    string `json:"phone_number"`
	IsRegistered   bool   `json:"is_registered"`
	SpamLikelihood int    `json:"spam_likelihood"`
	MatchScore     int    `json:"match_score"`
}

// Page is an ordered slice of results plus the size of the full deduplicated
// result set, so callers can compute total pages.
type Page struct {
	Results    []Result `json:"results"`
	TotalCount int      `json:"total_count"`
}

// Details is the enriched view of a single record. Email is only revealed for
// registered identities the requesting account has in its contacts.
type Details struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	PhoneNumber    string  `json:"phone_number"`
	Email          *string `json:"email,omitempty"`
	IsRegistered   bool    `json:"is_registered"`
	SpamLikelihood int     `json:"spam_likelihood"`
}
