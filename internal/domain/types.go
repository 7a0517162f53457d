package domain

// Vendor is a normalized summary of one external search result representing a
// service provider. Every field is text; fields absent from the provider
// response carry the "N/A" sentinel. Records are produced fresh per search
// call and have no identity beyond the single response.
type Vendor struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	Rating  string `json:"rating"`
	Reviews string `json:"reviews"`
	Snippet string `json:"snippet"`
}

// NotAvailable is the sentinel for vendor fields the provider did not return.
const NotAvailable = "N/A"
