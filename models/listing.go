package models

// Listing is the normalized search result returned by /api/search.
// Date is formatted as YYYY-MM-DD and Time as HH:MM. State carries the
// caller-supplied state string, not the canonical portal form.
type Listing struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Street       string `json:"street"`
	HouseNumbers string `json:"houseNumbers"`
	Zip          string `json:"zip"`
	City         string `json:"city"`
	State        string `json:"state"`
	AuctionType  string `json:"auctionType"`
	PropertyType string `json:"propertyType"`
}
