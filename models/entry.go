package models

import "time"

// Address is the structured address block attached to some portal entries.
// Every field may be empty; the portal is not consistent about filling them.
type Address struct {
	Street string `json:"street"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

// RawEntry is one auction record exactly as produced by the portal, before
// any normalization. Optional fields are pointers: nil means the portal did
// not provide the field at all, which is distinct from an empty string.
type RawEntry struct {
	// ID is the portal's case identifier (Aktenzeichen).
	ID string `json:"id"`

	// AuctionDate is the structured auction timestamp, when the portal
	// managed to parse one itself.
	AuctionDate *time.Time `json:"auction_date,omitempty"`

	// AuctionDateText is the free-text German timestamp, e.g.
	// "Montag, 07. August 2025, 10:00 Uhr". Present on most entries even
	// when AuctionDate is not.
	AuctionDateText *string `json:"auction_date_text,omitempty"`

	// AuctionType is the raw "Art der Versteigerung" string.
	AuctionType *string `json:"auction_type,omitempty"`

	// Location is the free-text "Objekt/Lage" field.
	Location *string `json:"location,omitempty"`

	// Description is the free-text object description.
	Description *string `json:"description,omitempty"`

	// Address is the structured address block, when present.
	Address *Address `json:"address,omitempty"`
}
