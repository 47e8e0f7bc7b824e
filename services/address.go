package services

import (
	"regexp"
	"strings"

	"github.com/zvg-webapp/zvg-backend/models"
	"github.com/zvg-webapp/zvg-backend/shared"
)

// streetNumberRegex splits a street line into the leading non-digit street
// name and the trailing house number token(s), e.g. "Hauptstraße 12a-14".
var streetNumberRegex = regexp.MustCompile(`^([^\d]+?)\s*(\d.*)?$`)

// DecomposeAddress produces (street, houseNumbers, zip, city) from a portal
// entry. The structured address is authoritative when present; otherwise the
// free-text location field is split on commas: first segment as street,
// first token of the second segment as house number. Zip and city are never
// guessed from free text.
func DecomposeAddress(addr *models.Address, location string) (street, houseNumbers, zip, city string) {
	if addr != nil {
		street = shared.RepairEncoding(addr.Street)
		zip = shared.RepairEncoding(addr.Zip)
		city = shared.RepairEncoding(addr.City)

		if m := streetNumberRegex.FindStringSubmatch(street); m != nil {
			street = strings.TrimSpace(m[1])
			houseNumbers = strings.TrimSpace(m[2])
		}
		return street, houseNumbers, zip, city
	}

	parts := strings.Split(location, ",")
	if len(parts) > 0 {
		street = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		tokens := strings.Fields(parts[1])
		if len(tokens) > 0 {
			houseNumbers = tokens[0]
		}
	}
	return street, houseNumbers, "", ""
}
