package services

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zvg-webapp/zvg-backend/models"
	"github.com/zvg-webapp/zvg-backend/shared"
)

var digraphToUmlaut = strings.NewReplacer(
	"ae", "ä", "oe", "ö", "ue", "ü",
	"Ae", "Ä", "Oe", "Ö", "Ue", "Ü",
)

var umlautToDigraph = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
)

// StateRegistry resolves the many spellings of a Bundesland name to one
// Land value. It is built once at startup from the portal's enumeration and
// is read-only afterwards, so lookups need no synchronization.
//
// For each Land the registered keys are: the portal's canonical name, the
// digraph-to-umlaut variant ("Baden-Wuerttemberg" -> "Baden-Württemberg"),
// the umlaut-to-digraph variant, the display name, and the two-letter short
// code in uppercase. A normalized (lowercased, umlauts as digraphs) form of
// every key is kept alongside for the second resolution pass.
type StateRegistry struct {
	exact      map[string]*models.Land
	normalized map[string]*models.Land
}

// NewStateRegistry builds the lookup table for the given Länder.
func NewStateRegistry(lands []models.Land) *StateRegistry {
	r := &StateRegistry{
		exact:      make(map[string]*models.Land),
		normalized: make(map[string]*models.Land),
	}

	for i := range lands {
		land := &lands[i]

		keys := []string{
			land.Name,
			digraphToUmlaut.Replace(land.Name),
			umlautToDigraph.Replace(land.Name),
			land.DisplayName,
			strings.ToUpper(land.Short),
		}
		for _, key := range keys {
			if key == "" {
				continue
			}
			if _, taken := r.exact[key]; !taken {
				r.exact[key] = land
			}
			norm := normalizeStateKey(key)
			if _, taken := r.normalized[norm]; !taken {
				r.normalized[norm] = land
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"component": "StateRegistry",
		"lands":     len(lands),
		"keys":      len(r.exact),
	}).Debug("Built state registry")

	return r
}

// Resolve maps a caller-supplied state string to its Land. The first pass
// is an exact lookup; the second normalizes the input the same way the
// registry keys were normalized. Failure is a client-facing validation
// error, never an internal fault.
func (r *StateRegistry) Resolve(state string) (*models.Land, error) {
	if land, ok := r.exact[state]; ok {
		return land, nil
	}
	if land, ok := r.normalized[normalizeStateKey(strings.TrimSpace(state))]; ok {
		return land, nil
	}
	return nil, &shared.UnknownStateError{State: state}
}

// Lands returns every registered Land once, in no particular order.
func (r *StateRegistry) Lands() []models.Land {
	seen := make(map[string]bool)
	var lands []models.Land
	for _, land := range r.exact {
		if !seen[land.Name] {
			seen[land.Name] = true
			lands = append(lands, *land)
		}
	}
	return lands
}

func normalizeStateKey(key string) string {
	return umlautToDigraph.Replace(strings.ToLower(key))
}
