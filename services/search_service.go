package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zvg-webapp/zvg-backend/models"
	"github.com/zvg-webapp/zvg-backend/shared"
)

// skipReason says why one raw entry was excluded from a search result.
type skipReason string

const (
	skipNone          skipReason = ""
	skipNoDate        skipReason = "skipped_no_date"
	skipBeforeMinDate skipReason = "skipped_before_min_date"
	skipAuctionType   skipReason = "skipped_auction_type"
	skipPropertyType  skipReason = "skipped_property_type"
	skipFault         skipReason = "skipped_fault"
)

// SearchService composes registry, cache and the normalization helpers into
// the one search operation the API exposes.
type SearchService struct {
	registry *StateRegistry
	cache    *EntryCache
	metrics  *shared.ServiceMetrics

	// now is replaceable for tests.
	now func() time.Time
}

// NewSearchService creates the search orchestrator
func NewSearchService(registry *StateRegistry, cache *EntryCache) *SearchService {
	return &SearchService{
		registry: registry,
		cache:    cache,
		metrics:  shared.NewServiceMetrics("Search_Service"),
		now:      time.Now,
	}
}

// Search resolves the state, fetches (cached) raw entries and normalizes
// them into listings. Entries are processed independently: one malformed
// entry is dropped with a warning, never the whole batch. Result order
// follows portal order.
func (s *SearchService) Search(ctx context.Context, state string, auctionTypes, propertyTypes []string, minDays int) ([]models.Listing, error) {
	started := s.now()

	land, err := s.registry.Resolve(state)
	if err != nil {
		s.metrics.RecordRequest(false, s.now().Sub(started))
		return nil, err
	}

	if minDays < 0 {
		minDays = 0
	}
	minDate := s.now().AddDate(0, 0, minDays)
	minDate = time.Date(minDate.Year(), minDate.Month(), minDate.Day(), 0, 0, 0, 0, minDate.Location())

	entries, err := s.cache.Fetch(ctx, *land)
	if err != nil {
		s.metrics.RecordRequest(false, s.now().Sub(started))
		return nil, err
	}

	results := make([]models.Listing, 0, len(entries))
	skipped := make(map[skipReason]int)

	for i := range entries {
		listing, reason := s.normalizeEntry(&entries[i], state, auctionTypes, propertyTypes, minDate)
		if reason != skipNone {
			skipped[reason]++
			s.metrics.IncrementCounter(string(reason))
			if reason == skipFault {
				logrus.WithFields(logrus.Fields{
					"component": "SearchService",
					"entry_id":  entries[i].ID,
					"land":      land.Name,
				}).Warn("Skipping malformed entry")
			}
			continue
		}
		results = append(results, *listing)
	}

	fields := logrus.Fields{
		"component": "SearchService",
		"state":     state,
		"land":      land.Name,
		"entries":   len(entries),
		"results":   len(results),
		"duration":  s.now().Sub(started),
	}
	for reason, count := range skipped {
		fields[string(reason)] = count
	}
	logrus.WithFields(fields).Info("Search completed")

	s.metrics.RecordRequest(true, s.now().Sub(started))
	return results, nil
}

// Metrics exposes the accumulated search metrics.
func (s *SearchService) Metrics() *shared.ServiceMetrics {
	return s.metrics
}

// normalizeEntry turns one raw entry into a listing or a skip reason.
// Unexpected faults while processing are confined to this entry.
func (s *SearchService) normalizeEntry(entry *models.RawEntry, state string, auctionTypes, propertyTypes []string, minDate time.Time) (listing *models.Listing, reason skipReason) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"component": "SearchService",
				"entry_id":  entry.ID,
				"panic":     r,
			}).Warn("Recovered from fault while normalizing entry")
			listing, reason = nil, skipFault
		}
	}()

	auctionTime := entry.AuctionDate
	if auctionTime == nil && entry.AuctionDateText != nil {
		auctionTime = ParseGermanDateTime(shared.RepairEncoding(*entry.AuctionDateText))
	}
	if auctionTime == nil {
		return nil, skipNoDate
	}
	if auctionTime.Before(minDate) {
		return nil, skipBeforeMinDate
	}

	auctionType := strings.TrimSpace(shared.Deref(entry.AuctionType))
	if !MatchAuctionType(auctionType, auctionTypes) {
		return nil, skipAuctionType
	}

	location := shared.Deref(entry.Location)
	description := shared.Deref(entry.Description)
	combined := strings.ToLower(strings.TrimSpace(location + " " + description))
	propertyType, ok := MatchPropertyType(combined, propertyTypes)
	if !ok {
		return nil, skipPropertyType
	}

	street, houseNumbers, zip, city := DecomposeAddress(entry.Address, location)

	return &models.Listing{
		ID:           entry.ID,
		Date:         auctionTime.Format("2006-01-02"),
		Time:         auctionTime.Format("15:04"),
		Street:       street,
		HouseNumbers: houseNumbers,
		Zip:          zip,
		City:         city,
		State:        state,
		AuctionType:  auctionType,
		PropertyType: propertyType,
	}, skipNone
}
