package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
	"github.com/zvg-webapp/zvg-backend/models"
	"github.com/zvg-webapp/zvg-backend/shared"
)

// EntryProvider yields raw auction entries for a Land. The cache and the
// search service depend on this interface only; PortalClient is the
// production implementation against zvg-portal.de.
type EntryProvider interface {
	Lands() []models.Land
	List(ctx context.Context, land models.Land) ([]models.RawEntry, error)
}

// PortalClientConfiguration holds configuration parameters for the portal client
type PortalClientConfiguration struct {
	BaseURL            string        // Portal base URL
	UserAgent          string        // User agent sent with every request
	HTTPRequestTimeout time.Duration // Maximum time to wait for HTTP responses
	RequestRateLimit   time.Duration // Minimum delay between consecutive requests
}

// NewDefaultPortalClientConfiguration returns production-ready default configuration
func NewDefaultPortalClientConfiguration() *PortalClientConfiguration {
	return &PortalClientConfiguration{
		BaseURL:            "https://www.zvg-portal.de",
		UserAgent:          "ZvgPortalBackend/1.0",
		HTTPRequestTimeout: 30 * time.Second,
		RequestRateLimit:   1 * time.Second,
	}
}

// bundeslaender is the portal's fixed enumeration of federal states. The
// set is fixed in the portal's search form, so carrying it as data means
// registry construction never needs the network and cannot fail at boot.
var bundeslaender = []models.Land{
	{Name: "Baden-Wuerttemberg", DisplayName: "Baden-Württemberg", Short: "bw"},
	{Name: "Bayern", DisplayName: "Bayern", Short: "by"},
	{Name: "Berlin", DisplayName: "Berlin", Short: "be"},
	{Name: "Brandenburg", DisplayName: "Brandenburg", Short: "br"},
	{Name: "Bremen", DisplayName: "Bremen", Short: "hb"},
	{Name: "Hamburg", DisplayName: "Hamburg", Short: "hh"},
	{Name: "Hessen", DisplayName: "Hessen", Short: "he"},
	{Name: "Mecklenburg-Vorpommern", DisplayName: "Mecklenburg-Vorpommern", Short: "mv"},
	{Name: "Niedersachsen", DisplayName: "Niedersachsen", Short: "ni"},
	{Name: "Nordrhein-Westfalen", DisplayName: "Nordrhein-Westfalen", Short: "nw"},
	{Name: "Rheinland-Pfalz", DisplayName: "Rheinland-Pfalz", Short: "rp"},
	{Name: "Saarland", DisplayName: "Saarland", Short: "sl"},
	{Name: "Sachsen", DisplayName: "Sachsen", Short: "sn"},
	{Name: "Sachsen-Anhalt", DisplayName: "Sachsen-Anhalt", Short: "st"},
	{Name: "Schleswig-Holstein", DisplayName: "Schleswig-Holstein", Short: "sh"},
	{Name: "Thueringen", DisplayName: "Thüringen", Short: "th"},
}

// locationAddressRegex matches "Musterstraße 12, 70173 Stuttgart" style
// location lines so the structured address block can be filled when the
// portal embeds one in the Objekt/Lage text.
var locationAddressRegex = regexp.MustCompile(`^(.+?),\s*(\d{5})\s+(.+)$`)

// PortalClient scrapes auction entries from zvg-portal.de
type PortalClient struct {
	collector          *colly.Collector
	baseURL            string
	requestRateLimiter *shared.HTTPRequestRateLimiter
	configuration      *PortalClientConfiguration
}

// NewPortalClient creates a portal client with the specified configuration
func NewPortalClient(config *PortalClientConfiguration) *PortalClient {
	if config == nil {
		config = NewDefaultPortalClientConfiguration()
	} else {
		if config.BaseURL == "" {
			config.BaseURL = "https://www.zvg-portal.de"
		}
		if config.UserAgent == "" {
			config.UserAgent = "ZvgPortalBackend/1.0"
		}
		if config.HTTPRequestTimeout <= 0 {
			config.HTTPRequestTimeout = 30 * time.Second
		}
		if config.RequestRateLimit <= 0 {
			config.RequestRateLimit = 1 * time.Second
		}
	}

	c := colly.NewCollector(colly.AllowURLRevisit(), colly.UserAgent(config.UserAgent))
	c.SetRequestTimeout(config.HTTPRequestTimeout)
	if host := hostOf(config.BaseURL); host != "" {
		c.AllowedDomains = []string{host}
	}

	return &PortalClient{
		collector:          c,
		baseURL:            config.BaseURL,
		requestRateLimiter: shared.NewHTTPRequestRateLimiter(config.RequestRateLimit),
		configuration:      config,
	}
}

// Lands returns the portal's enumeration of federal states.
func (client *PortalClient) Lands() []models.Land {
	lands := make([]models.Land, len(bundeslaender))
	copy(lands, bundeslaender)
	return lands
}

// List fetches the current auction entries for one Land by submitting the
// portal's search form and parsing the result table. Entries are returned
// in page order. Individual malformed rows produce partially filled
// entries, never an error; only a failed fetch is an error.
func (client *PortalClient) List(ctx context.Context, land models.Land) ([]models.RawEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client.requestRateLimiter.EnforceRateLimit()

	// Result rows are label/value pairs; an "Aktenzeichen" row starts a
	// new entry. The clone keeps this call's handlers off the shared
	// collector so concurrent fetches for different Länder don't mix rows.
	// Clone copies configuration but no callbacks, so every handler this
	// request needs, headers included, is registered here.
	scraper := client.collector.Clone()

	scraper.OnRequest(func(r *colly.Request) {
		// Browser-like headers keep the portal's request filtering happy.
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.5")
		logrus.WithFields(logrus.Fields{
			"component": "PortalClient",
			"url":       r.URL.String(),
		}).Debug("Requesting portal page")
	})

	var entries []models.RawEntry
	var current *models.RawEntry

	flush := func() {
		if current != nil && current.ID != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	scraper.OnHTML("tr", func(row *colly.HTMLElement) {
		label, value, ok := labelValueCells(row.DOM.Find("td"))
		if !ok {
			return
		}

		switch {
		case strings.HasPrefix(label, "Aktenzeichen"):
			flush()
			current = &models.RawEntry{ID: value}
		case current == nil:
			// Rows before the first Aktenzeichen belong to page chrome.
		case strings.HasPrefix(label, "Termin"):
			current.AuctionDateText = &value
		case strings.HasPrefix(label, "Art der Versteigerung"):
			current.AuctionType = &value
		case strings.HasPrefix(label, "Objekt/Lage"), strings.HasPrefix(label, "Lage"):
			current.Location = &value
			if current.Address == nil {
				if m := locationAddressRegex.FindStringSubmatch(value); m != nil {
					current.Address = &models.Address{Street: m[1], Zip: m[2], City: m[3]}
				}
			}
		case strings.HasPrefix(label, "Beschreibung"):
			current.Description = &value
		}
	})

	var fetchErr error
	scraper.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	searchURL := fmt.Sprintf("%s/index.php?button=Suchen", client.baseURL)
	formData := map[string]string{
		"land_abk": land.Short,
		"ger_name": "-- Alle Amtsgerichte --",
		"ger_id":   "0",
		"order_by": "2",
	}

	if err := scraper.Post(searchURL, formData); err != nil {
		fetchErr = err
	}
	scraper.Wait()
	flush()

	if fetchErr != nil {
		return nil, shared.NewServiceError(
			shared.ErrorCategoryNetwork,
			"PORTAL_FETCH_FAILED",
			fmt.Sprintf("failed to fetch entries for %s", land.Name),
			"PortalClient",
			"List",
			true,
			fetchErr,
		)
	}

	logrus.WithFields(logrus.Fields{
		"component": "PortalClient",
		"land":      land.Name,
		"entries":   len(entries),
	}).Debug("Parsed portal result table")

	return entries, nil
}

// labelValueCells reads a result-table row as a label/value pair. Rows
// with fewer than two cells or an empty value carry no entry data.
func labelValueCells(cells *goquery.Selection) (label, value string, ok bool) {
	if cells.Length() < 2 {
		return "", "", false
	}
	label = strings.TrimSpace(cells.First().Text())
	value = shared.NormalizeWhitespace(cells.Eq(1).Text())
	if value == "" {
		return "", "", false
	}
	return label, value, true
}

// hostOf returns the hostname without the port, matching how the collector
// checks requests against AllowedDomains.
func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
