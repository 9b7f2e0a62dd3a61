// Package geocode resolves free-form addresses to coordinates via the
// MapQuest geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Location is a geocoding result.
type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// Geocoder maps an address or zipcode to a Location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

var ErrNoResult = errors.New("geocode: no result")

const defaultBaseURL = "https://www.mapquestapi.com/geocoding/v1/address"

// MapQuest calls the MapQuest geocoding endpoint.
type MapQuest struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewMapQuest(apiKey string) *MapQuest {
	return &MapQuest{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"` // city
			AdminArea3 string `json:"adminArea3"` // state
			AdminArea1 string `json:"adminArea1"` // country
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

func (m *MapQuest) Geocode(ctx context.Context, address string) (Location, error) {
	u := m.BaseURL + "?key=" + url.QueryEscape(m.APIKey) + "&location=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Location{}, err
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}
	var parsed mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Location{}, err
	}
	if len(parsed.Results) == 0 || len(parsed.Results[0].Locations) == 0 {
		return Location{}, ErrNoResult
	}
	loc := parsed.Results[0].Locations[0]
	formatted := loc.Street
	if loc.AdminArea5 != "" {
		formatted += ", " + loc.AdminArea5
	}
	if loc.AdminArea3 != "" {
		formatted += ", " + loc.AdminArea3
	}
	return Location{
		Latitude:         loc.LatLng.Lat,
		Longitude:        loc.LatLng.Lng,
		FormattedAddress: formatted,
		Street:           loc.Street,
		City:             loc.AdminArea5,
		State:            loc.AdminArea3,
		Zipcode:          loc.PostalCode,
		Country:          loc.AdminArea1,
	}, nil
}
