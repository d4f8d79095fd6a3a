// Package maps extracts coordinates from shared Google Maps links so a
// business pin can be placed without asking owners for raw latitude and
// longitude.
package maps

import (
	"fmt"
	"regexp"
	"strconv"
)

// Coordinates is a WGS84 point
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var (
	// https://www.google.com/maps/place/.../@-7.8881,110.3288,17z/...
	atPattern = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	// ...?q=-7.8881,110.3288 or ...&query=-7.8881,110.3288
	queryPattern = regexp.MustCompile(`[?&](?:q|query|ll|destination)=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	// .../maps/place/-7.8881,110.3288 and !3d-7.8881!4d110.3288 data blobs
	dataPattern = regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)!4d(-?\d+(?:\.\d+)?)`)
)

// Extract parses a Google Maps URL and returns the embedded coordinates.
// The !3d/!4d data blob is preferred because it pins the place itself, not
// the viewport center.
func Extract(url string) (*Coordinates, error) {
	if url == "" {
		return nil, fmt.Errorf("empty maps URL")
	}

	for _, pattern := range []*regexp.Regexp{dataPattern, atPattern, queryPattern} {
		if m := pattern.FindStringSubmatch(url); m != nil {
			lat, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			lng, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			if !valid(lat, lng) {
				continue
			}
			return &Coordinates{Latitude: lat, Longitude: lng}, nil
		}
	}

	return nil, fmt.Errorf("no coordinates found in maps URL")
}

func valid(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
