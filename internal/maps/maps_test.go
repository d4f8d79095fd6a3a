package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFromDataBlob(t *testing.T) {
	url := "https://www.google.com/maps/place/Warung+Siti/@-7.9001,110.3300,17z/data=!3m1!4b1!4m6!3m5!1s0x0:0x0!8m2!3d-7.8881!4d110.3288"

	coords, err := Extract(url)

	assert.NoError(t, err)
	assert.InDelta(t, -7.8881, coords.Latitude, 1e-9)
	assert.InDelta(t, 110.3288, coords.Longitude, 1e-9)
}

func TestDataBlobWinsOverViewportCenter(t *testing.T) {
	// The @ pair is the viewport center; !3d/!4d is the place pin.
	url := "https://www.google.com/maps/place/X/@-7.0000,110.0000,17z/data=!3d-7.8881!4d110.3288"

	coords, err := Extract(url)

	assert.NoError(t, err)
	assert.InDelta(t, -7.8881, coords.Latitude, 1e-9)
}

func TestExtractFromAtPattern(t *testing.T) {
	coords, err := Extract("https://www.google.com/maps/@-7.8881,110.3288,15z")

	assert.NoError(t, err)
	assert.InDelta(t, -7.8881, coords.Latitude, 1e-9)
	assert.InDelta(t, 110.3288, coords.Longitude, 1e-9)
}

func TestExtractFromQueryParam(t *testing.T) {
	for _, url := range []string{
		"https://maps.google.com/?q=-7.8881,110.3288",
		"https://www.google.com/maps/search/?api=1&query=-7.8881,110.3288",
		"https://www.google.com/maps/dir/?api=1&destination=-7.8881,110.3288",
	} {
		coords, err := Extract(url)

		assert.NoError(t, err, url)
		assert.InDelta(t, -7.8881, coords.Latitude, 1e-9, url)
	}
}

func TestExtractRejectsOutOfRangeCoordinates(t *testing.T) {
	_, err := Extract("https://www.google.com/maps/@-95.0,200.0,15z")

	assert.Error(t, err)
}

func TestExtractRejectsLinkWithoutCoordinates(t *testing.T) {
	_, err := Extract("https://maps.app.goo.gl/AbCdEfGh123")

	assert.Error(t, err)
}

func TestExtractRejectsEmptyURL(t *testing.T) {
	_, err := Extract("")

	assert.Error(t, err)
}
