package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyNormalizes(t *testing.T) {
	assert.Equal(t, "warung-bu-siti", slugify("Warung Bu Siti"))
	assert.Equal(t, "promo-50-off", slugify("Promo 50% OFF!!"))
	assert.Equal(t, "", slugify("!!!"))
}

func TestMakeSlugAddsSuffix(t *testing.T) {
	slug := makeSlug("Warung Bu Siti")

	assert.True(t, strings.HasPrefix(slug, "warung-bu-siti-"))
	assert.Len(t, slug, len("warung-bu-siti-")+8)
}

func TestMakeSlugNeverEmpty(t *testing.T) {
	slug := makeSlug("!!!")

	assert.True(t, strings.HasPrefix(slug, "untitled-"))
}

func TestMakeSlugIsUniquePerCall(t *testing.T) {
	assert.NotEqual(t, makeSlug("Sama"), makeSlug("Sama"))
}
