package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Menemen", "menemen"},
		{"turkish letters", "Zeytinyağlı Enginar", "zeytinyagli-enginar"},
		{"uppercase turkish", "ÇILBIR", "cilbir"},
		{"dotted capital i", "İzmir Köfte", "izmir-kofte"},
		{"punctuation collapses", "Anne'nin   Böreği!!", "anne-nin-boregi"},
		{"leading and trailing noise", "  --Tarif-- ", "tarif"},
		{"digits survive", "5 Dakikada Kek", "5-dakikada-kek"},
		{"empty", "", ""},
		{"only punctuation", "?!.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyOutputAlphabet(t *testing.T) {
	titles := []string{
		"Egeli Betty'nin Şahane Zeytinyağlıları",
		"Güllaç (Ramazan Tatlısı)",
		"Ödüllü ÇORBA ~ 2024 ~",
	}

	for _, title := range titles {
		slug := Slugify(title)
		for i, r := range slug {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, valid, "unexpected rune %q in slug %q", r, slug)
			if r == '-' {
				assert.NotZero(t, i, "slug %q starts with hyphen", slug)
				assert.NotEqual(t, len(slug)-1, i, "slug %q ends with hyphen", slug)
				assert.NotEqual(t, byte('-'), slug[i-1], "double hyphen in slug %q", slug)
			}
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{
		"Zeytinyağlı Yaprak Sarma",
		"Hamur İşi Denemeleri #3",
		"menemen",
		"",
	}

	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once), "Slugify not idempotent for %q", title)
	}
}
