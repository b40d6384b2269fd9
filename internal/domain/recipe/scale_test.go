package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleIngredient(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		factor float64
		want   string
	}{
		{"integer amount", "200 gr un", 2, "400 gr un"},
		{"count only", "3 yumurta", 2, "6 yumurta"},
		{"no numbers untouched", "tuz", 2, "tuz"},
		{"halving", "200 gr un", 0.5, "100 gr un"},
		{"decimal point", "1.5 su bardağı süt", 2, "3 su bardağı süt"},
		{"decimal comma keeps comma", "1,5 su bardağı süt", 2, "3 su bardağı süt"},
		{"fraction result", "1 çay kaşığı tuz", 1.5, "1.5 çay kaşığı tuz"},
		{"comma fraction result", "0,5 demet dereotu", 0.5, "0,25 demet dereotu"},
		{"multiple numbers", "2 adet 250 gr paket", 3, "6 adet 750 gr paket"},
		{"zero factor ignored", "200 gr un", 0, "200 gr un"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleIngredient(tt.line, tt.factor))
		})
	}
}

func TestScaleIngredients(t *testing.T) {
	got := ScaleIngredients([]string{"200 gr un", "3 yumurta"}, 2)
	assert.Equal(t, []string{"400 gr un", "6 yumurta"}, got)
}

func TestScaleIngredientsPreservesOrderAndLength(t *testing.T) {
	in := []string{"1 kg domates", "tuz", "2 diş sarımsak"}
	got := ScaleIngredients(in, 4)
	assert.Len(t, got, len(in))
	assert.Equal(t, "4 kg domates", got[0])
	assert.Equal(t, "tuz", got[1])
	assert.Equal(t, "8 diş sarımsak", got[2])
}
