package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The AI gateway runs in mock mode when no API key is configured, which is
// the case for tests. These exercise the mock contract the search workflow
// depends on.

func TestValidateMedicineName(t *testing.T) {
	ctx := context.Background()

	v, err := ValidateMedicineName(ctx, "Paracetamol")
	assert.Nil(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "Paracetamol", v.CorrectedName)

	v, err = ValidateMedicineName(ctx, "paracetmol")
	assert.Nil(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "Paracetamol", v.CorrectedName)
	assert.Equal(t, "Corrected spelling.", v.Reason)

	v, err = ValidateMedicineName(ctx, "zz")
	assert.Nil(t, err)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Reason, "too short")

	v, err = ValidateMedicineName(ctx, "xyzzyqq")
	assert.Nil(t, err)
	assert.False(t, v.Valid)
}

func TestGetMedicineRecommendations(t *testing.T) {
	ctx := context.Background()

	out, err := GetMedicineRecommendations(ctx, "fever")
	assert.Nil(t, err)
	assert.Equal(t, []string{"Paracetamol", "Ibuprofen", "Dolo 650"}, SplitRecommendations(out))

	out, err = GetMedicineRecommendations(ctx, "Headache")
	assert.Nil(t, err)
	assert.Len(t, SplitRecommendations(out), 3)

	out, err = GetMedicineRecommendations(ctx, "rare condition")
	assert.Nil(t, err)
	assert.Empty(t, SplitRecommendations(out))
}

func TestSplitRecommendations(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, SplitRecommendations(" A , , B ,"))
	assert.Empty(t, SplitRecommendations(""))
}

func TestAnalyzePrescription(t *testing.T) {
	out, err := AnalyzePrescription(context.Background(), "aW1hZ2U=")
	assert.Nil(t, err)
	assert.Equal(t, "Metformin 500mg", out)
}

func TestParsePriceSlip(t *testing.T) {
	items, err := ParsePriceSlip(context.Background(), "aW1hZ2U=")
	assert.Nil(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "Dolo 650", items[0].MedicineName)
	assert.Equal(t, 31.00, items[0].Price)
}

func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n{\"valid\": true}\n```"
	assert.Equal(t, `{"valid": true}`, stripCodeFence(fenced))
	assert.Equal(t, `{"valid": true}`, stripCodeFence(`{"valid": true}`))
}
