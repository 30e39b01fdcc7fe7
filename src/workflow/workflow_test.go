package workflow

import (
	"errors"
	"medifinder/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBegin(t *testing.T) {
	s := Begin("  Paracetamol  ")
	assert.Equal(t, StateValidating, s.State)
	assert.Equal(t, "Paracetamol", s.Original)

	s = Begin("   ")
	assert.Equal(t, StateIdle, s.State)
}

func TestResolveLocal(t *testing.T) {
	s := ResolveLocal(Begin("Paracetamol"), true)
	assert.Equal(t, StateLocating, s.State)
	assert.Equal(t, "Paracetamol", s.Medicine)

	s = ResolveLocal(Begin("Paracetamol"), false)
	assert.Equal(t, StateValidating, s.State)
	assert.Empty(t, s.Medicine)
}

func TestApplyValidation(t *testing.T) {
	t.Run("valid unchanged name commits", func(t *testing.T) {
		s := ApplyValidation(Begin("Paracetamol"), &types.MedicineValidation{Valid: true, CorrectedName: "Paracetamol"}, nil)
		assert.Equal(t, StateLocating, s.State)
		assert.Equal(t, "Paracetamol", s.Medicine)
	})

	t.Run("case-only correction commits without confirming", func(t *testing.T) {
		s := ApplyValidation(Begin("paracetamol"), &types.MedicineValidation{Valid: true, CorrectedName: "Paracetamol"}, nil)
		assert.Equal(t, StateLocating, s.State)
		assert.Equal(t, "Paracetamol", s.Medicine)
	})

	t.Run("corrected spelling asks for confirmation", func(t *testing.T) {
		s := ApplyValidation(Begin("Paracetmol"), &types.MedicineValidation{Valid: true, CorrectedName: "Paracetamol"}, nil)
		assert.Equal(t, StateConfirming, s.State)
		assert.Equal(t, "Paracetamol", s.Suggestion)
		assert.Empty(t, s.Medicine)
	})

	t.Run("invalid name ends the search", func(t *testing.T) {
		s := ApplyValidation(Begin("qqq"), &types.MedicineValidation{Valid: false, Reason: "not a medicine"}, nil)
		assert.Equal(t, StateError, s.State)
		assert.Equal(t, "not a medicine", s.StatusText)
	})

	t.Run("validator outage offers force-through", func(t *testing.T) {
		s := ApplyValidation(Begin("Paracetamol"), nil, errors.New("timeout"))
		assert.Equal(t, StateConfirming, s.State)
		assert.Empty(t, s.Suggestion)
	})
}

func TestApplyRecommendations(t *testing.T) {
	base := Begin("fever")

	s := ApplyRecommendations(base, "fever", nil)
	assert.Equal(t, StateNoResults, s.State)

	s = ApplyRecommendations(base, "fever", []string{"Paracetamol"})
	assert.Equal(t, StateLocating, s.State)
	assert.Equal(t, "Paracetamol", s.Medicine)

	s = ApplyRecommendations(base, "fever", []string{"Paracetamol", "Ibuprofen", "Dolo 650"})
	assert.Equal(t, StateConfirming, s.State)
	assert.Len(t, s.Choices, 3)
}

func TestChoose(t *testing.T) {
	s := ApplyValidation(Begin("Paracetmol"), &types.MedicineValidation{Valid: true, CorrectedName: "Paracetamol"}, nil)
	assert.Equal(t, StateConfirming, s.State)

	picked := Choose(s, "Paracetamol")
	assert.Equal(t, StateLocating, picked.State)
	assert.Equal(t, "Paracetamol", picked.Medicine)
	assert.Empty(t, picked.Suggestion)

	forced := Choose(s, "")
	assert.Equal(t, StateLocating, forced.State)
	assert.Equal(t, "Paracetmol", forced.Medicine)

	idle := Choose(Begin("Paracetamol"), "anything")
	assert.Equal(t, StateValidating, idle.State)
}

func TestApplyLocation(t *testing.T) {
	s := ResolveLocal(Begin("Paracetamol"), true)

	located := ApplyLocation(s, &types.GeoPoint{Lat: 12.9716, Lon: 77.5946}, false)
	assert.Equal(t, StateSearching, located.State)
	assert.NotNil(t, located.Location)

	denied := ApplyLocation(s, nil, true)
	assert.Equal(t, StateError, denied.State)
	assert.Contains(t, denied.StatusText, "Location access denied")
}

func TestApplyResults(t *testing.T) {
	s := ApplyLocation(ResolveLocal(Begin("Paracetamol"), true), &types.GeoPoint{Lat: 1, Lon: 1}, false)

	errored := ApplyResults(s, nil, errors.New("db down"))
	assert.Equal(t, StateError, errored.State)

	empty := ApplyResults(s, nil, nil)
	assert.Equal(t, StateNoResults, empty.State)

	done := ApplyResults(s, []types.PharmacyResult{{Medicine: "Paracetamol"}}, nil)
	assert.Equal(t, StateResults, done.State)
	assert.Len(t, done.Results, 1)
	assert.True(t, done.Terminal())
}

func TestTransitionsIgnoreWrongState(t *testing.T) {
	s := Begin("Paracetamol")
	assert.Equal(t, s, ApplyLocation(s, &types.GeoPoint{Lat: 1, Lon: 1}, false))
	assert.Equal(t, s, ApplyResults(s, nil, nil))
	assert.False(t, s.Terminal())
}
