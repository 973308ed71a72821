package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleTransitions(t *testing.T) {
	t.Run("pending item has no server identity", func(t *testing.T) {
		life := Pending()
		assert.True(t, life.IsNew())
		_, ok := life.ServerID()
		assert.False(t, ok)
	})

	t.Run("persisted item carries its server id", func(t *testing.T) {
		life := Persisted(42)
		assert.False(t, life.IsNew())
		id, ok := life.ServerID()
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})

	t.Run("pending item cannot be marked for deletion", func(t *testing.T) {
		_, ok := Pending().MarkDeleted()
		assert.False(t, ok)
	})

	t.Run("persisted item keeps its id through deletion marking", func(t *testing.T) {
		life, ok := Persisted(7).MarkDeleted()
		require.True(t, ok)
		assert.Equal(t, PhaseMarkedForDeletion, life.Phase())
		id, ok := life.ServerID()
		require.True(t, ok)
		assert.Equal(t, int64(7), id)
	})

	t.Run("marking twice is rejected", func(t *testing.T) {
		life, ok := Persisted(7).MarkDeleted()
		require.True(t, ok)
		_, ok = life.MarkDeleted()
		assert.False(t, ok)
	})

	t.Run("zero value behaves as pending", func(t *testing.T) {
		var life Lifecycle
		assert.Equal(t, PhasePending, life.Phase())
		assert.True(t, life.IsNew())
	})
}

func TestTripValidate(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid range", "2026-06-01", "2026-06-03", false},
		{"single day", "2026-06-01", "2026-06-01", false},
		{"end before start", "2026-06-03", "2026-06-01", true},
		{"empty start", "", "2026-06-03", true},
		{"malformed start", "June 1st", "2026-06-03", true},
		{"timestamp suffix accepted", "2026-06-01T00:00:00", "2026-06-03", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := Trip{Title: "x", StartDate: tt.start, EndDate: tt.end}
			err := trip.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTripDurationDays(t *testing.T) {
	trip := Trip{StartDate: "2024-03-01", EndDate: "2024-03-04"}
	assert.Equal(t, 4, trip.DurationDays())

	trip = Trip{StartDate: "bogus", EndDate: "2024-03-04"}
	assert.Equal(t, 0, trip.DurationDays())
}

func TestAssignmentCovers(t *testing.T) {
	a := CityAssignment{StartDate: "2024-03-02", EndDate: "2024-03-03"}

	assert.False(t, a.Covers("2024-03-01"))
	assert.True(t, a.Covers("2024-03-02"))
	assert.True(t, a.Covers("2024-03-03"))
	assert.False(t, a.Covers("2024-03-04"))
	assert.False(t, a.Covers("not-a-date"))

	incomplete := CityAssignment{StartDate: "", EndDate: "2024-03-03"}
	assert.False(t, incomplete.Covers("2024-03-02"))
}

func TestDistinctCountries(t *testing.T) {
	cities := []City{
		{ID: 1, CityName: "Tokyo", KoCountry: "일본"},
		{ID: 2, CityName: "Seoul", KoCountry: "대한민국"},
		{ID: 3, CityName: "Osaka", KoCountry: "일본"},
		{ID: 4, CityName: "Nowhere", KoCountry: ""},
	}

	countries := DistinctCountries(cities)
	assert.Equal(t, []string{"대한민국", "일본"}, countries)
}
