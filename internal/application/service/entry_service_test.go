package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
	"github.com/carbonview/energy-review/internal/infrastructure/persistence/memory"
)

func newEntryService(t *testing.T) (EntryService, *memory.EntryStore) {
	t.Helper()
	store := memory.NewEntryStore()
	return NewEntryService(store, zap.NewNop()), store
}

func validInput() UpsertEntryInput {
	return UpsertEntryInput{
		OwnerID:    "user_001",
		PageKey:    "diesel",
		PeriodYear: 2024,
		Unit:       "公升",
		Monthly:    map[string]float64{"1": 1500.5, "2": 1800.2, "3": 2000.0, "4": 1750.8},
	}
}

func TestSumMonthly(t *testing.T) {
	tests := []struct {
		name     string
		monthly  map[string]float64
		expected float64
	}{
		{"quarterly figures", map[string]float64{"1": 1500.5, "2": 1800.2, "3": 2000.0, "4": 1750.8}, 7051.5},
		{"negative excluded not subtracted", map[string]float64{"1": -10, "2": 20}, 20},
		{"NaN treated as zero", map[string]float64{"1": math.NaN(), "2": 15.5}, 15.5},
		{"infinity treated as zero", map[string]float64{"1": math.Inf(1), "2": 3}, 3},
		{"empty map", map[string]float64{}, 0},
		{"all invalid", map[string]float64{"1": -5, "2": math.NaN()}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SumMonthly(tt.monthly))
		})
	}
}

func TestUpsertEnergyEntry_CreatesNewEntry(t *testing.T) {
	svc, store := newEntryService(t)

	result, err := svc.UpsertEnergyEntry(context.Background(), validInput(), false, entity.EntrySubmitted)

	require.NoError(t, err)
	require.NotEmpty(t, result.EntryID)

	entry, err := store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "diesel", PeriodYear: 2024,
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, entity.EntrySubmitted, entry.Status)
	assert.Equal(t, 7051.5, entry.Amount)
	assert.Equal(t, "柴油(移動源)", entry.Category)
	assert.Equal(t, "2024-01-01", entry.PeriodStart)
	assert.Equal(t, "2024-12-31", entry.PeriodEnd)
}

func TestUpsertEnergyEntry_StoresExtraPayload(t *testing.T) {
	svc, store := newEntryService(t)

	input := validInput()
	input.Payload = map[string]interface{}{
		"unitCapacity":    500,
		"carbonRate":      85,
		"monthlyQuantity": map[string]interface{}{"1": 3},
	}

	_, err := svc.UpsertEnergyEntry(context.Background(), input, false, entity.EntrySubmitted)
	require.NoError(t, err)

	entry, err := store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "diesel", PeriodYear: 2024,
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, input.Monthly, entry.Payload.Monthly)
	assert.Equal(t, 500, entry.Payload.Extra["unitCapacity"])
	assert.Equal(t, 85, entry.Payload.Extra["carbonRate"])
	assert.Contains(t, entry.Payload.Extra, "monthlyQuantity")
}

func TestUpsertEnergyEntry_UpdateKeepsID(t *testing.T) {
	svc, _ := newEntryService(t)

	first, err := svc.UpsertEnergyEntry(context.Background(), validInput(), false, entity.EntrySubmitted)
	require.NoError(t, err)

	second, err := svc.UpsertEnergyEntry(context.Background(), validInput(), false, entity.EntrySubmitted)
	require.NoError(t, err)

	assert.Equal(t, first.EntryID, second.EntryID)
}

func TestUpsertEnergyEntry_PreserveStatusKeepsExisting(t *testing.T) {
	svc, store := newEntryService(t)

	result, err := svc.UpsertEnergyEntry(context.Background(), validInput(), false, entity.EntrySubmitted)
	require.NoError(t, err)

	// reviewer approved the entry out of band
	entry, err := store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "diesel", PeriodYear: 2024,
	})
	require.NoError(t, err)
	entry.Status = entity.EntryApproved
	require.NoError(t, store.Put(context.Background(), entry))

	_, err = svc.UpsertEnergyEntry(context.Background(), validInput(), true, entity.EntrySubmitted)
	require.NoError(t, err)

	updated, err := store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "diesel", PeriodYear: 2024,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EntryApproved, updated.Status)
	assert.Equal(t, result.EntryID, updated.ID)
}

func TestUpsertEnergyEntry_InitialStatusUsedWithoutPreserve(t *testing.T) {
	svc, store := newEntryService(t)

	_, err := svc.UpsertEnergyEntry(context.Background(), validInput(), false, entity.EntrySaved)
	require.NoError(t, err)

	entry, err := store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "diesel", PeriodYear: 2024,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EntrySaved, entry.Status)
}

func TestUpsertEnergyEntry_NonPositiveTotalFailsBeforeWrite(t *testing.T) {
	svc, store := newEntryService(t)

	input := validInput()
	input.PageKey = "urea"
	input.Monthly = map[string]float64{"1": 0, "2": 0}

	_, err := svc.UpsertEnergyEntry(context.Background(), input, false, entity.EntrySubmitted)

	require.ErrorIs(t, err, review.ErrValidation)

	entry, lookupErr := store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "urea", PeriodYear: 2024,
	})
	require.NoError(t, lookupErr)
	assert.Nil(t, entry, "failed upsert must not create the record")
}

func TestUpsertEnergyEntry_FileOnlyPageAllowsZeroTotal(t *testing.T) {
	svc, _ := newEntryService(t)

	input := validInput()
	input.PageKey = "fire_extinguisher"
	input.Monthly = map[string]float64{}

	result, err := svc.UpsertEnergyEntry(context.Background(), input, false, entity.EntrySubmitted)

	require.NoError(t, err)
	assert.NotEmpty(t, result.EntryID)
}

func TestUpsertEnergyEntry_UnknownPageKey(t *testing.T) {
	svc, _ := newEntryService(t)

	input := validInput()
	input.PageKey = "plutonium"

	_, err := svc.UpsertEnergyEntry(context.Background(), input, false, entity.EntrySubmitted)

	require.ErrorIs(t, err, review.ErrCategoryNotFound)
}

func TestUpsertEnergyEntry_MissingParameters(t *testing.T) {
	svc, _ := newEntryService(t)

	input := validInput()
	input.OwnerID = ""

	_, err := svc.UpsertEnergyEntry(context.Background(), input, false, entity.EntrySubmitted)

	require.ErrorIs(t, err, review.ErrMissingParameters)
}

func TestUpsertEnergyEntry_RejectsReviewStatusAsInitial(t *testing.T) {
	svc, _ := newEntryService(t)

	_, err := svc.UpsertEnergyEntry(context.Background(), validInput(), false, entity.EntryApproved)

	require.ErrorIs(t, err, review.ErrValidation)
}

func TestUpsertEnergyEntry_SubmitRequiresCleanMonthly(t *testing.T) {
	svc, store := newEntryService(t)

	input := validInput()
	input.Monthly = map[string]float64{"1": -10, "2": 20}

	_, err := svc.UpsertEnergyEntry(context.Background(), input, false, entity.EntrySubmitted)
	require.ErrorIs(t, err, review.ErrValidation)

	entry, lookupErr := store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "diesel", PeriodYear: 2024,
	})
	require.NoError(t, lookupErr)
	assert.Nil(t, entry)

	// the same figures are tolerated as a draft, clamped in the total
	result, err := svc.UpsertEnergyEntry(context.Background(), input, false, entity.EntrySaved)
	require.NoError(t, err)
	require.NotEmpty(t, result.EntryID)

	entry, err = store.GetByKey(context.Background(), entity.EntryKey{
		OwnerID: "user_001", PageKey: "diesel", PeriodYear: 2024,
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 20.0, entry.Amount)
}

func TestValidateMonthly(t *testing.T) {
	errs := ValidateMonthly(map[string]float64{"0": 5, "13": 1, "abc": 2, "6": -3})
	assert.Len(t, errs, 4)

	assert.Empty(t, ValidateMonthly(map[string]float64{"1": 0, "12": 99.9}))
}
