package docket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinworld/models"
)

func newTestEditor() *ShipmentEditor {
	e := NewShipmentEditor(nil)
	// Deterministic ids for assertions.
	var tick int64
	e.now = func() time.Time {
		tick++
		return time.UnixMilli(tick)
	}
	return e
}

func TestEditorDefaultsToSmallPreset(t *testing.T) {
	e := newTestEditor()

	pending := e.Pending()
	assert.Equal(t, models.BoxSmall, pending.BoxType)
	assert.Equal(t, 10.0, pending.Length)
	assert.Equal(t, 10.0, pending.Width)
	assert.Equal(t, 10.0, pending.Height)
}

func TestEditorSelectBoxTypeOverwritesDimensions(t *testing.T) {
	e := newTestEditor()

	e.SelectBoxType(models.BoxMedium)
	pending := e.Pending()
	assert.Equal(t, 20.0, pending.Length)
	assert.Equal(t, 15.0, pending.Width)
	assert.Equal(t, 10.0, pending.Height)

	// Switching to Other zeroes everything for manual entry.
	e.SelectBoxType(models.BoxOther)
	pending = e.Pending()
	assert.Zero(t, pending.Length)
	assert.Zero(t, pending.Width)
	assert.Zero(t, pending.Height)
}

func TestEditorSetDimensionOnlyForOther(t *testing.T) {
	e := newTestEditor()

	// Preset types ignore manual dimensions.
	e.SelectBoxType(models.BoxLarge)
	e.SetDimension("length", 99)
	assert.Equal(t, 30.0, e.Pending().Length)

	e.SelectBoxType(models.BoxOther)
	e.SetDimension("length", 42)
	e.SetDimension("Width", 7.5)
	e.SetDimension("height", -1) // negative ignored
	pending := e.Pending()
	assert.Equal(t, 42.0, pending.Length)
	assert.Equal(t, 7.5, pending.Width)
	assert.Zero(t, pending.Height)
}

func TestEditorAddLineRequiresWeightAndQuantity(t *testing.T) {
	cases := []struct {
		name     string
		weight   string
		quantity string
		added    bool
	}{
		{"both present", "12.5", "2", true},
		{"missing weight", "", "2", false},
		{"missing quantity", "12.5", "", false},
		{"zero weight", "0", "2", false},
		{"zero quantity", "12.5", "0", false},
		{"whitespace weight", "   ", "2", false},
		{"non-numeric weight counts as present", "heavy", "2", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor()
			e.SetWeight(tc.weight)
			e.SetQuantity(tc.quantity)
			e.AddLine()

			if tc.added {
				require.Len(t, e.Lines(), 1)
			} else {
				assert.Empty(t, e.Lines())
			}
		})
	}
}

func TestEditorAddLineResetsPendingToSmall(t *testing.T) {
	e := newTestEditor()

	e.SelectBoxType(models.BoxOther)
	e.SetDimension("length", 42)
	e.SetWeight("5")
	e.SetQuantity("3")
	e.AddLine()

	require.Len(t, e.Lines(), 1)
	line := e.Lines()[0]
	assert.Equal(t, models.BoxOther, line.BoxType)
	assert.Equal(t, 42.0, line.Length)
	assert.Equal(t, "5", line.ActualWeight)
	assert.NotZero(t, line.ID)

	pending := e.Pending()
	assert.Equal(t, models.BoxSmall, pending.BoxType)
	assert.Empty(t, pending.ActualWeight)
	assert.Empty(t, pending.NoOfBox)
}

func TestEditorRemoveLine(t *testing.T) {
	e := newTestEditor()
	for i := 0; i < 3; i++ {
		e.SetWeight("1")
		e.SetQuantity("1")
		e.AddLine()
	}
	require.Len(t, e.Lines(), 3)

	victim := e.Lines()[1].ID
	e.RemoveLine(victim)

	require.Len(t, e.Lines(), 2)
	for _, l := range e.Lines() {
		assert.NotEqual(t, victim, l.ID)
	}

	// Removing an unknown id is a no-op.
	e.RemoveLine(-1)
	assert.Len(t, e.Lines(), 2)
}
