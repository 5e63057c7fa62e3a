package docket

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"vinworld/models"
)

// ShipmentEditor manages the ordered shipment line list of one draft plus
// the pending mini-form used to add a line. Add failures are silent
// rejections, never errors. It carries its own lock so two requests from
// the same session can hit it while the form holds its lock for a
// snapshot or validation.
type ShipmentEditor struct {
	mu      sync.Mutex
	presets map[models.BoxType]models.BoxPreset
	pending models.ShipmentLine
	lines   []models.ShipmentLine
	now     func() time.Time
}

func NewShipmentEditor(presets map[models.BoxType]models.BoxPreset) *ShipmentEditor {
	if presets == nil {
		presets = models.DefaultPresets
	}
	e := &ShipmentEditor{presets: presets, now: time.Now}
	e.resetPendingLocked()
	return e
}

// SelectBoxType overwrites the pending dimensions with the preset for the
// chosen type regardless of prior values. "Other" zeroes them out and
// unlocks manual entry.
func (e *ShipmentEditor) SelectBoxType(t models.BoxType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectBoxTypeLocked(t)
}

func (e *ShipmentEditor) selectBoxTypeLocked(t models.BoxType) {
	e.pending.BoxType = t
	if preset, ok := e.presets[t]; ok {
		e.pending.Length = preset.Length
		e.pending.Width = preset.Width
		e.pending.Height = preset.Height
		return
	}
	e.pending.Length = 0
	e.pending.Width = 0
	e.pending.Height = 0
}

// SetDimension stores a manual dimension. Only meaningful while the box
// type is "Other"; preset dimensions are fixed.
func (e *ShipmentEditor) SetDimension(field string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending.BoxType != models.BoxOther || value < 0 {
		return
	}
	switch strings.ToLower(field) {
	case "length":
		e.pending.Length = value
	case "width":
		e.pending.Width = value
	case "height":
		e.pending.Height = value
	}
}

func (e *ShipmentEditor) SetWeight(weight string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending.ActualWeight = weight
}

func (e *ShipmentEditor) SetQuantity(quantity string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending.NoOfBox = quantity
}

// AddLine appends the pending line only when weight and quantity are both
// present and non-zero, then resets the mini-form to the Small preset.
// Anything else leaves the list unchanged.
func (e *ShipmentEditor) AddLine() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !truthy(e.pending.ActualWeight) || !truthy(e.pending.NoOfBox) {
		return
	}
	line := e.pending
	line.ID = e.now().UnixMilli()
	e.lines = append(e.lines, line)
	e.resetPendingLocked()
}

// RemoveLine filters out the line with the matching ephemeral id.
func (e *ShipmentEditor) RemoveLine(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.lines[:0]
	for _, l := range e.lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	e.lines = kept
}

// Lines returns a copy of the current line list.
func (e *ShipmentEditor) Lines() []models.ShipmentLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.ShipmentLine(nil), e.lines...)
}

// Len avoids a copy when only the count matters.
func (e *ShipmentEditor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

func (e *ShipmentEditor) Pending() models.ShipmentLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

func (e *ShipmentEditor) SetLines(l []models.ShipmentLine) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = l
}

// Reset drops all lines and restores the pending mini-form defaults.
func (e *ShipmentEditor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
	e.resetPendingLocked()
}

func (e *ShipmentEditor) resetPendingLocked() {
	e.pending = models.ShipmentLine{}
	e.selectBoxTypeLocked(models.BoxSmall)
}

// truthy mirrors the form's gate: empty and zero values do not count.
func truthy(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && v == 0 {
		return false
	}
	return true
}
