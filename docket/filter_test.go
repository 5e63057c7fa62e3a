package docket

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinworld/models"
)

// Wednesday 2026-09-16; the week bucket starts Sunday 2026-09-13 and the
// month bucket on 2026-09-01.
var filterNow = time.Date(2026, 9, 16, 11, 30, 0, 0, time.Local)

func newTestPipeline(dockets []models.Docket) *Pipeline {
	p := NewPipeline(dockets)
	p.now = func() time.Time { return filterNow }
	return p
}

func sampleDockets() []models.Docket {
	return []models.Docket{
		{DocketNo: "VW-001", ConsignorName: "Acme Traders", ConsigneeName: "Beta Retail", Status: "Active", ShipDate: "2026-09-16 09:00:00"},
		{DocketNo: "VW-002", ConsignorName: "Gamma Goods", ConsigneeName: "Delta Mart", Status: "pending", ShipDate: "2026-09-14 18:00:00"},
		{DocketNo: "VW-003", ConsignorName: "Acme Traders", ConsigneeName: "Epsilon Stores", Status: "COMPLETED", ShipDate: "2026-09-02"},
		{DocketNo: "VW-004", ConsignorName: "Zeta Supply", ConsigneeName: "Beta Retail", Status: "cancelled", ShipDate: "2026-08-20"},
	}
}

func TestPipelineStatusFilterIsCaseInsensitive(t *testing.T) {
	p := newTestPipeline(sampleDockets())

	p.SetStatus("active")
	filtered := p.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "VW-001", filtered[0].DocketNo)

	p.SetStatus("Completed")
	filtered = p.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "VW-003", filtered[0].DocketNo)

	p.SetStatus("all")
	assert.Len(t, p.Filtered(), 4)
}

func TestPipelineDateBuckets(t *testing.T) {
	p := newTestPipeline(sampleDockets())

	p.SetDateRange(RangeToday)
	filtered := p.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "VW-001", filtered[0].DocketNo)

	// Week starts on Sunday, so the Monday shipment is in.
	p.SetDateRange(RangeWeek)
	assert.Len(t, p.Filtered(), 2)

	p.SetDateRange(RangeMonth)
	assert.Len(t, p.Filtered(), 3)

	p.SetDateRange(RangeAll)
	assert.Len(t, p.Filtered(), 4)
}

func TestPipelineUnparsableShipDateExcludedFromDateBuckets(t *testing.T) {
	p := newTestPipeline([]models.Docket{
		{DocketNo: "VW-010", ShipDate: "not a date"},
	})

	p.SetDateRange(RangeMonth)
	assert.Empty(t, p.Filtered())

	p.SetDateRange(RangeAll)
	assert.Len(t, p.Filtered(), 1)
}

func TestPipelineSearchMatchesThreeFields(t *testing.T) {
	p := newTestPipeline(sampleDockets())

	p.SetSearch("acme")
	assert.Len(t, p.Filtered(), 2)

	p.SetSearch("beta retail")
	assert.Len(t, p.Filtered(), 2)

	p.SetSearch("VW-002")
	require.Len(t, p.Filtered(), 1)

	// Origin is not searched.
	p.SetSearch("Pune")
	assert.Empty(t, p.Filtered())

	p.SetSearch("  ")
	assert.Len(t, p.Filtered(), 4)
}

func TestPipelineFiltersCompose(t *testing.T) {
	p := newTestPipeline(sampleDockets())

	p.SetStatus("active")
	p.SetDateRange(RangeWeek)
	p.SetSearch("acme")
	require.Len(t, p.Filtered(), 1)
	assert.Equal(t, "VW-001", p.Filtered()[0].DocketNo)

	// Filtering is a pure recomputation; reapplying in a different order
	// gives the same result.
	q := newTestPipeline(sampleDockets())
	q.SetSearch("acme")
	q.SetStatus("active")
	q.SetDateRange(RangeWeek)
	assert.Equal(t, p.Filtered(), q.Filtered())
}

func manyDockets(n int) []models.Docket {
	out := make([]models.Docket, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Docket{
			DocketNo: fmt.Sprintf("VW-%03d", i),
			Status:   "active",
			ShipDate: "2026-09-16 09:00:00",
		})
	}
	return out
}

func TestPipelinePagination(t *testing.T) {
	p := newTestPipeline(manyDockets(23))

	assert.Equal(t, 3, p.TotalPages())
	assert.Len(t, p.Page(), 10)

	p.SetPage(3)
	assert.Len(t, p.Page(), 3)

	// Past the end clamps to the last page.
	p.SetPage(99)
	assert.Equal(t, 3, p.CurrentPage())
	p.SetPage(0)
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPipelineFilterChangeResetsPage(t *testing.T) {
	p := newTestPipeline(manyDockets(23))
	p.SetPage(3)
	require.Equal(t, 3, p.CurrentPage())

	p.SetSearch("VW-0")
	assert.Equal(t, 1, p.CurrentPage())

	p.SetPage(2)
	p.SetStatus("active")
	assert.Equal(t, 1, p.CurrentPage())

	p.SetPage(2)
	p.SetDateRange(RangeToday)
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPipelineStatsIgnoreFilters(t *testing.T) {
	p := newTestPipeline(sampleDockets())
	p.SetStatus("active")
	p.SetSearch("acme")

	s := p.Stats()
	assert.Equal(t, Stats{Total: 4, Active: 1, Pending: 1, Completed: 1}, s)
}
