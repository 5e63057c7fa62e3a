package docket

import (
	"strings"
	"time"

	"vinworld/models"
)

// PageSize is the fixed dashboard page length.
const PageSize = 10

// Date range buckets. Week starts on Sunday, month on the 1st.
const (
	RangeAll   = "all"
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// shipDateLayouts covers the formats the PHP backend has been seen to emit.
var shipDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Pipeline applies the three dashboard filters to a fetched docket set and
// slices the result into pages. Filtering is a pure recomputation over the
// full in-memory set; any filter change resets to page 1.
type Pipeline struct {
	dockets []models.Docket

	status    string
	dateRange string
	search    string
	page      int

	now func() time.Time
}

func NewPipeline(dockets []models.Docket) *Pipeline {
	return &Pipeline{
		dockets:   dockets,
		status:    "all",
		dateRange: RangeAll,
		page:      1,
		now:       time.Now,
	}
}

func (p *Pipeline) SetStatus(status string) {
	p.status = status
	p.page = 1
}

func (p *Pipeline) SetDateRange(dateRange string) {
	p.dateRange = dateRange
	p.page = 1
}

func (p *Pipeline) SetSearch(query string) {
	p.search = query
	p.page = 1
}

func (p *Pipeline) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if total := p.TotalPages(); total > 0 && page > total {
		page = total
	}
	p.page = page
}

func (p *Pipeline) CurrentPage() int { return p.page }

// Filtered returns the docket set with all three predicates AND-composed.
func (p *Pipeline) Filtered() []models.Docket {
	out := make([]models.Docket, 0, len(p.dockets))
	for _, d := range p.dockets {
		if !p.matchStatus(&d) || !p.matchDate(&d) || !p.matchSearch(&d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Page returns the current page slice of the filtered set.
func (p *Pipeline) Page() []models.Docket {
	filtered := p.Filtered()
	start := (p.page - 1) * PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

func (p *Pipeline) TotalPages() int {
	n := len(p.Filtered())
	return (n + PageSize - 1) / PageSize
}

// Stats are the dashboard quick counters, computed over the unfiltered set.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

func (p *Pipeline) Stats() Stats {
	s := Stats{Total: len(p.dockets)}
	for _, d := range p.dockets {
		switch {
		case d.HasStatus(models.StatusActive):
			s.Active++
		case d.HasStatus(models.StatusPending):
			s.Pending++
		case d.HasStatus(models.StatusCompleted):
			s.Completed++
		}
	}
	return s
}

func (p *Pipeline) matchStatus(d *models.Docket) bool {
	if p.status == "" || strings.EqualFold(p.status, "all") {
		return true
	}
	return d.HasStatus(p.status)
}

func (p *Pipeline) matchDate(d *models.Docket) bool {
	if p.dateRange == "" || p.dateRange == RangeAll {
		return true
	}
	shipped, ok := parseShipDate(d.ShipDate)
	if !ok {
		return false
	}

	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p.dateRange {
	case RangeToday:
		return shipped.Year() == now.Year() && shipped.YearDay() == now.YearDay()
	case RangeWeek:
		weekStart := today.AddDate(0, 0, -int(now.Weekday()))
		return !shipped.Before(weekStart)
	case RangeMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return !shipped.Before(monthStart)
	}
	return true
}

func (p *Pipeline) matchSearch(d *models.Docket) bool {
	query := strings.ToLower(strings.TrimSpace(p.search))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.DocketNo), query) ||
		strings.Contains(strings.ToLower(d.ConsignorName), query) ||
		strings.Contains(strings.ToLower(d.ConsigneeName), query)
}

func parseShipDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range shipDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
