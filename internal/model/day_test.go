package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Tiliavir/timesheet-validator/internal/model"
)

func TestNewHolidaySetDedupAndSort(t *testing.T) {
	set := model.NewHolidaySet([]time.Time{
		time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 25, 14, 30, 0, 0, time.UTC),
	})
	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2", set.Len())
	}
	dates := set.Dates()
	if dates[0].Format("2006-01-02") != "2025-01-25" || dates[1].Format("2006-01-02") != "2025-12-25" {
		t.Errorf("Dates = %v, want [2025-01-25 2025-12-25]", dates)
	}
}

func TestHolidaySetContains(t *testing.T) {
	set := model.NewHolidaySet([]time.Time{time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)})
	if !set.Contains(time.Date(2025, 4, 21, 17, 0, 0, 0, time.UTC)) {
		t.Error("expected 2025-04-21 17:00 to be a holiday")
	}
	if set.Contains(time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)) {
		t.Error("2025-04-22 should not be a holiday")
	}
	if (model.HolidaySet{}).Contains(time.Now()) {
		t.Error("empty set should contain nothing")
	}
}

func TestHolidaySetMarshalJSON(t *testing.T) {
	set := model.NewHolidaySet([]time.Time{time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)})
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `["2025-11-20"]` {
		t.Errorf("json = %s, want [\"2025-11-20\"]", data)
	}
}

func TestReasonText(t *testing.T) {
	d := model.DayAggregate{Reasons: []model.Reason{model.ReasonScheduleConflict, model.ReasonInsufficientTime}}
	if got := d.ReasonText(); got != "Schedule conflict, Insufficient time" {
		t.Errorf("ReasonText = %q", got)
	}
}

func TestScopeIncludes(t *testing.T) {
	e := model.TimeEntry{Owner: "ana"}
	if !model.AllOwners.Includes(e) {
		t.Error("AllOwners should include every entry")
	}
	if (model.Scope{Owner: "bruno"}).Includes(e) {
		t.Error("owner scope should exclude other owners")
	}
}
