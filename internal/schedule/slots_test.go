package schedule

import (
	"slices"
	"testing"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func TestGetAvailableTimeSlotsBlocksOverlap(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")
	appointments := []*domain.Appointment{
		testAppointment(1, 1, testMonday, "10:00", 60, domain.AppointmentConfirmed),
	}

	slots := GetAvailableTimeSlots(1, testMonday, 60, appointments, hours, nil, 15)

	if !slices.Contains(slots, "09:00") {
		t.Fatalf("expected 09:00 to be available, got %v", slots)
	}
	if !slices.Contains(slots, "11:00") {
		t.Fatalf("expected 11:00 to be available, got %v", slots)
	}
	for _, blocked := range []string{"09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45"} {
		if slices.Contains(slots, blocked) {
			t.Fatalf("expected %s to be blocked, got %v", blocked, slots)
		}
	}

	if !slices.IsSorted(slots) {
		t.Fatalf("expected ascending slots, got %v", slots)
	}

	// 最后一个可行的开始时间是 end - duration
	if slots[len(slots)-1] != "16:00" {
		t.Fatalf("expected last slot 16:00, got %v", slots[len(slots)-1])
	}
}

func TestGetAvailableTimeSlotsEmptyWhenNotWorking(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")

	slots := GetAvailableTimeSlots(1, "2024-06-09", 60, nil, hours, nil, 15)
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a day off, got %v", slots)
	}
}

func TestGetAvailableTimeSlotsDefaultInterval(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "10:00")

	slots := GetAvailableTimeSlots(1, testMonday, 30, nil, hours, nil, 0)
	want := []string{"09:00", "09:15", "09:30"}
	if !slices.Equal(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestGetSequentialTimeSlots(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "12:00")
	services := []*domain.Service{
		{ID: 1, Duration: 60},
		{ID: 2, Duration: 60},
	}

	slots := GetSequentialTimeSlots(1, testMonday, services, nil, hours, nil, 30)
	want := []string{"09:00", "09:30", "10:00"}
	if !slices.Equal(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestFindEmployeesForAllServices(t *testing.T) {
	employees := []*domain.Employee{
		{ID: 1, SpecializationIDs: []int64{10}},
		{ID: 2, SpecializationIDs: []int64{10, 20}},
		{ID: 3, SpecializationIDs: []int64{20}},
	}
	relationships := []*domain.ServiceRelationship{
		{SpecializationID: 10, ServiceIDs: []int64{100, 101}},
		{SpecializationID: 20, ServiceIDs: []int64{200}},
	}

	matched := FindEmployeesForAllServices([]int64{100, 200}, employees, relationships)
	if len(matched) != 1 || matched[0].ID != 2 {
		t.Fatalf("expected only employee 2, got %+v", matched)
	}
}

func TestSuggestAssignmentModeDegradesToAuto(t *testing.T) {
	employees := []*domain.Employee{
		{ID: 1, SpecializationIDs: []int64{10}},
		{ID: 2, SpecializationIDs: []int64{20}},
	}
	relationships := []*domain.ServiceRelationship{
		{SpecializationID: 10, ServiceIDs: []int64{100}},
		{SpecializationID: 20, ServiceIDs: []int64{200}},
	}

	if mode := SuggestAssignmentMode([]int64{100}, employees, relationships); mode != "single" {
		t.Fatalf("expected single, got %q", mode)
	}

	// 没有人能独立覆盖全部服务时退化为 auto
	if mode := SuggestAssignmentMode([]int64{100, 200}, employees, relationships); mode != "auto" {
		t.Fatalf("expected auto, got %q", mode)
	}
}
