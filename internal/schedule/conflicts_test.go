package schedule

import (
	"reflect"
	"slices"
	"testing"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func conflictFixtures() ([]*domain.Service, []*domain.ServiceRelationship, []*domain.Employee) {
	services := []*domain.Service{
		{ID: 100, Name: "剪发", Duration: 60},
		{ID: 101, Name: "染发", Duration: 120},
		{ID: 200, Name: "美甲", Duration: 45},
	}
	relationships := []*domain.ServiceRelationship{
		{SpecializationID: 10, ServiceIDs: []int64{100, 101}},
		{SpecializationID: 20, ServiceIDs: []int64{200}},
	}
	employees := []*domain.Employee{
		{ID: 1, FullName: "王丽", SpecializationIDs: []int64{10}, Status: domain.EmployeeStatusActive},
		{ID: 2, FullName: "李敏", SpecializationIDs: []int64{10, 20}, Status: domain.EmployeeStatusActive},
	}
	return services, relationships, employees
}

func TestDetectTimeOffConflictsVacationScenario(t *testing.T) {
	services, relationships, employees := conflictFixtures()

	appointments := []*domain.Appointment{
		testAppointment(1, 1, testTuesday, "10:00", 60, domain.AppointmentConfirmed),
		// 区间外的预约不算冲突
		testAppointment(2, 1, "2024-06-13", "10:00", 60, domain.AppointmentConfirmed),
		// 其他员工的预约不算冲突
		testAppointment(3, 2, testTuesday, "10:00", 60, domain.AppointmentConfirmed),
	}

	conflicts := DetectTimeOffConflicts(1, testMonday, testWednesday, appointments, services, relationships, employees)

	if len(conflicts) != 1 {
		t.Fatalf("expected exactly one conflict, got %d", len(conflicts))
	}

	conflict := conflicts[0]
	if conflict.Date != testTuesday {
		t.Fatalf("expected conflict on %s, got %s", testTuesday, conflict.Date)
	}
	if conflict.StartTime != "10:00" || conflict.EndTime != "11:00" {
		t.Fatalf("unexpected conflict window %s-%s", conflict.StartTime, conflict.EndTime)
	}
	if len(conflict.Services) != 1 || conflict.Services[0].SpecializationID != 10 {
		t.Fatalf("expected service resolved to specialization 10, got %+v", conflict.Services)
	}
	if conflict.Services[0].Name != "剪发" {
		t.Fatalf("expected service name resolved, got %q", conflict.Services[0].Name)
	}

	days := GroupConflictsByDay(conflicts)
	if len(days) != 1 || days[0].TotalAppointments != 1 {
		t.Fatalf("expected one conflict day with one appointment, got %+v", days)
	}
}

func TestDetectTimeOffConflictsUnknownStaff(t *testing.T) {
	services, relationships, employees := conflictFixtures()

	conflicts := DetectTimeOffConflicts(99, testMonday, testWednesday, nil, services, relationships, employees)
	if conflicts == nil || len(conflicts) != 0 {
		t.Fatalf("expected empty non-nil slice for unknown staff, got %#v", conflicts)
	}
}

func TestDetectTimeOffConflictsExcludesCancelled(t *testing.T) {
	services, relationships, employees := conflictFixtures()

	appointments := []*domain.Appointment{
		testAppointment(1, 1, testTuesday, "10:00", 60, domain.AppointmentCancelled),
		testAppointment(2, 1, testTuesday, "13:00", 60, domain.AppointmentNoShow),
		testAppointment(3, 1, testTuesday, "15:00", 60, domain.AppointmentCompleted),
	}

	conflicts := DetectTimeOffConflicts(1, testMonday, testWednesday, appointments, services, relationships, employees)
	if len(conflicts) != 1 || conflicts[0].AppointmentID != 3 {
		t.Fatalf("expected only the completed appointment to conflict, got %+v", conflicts)
	}
}

func TestGroupConflictsByDay(t *testing.T) {
	services, relationships, employees := conflictFixtures()

	appointments := []*domain.Appointment{
		testAppointment(1, 2, testMonday, "10:00", 60, domain.AppointmentConfirmed),  // 剪发，专长 10
		testAppointment(2, 2, testMonday, "14:00", 45, domain.AppointmentConfirmed),  // 美甲，专长 20
		testAppointment(3, 2, testTuesday, "09:00", 60, domain.AppointmentConfirmed), // 剪发，专长 10
	}
	appointments[1].ServiceID = 200

	conflicts := DetectTimeOffConflicts(2, testMonday, testWednesday, appointments, services, relationships, employees)
	days := GroupConflictsByDay(conflicts)

	if len(days) != 2 {
		t.Fatalf("expected two conflict days, got %d", len(days))
	}
	if days[0].Date != testMonday || days[1].Date != testTuesday {
		t.Fatalf("expected days sorted ascending, got %s then %s", days[0].Date, days[1].Date)
	}
	if !slices.Equal(days[0].RequiredSpecializationIDs, []int64{10, 20}) {
		t.Fatalf("expected specializations [10 20] on the first day, got %v", days[0].RequiredSpecializationIDs)
	}

	for _, day := range days {
		if day.AssignmentMode != domain.AssignmentModeSingle {
			t.Fatalf("expected default single mode, got %s", day.AssignmentMode)
		}
		if day.IsResolved {
			t.Fatalf("expected new conflict day to be unresolved")
		}
	}
}

func TestGroupConflictsByDayDeterministic(t *testing.T) {
	services, relationships, employees := conflictFixtures()

	appointments := []*domain.Appointment{
		testAppointment(1, 2, testMonday, "10:00", 60, domain.AppointmentConfirmed),
		testAppointment(2, 2, testTuesday, "14:00", 45, domain.AppointmentConfirmed),
		testAppointment(3, 2, testWednesday, "09:00", 60, domain.AppointmentConfirmed),
	}

	conflicts := DetectTimeOffConflicts(2, testMonday, testWednesday, appointments, services, relationships, employees)

	first := GroupConflictsByDay(conflicts)
	second := GroupConflictsByDay(conflicts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic grouping")
	}
}

func TestBuildRequestConflicts(t *testing.T) {
	services, relationships, employees := conflictFixtures()

	appointments := []*domain.Appointment{
		testAppointment(1, 1, testMonday, "10:00", 60, domain.AppointmentConfirmed),
		testAppointment(2, 1, testTuesday, "10:00", 60, domain.AppointmentConfirmed),
	}

	conflicts := DetectTimeOffConflicts(1, testMonday, testWednesday, appointments, services, relationships, employees)
	rc := BuildRequestConflicts(conflicts)

	if rc.Total != 2 || rc.Resolved != 0 || len(rc.Days) != 2 {
		t.Fatalf("unexpected conflicts summary %+v", rc)
	}
}
