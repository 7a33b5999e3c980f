package schedule

import (
	"reflect"
	"testing"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func requestWithConflicts() *domain.Request {
	return &domain.Request{
		ID:          1,
		RequesterID: 1,
		StartDate:   testMonday,
		EndDate:     testTuesday,
		Conflicts: &domain.RequestConflicts{
			Total: 3,
			Days: []domain.ConflictDay{
				{
					Date: testMonday,
					Appointments: []domain.AppointmentConflict{
						{AppointmentID: 1, Date: testMonday, Services: []domain.ConflictService{{ServiceID: 100, SpecializationID: 10, Duration: 60}}},
						{AppointmentID: 2, Date: testMonday, Services: []domain.ConflictService{{ServiceID: 200, SpecializationID: 20, Duration: 45}}},
					},
					TotalAppointments:         2,
					RequiredSpecializationIDs: []int64{10, 20},
					AssignmentMode:            domain.AssignmentModeSingle,
				},
				{
					Date: testTuesday,
					Appointments: []domain.AppointmentConflict{
						{AppointmentID: 3, Date: testTuesday, Services: []domain.ConflictService{{ServiceID: 100, SpecializationID: 10, Duration: 60}}},
					},
					TotalAppointments:         1,
					RequiredSpecializationIDs: []int64{10},
					AssignmentMode:            domain.AssignmentModeSingle,
				},
			},
		},
	}
}

func TestAssignFullDayResolvesSingleMode(t *testing.T) {
	request := requestWithConflicts()

	next := AssignFullDay(request, testMonday, 2, "李敏")

	day := next.Conflicts.Days[0]
	if day.Assignments.FullDay == nil || day.Assignments.FullDay.StaffID != 2 {
		t.Fatalf("expected full-day assignment to staff 2, got %+v", day.Assignments)
	}
	if !reflect.DeepEqual(day.Assignments.FullDay.AppointmentIDs, []int64{1, 2}) {
		t.Fatalf("expected every appointment assigned, got %v", day.Assignments.FullDay.AppointmentIDs)
	}
	if !day.IsResolved {
		t.Fatalf("single mode with full-day assignment must be resolved")
	}
	if next.Conflicts.Resolved != 1 {
		t.Fatalf("expected resolved count 1, got %d", next.Conflicts.Resolved)
	}
	if IsFullyResolved(next) {
		t.Fatalf("second day still pending, request must not be fully resolved")
	}
}

func TestAssignSpecializationCompleteness(t *testing.T) {
	request := requestWithConflicts()
	request = SetDayAssignmentMode(request, testMonday, domain.AssignmentModeSplit)

	// 部分分配不算解决
	request = AssignSpecialization(request, testMonday, 10, 2, "李敏")
	if request.Conflicts.Days[0].IsResolved {
		t.Fatalf("one of two specializations assigned, day must stay unresolved")
	}

	request = AssignSpecialization(request, testMonday, 20, 3, "只会剪发")
	if !request.Conflicts.Days[0].IsResolved {
		t.Fatalf("every required specialization assigned, day must be resolved")
	}
	if request.Conflicts.Resolved != 1 {
		t.Fatalf("expected resolved count 1, got %d", request.Conflicts.Resolved)
	}
}

func TestAssignAppointmentCompleteness(t *testing.T) {
	request := requestWithConflicts()
	request = SetDayAssignmentMode(request, testMonday, domain.AssignmentModeIndividual)

	request = AssignAppointment(request, testMonday, 1, 2, "李敏")
	if request.Conflicts.Days[0].IsResolved {
		t.Fatalf("one of two appointments assigned, day must stay unresolved")
	}

	request = AssignAppointment(request, testMonday, 2, 3, "只会剪发")
	if !request.Conflicts.Days[0].IsResolved {
		t.Fatalf("every appointment assigned, day must be resolved")
	}
}

func TestSetDayAssignmentModeResetsAssignments(t *testing.T) {
	request := requestWithConflicts()
	request = AssignFullDay(request, testMonday, 2, "李敏")
	if !request.Conflicts.Days[0].IsResolved {
		t.Fatalf("precondition failed: day should be resolved")
	}

	request = SetDayAssignmentMode(request, testMonday, domain.AssignmentModeSplit)

	day := request.Conflicts.Days[0]
	if day.Assignments.FullDay != nil || day.Assignments.BySpecialization != nil || day.Assignments.Individual != nil {
		t.Fatalf("mode switch must reset assignments, got %+v", day.Assignments)
	}
	if day.IsResolved {
		t.Fatalf("mode switch must force the day back to unresolved")
	}
	if request.Conflicts.Resolved != 0 {
		t.Fatalf("expected resolved count 0, got %d", request.Conflicts.Resolved)
	}
}

func TestMutatorsDoNotTouchInput(t *testing.T) {
	request := requestWithConflicts()
	snapshot := cloneRequest(request)

	_ = AssignFullDay(request, testMonday, 2, "李敏")
	_ = SetDayAssignmentMode(request, testMonday, domain.AssignmentModeSplit)
	_ = AssignSpecialization(request, testMonday, 10, 2, "李敏")
	_ = AssignAppointment(request, testMonday, 1, 2, "李敏")

	if !reflect.DeepEqual(request, snapshot) {
		t.Fatalf("mutators must never modify the input request")
	}
}

func TestMutatorsNoOpWithoutConflicts(t *testing.T) {
	request := &domain.Request{ID: 1}

	if next := AssignFullDay(request, testMonday, 2, "李敏"); next != request {
		t.Fatalf("expected no-op for request without conflicts")
	}
	if next := SetDayAssignmentMode(request, testMonday, domain.AssignmentModeSplit); next != request {
		t.Fatalf("expected no-op for request without conflicts")
	}

	// 不存在的日期同样保持原状
	withConflicts := requestWithConflicts()
	if next := AssignFullDay(withConflicts, "2024-07-01", 2, "李敏"); next != withConflicts {
		t.Fatalf("expected no-op for unknown conflict day")
	}
}

func TestIsFullyResolved(t *testing.T) {
	request := requestWithConflicts()

	if IsFullyResolved(request) {
		t.Fatalf("fresh conflicts must not be fully resolved")
	}

	request = AssignFullDay(request, testMonday, 2, "李敏")
	request = AssignFullDay(request, testTuesday, 2, "李敏")

	if !IsFullyResolved(request) {
		t.Fatalf("every day resolved, request must be fully resolved")
	}
	if request.Conflicts.Resolved != len(request.Conflicts.Days) {
		t.Fatalf("resolved count out of sync: %d", request.Conflicts.Resolved)
	}

	// 没有冲突的请求视为已解决
	if !IsFullyResolved(&domain.Request{}) {
		t.Fatalf("request without conflicts counts as resolved")
	}
}
