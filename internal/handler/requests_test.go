package handler

import (
	"sort"
	"testing"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func TestCollectReassignments(t *testing.T) {
	request := &domain.Request{
		Conflicts: &domain.RequestConflicts{
			Days: []domain.ConflictDay{
				{
					Date:           "2024-06-10",
					AssignmentMode: domain.AssignmentModeSingle,
					Assignments: domain.DayAssignments{
						FullDay: &domain.FullDayAssignment{
							StaffID:        2,
							StaffName:      "李华",
							AppointmentIDs: []int64{101, 102},
						},
					},
					IsResolved: true,
				},
				{
					Date:           "2024-06-11",
					AssignmentMode: domain.AssignmentModeSplit,
					Appointments: []domain.AppointmentConflict{
						{
							AppointmentID: 103,
							Services:      []domain.ConflictService{{ServiceID: 1, SpecializationID: 10}},
						},
						{
							AppointmentID: 104,
							Services:      []domain.ConflictService{{ServiceID: 2, SpecializationID: 11}},
						},
					},
					Assignments: domain.DayAssignments{
						BySpecialization: map[int64]domain.StaffAssignment{
							10: {StaffID: 2, StaffName: "李华"},
							11: {StaffID: 3, StaffName: "王芳"},
						},
					},
					IsResolved: true,
				},
				{
					Date:           "2024-06-12",
					AssignmentMode: domain.AssignmentModeIndividual,
					Assignments: domain.DayAssignments{
						Individual: map[int64]domain.StaffAssignment{
							105: {StaffID: 3, StaffName: "王芳"},
						},
					},
					IsResolved: true,
				},
			},
			Total:    5,
			Resolved: 3,
		},
	}

	reassignments := collectReassignments(request)

	want := map[int64][]int64{
		2: {101, 102, 103},
		3: {104, 105},
	}

	if len(reassignments) != len(want) {
		t.Fatalf("期望 %d 名接手员工，实际 %d 名", len(want), len(reassignments))
	}
	for staffID, wantIDs := range want {
		gotIDs := append([]int64(nil), reassignments[staffID]...)
		sort.Slice(gotIDs, func(i, j int) bool { return gotIDs[i] < gotIDs[j] })
		if len(gotIDs) != len(wantIDs) {
			t.Fatalf("员工 %d 期望接手 %v，实际 %v", staffID, wantIDs, gotIDs)
		}
		for i := range wantIDs {
			if gotIDs[i] != wantIDs[i] {
				t.Fatalf("员工 %d 期望接手 %v，实际 %v", staffID, wantIDs, gotIDs)
			}
		}
	}
}

func TestCollectReassignmentsNoConflicts(t *testing.T) {
	reassignments := collectReassignments(&domain.Request{})
	if len(reassignments) != 0 {
		t.Fatalf("没有冲突时应得到空的改派表，实际 %v", reassignments)
	}
}
