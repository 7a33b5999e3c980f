package schedule

import (
	"slices"
	"testing"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func TestGetStaffAvailabilityTierDecisionOrder(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")

	employee := &domain.Employee{ID: 1, Status: domain.EmployeeStatusActive}

	// 1. 缺勤记录优先级最高
	vacation := []*domain.TimeOffEntry{
		{EmployeeID: 1, StartDate: testMonday, EndDate: testMonday, Type: domain.TimeOffVacation},
	}
	info := GetStaffAvailabilityTier(employee, testMonday, hours, vacation, map[int64]bool{})
	if info.Tier != TierUnavailable || info.UnavailableReason != "On vacation" {
		t.Fatalf("expected unavailable 'On vacation', got %+v", info)
	}
	if info.LeaveType != domain.TimeOffVacation {
		t.Fatalf("expected leave type recorded, got %+v", info)
	}

	// 灵活休假且愿意接活 -> needs-approval
	info = GetStaffAvailabilityTier(employee, testMonday, hours, vacation, map[int64]bool{1: true})
	if info.Tier != TierNeedsApproval || !info.WillingDuringLeave {
		t.Fatalf("expected needs-approval for willing flexible leave, got %+v", info)
	}

	// 病假不是灵活休假，即便愿意也不可用
	sick := []*domain.TimeOffEntry{
		{EmployeeID: 1, StartDate: testMonday, EndDate: testMonday, Type: domain.TimeOffSick},
	}
	info = GetStaffAvailabilityTier(employee, testMonday, hours, sick, map[int64]bool{1: true})
	if info.Tier != TierUnavailable || info.UnavailableReason != "On sick" {
		t.Fatalf("expected unavailable 'On sick', got %+v", info)
	}

	// 2. 当天不上班
	info = GetStaffAvailabilityTier(employee, "2024-06-09", hours, nil, map[int64]bool{})
	if info.Tier != TierUnavailable || info.UnavailableReason != "Not scheduled to work" {
		t.Fatalf("expected 'Not scheduled to work', got %+v", info)
	}

	// 3. 员工状态
	inactive := &domain.Employee{ID: 1, Status: domain.EmployeeStatusInactive}
	info = GetStaffAvailabilityTier(inactive, testMonday, hours, nil, map[int64]bool{})
	if info.Tier != TierUnavailable || info.UnavailableReason != "Status: inactive" {
		t.Fatalf("expected 'Status: inactive', got %+v", info)
	}

	// 4. 一切正常
	info = GetStaffAvailabilityTier(employee, testMonday, hours, nil, map[int64]bool{})
	if info.Tier != TierAvailable {
		t.Fatalf("expected available, got %+v", info)
	}
}

func replacementFixtures() (*domain.ConflictDay, []*domain.Employee, []*domain.WorkingHours, []*domain.ServiceRelationship) {
	day := &domain.ConflictDay{
		Date: testMonday,
		Appointments: []domain.AppointmentConflict{
			{
				AppointmentID: 1,
				Date:          testMonday,
				Services:      []domain.ConflictService{{ServiceID: 100, SpecializationID: 10, Duration: 60}},
			},
			{
				AppointmentID: 2,
				Date:          testMonday,
				Services:      []domain.ConflictService{{ServiceID: 200, SpecializationID: 20, Duration: 45}},
			},
		},
		TotalAppointments:         2,
		RequiredSpecializationIDs: []int64{10, 20},
		AssignmentMode:            domain.AssignmentModeSingle,
	}

	employees := []*domain.Employee{
		{ID: 1, FullName: "请假人", SpecializationIDs: []int64{10, 20}, Status: domain.EmployeeStatusActive},
		{ID: 2, FullName: "全能", SpecializationIDs: []int64{10, 20}, Status: domain.EmployeeStatusActive},
		{ID: 3, FullName: "只会剪发", SpecializationIDs: []int64{10}, Status: domain.EmployeeStatusActive},
		{ID: 4, FullName: "休假中", SpecializationIDs: []int64{10, 20}, Status: domain.EmployeeStatusActive},
	}

	var hours []*domain.WorkingHours
	for _, employee := range employees {
		hours = append(hours, fullWeekHours(employee.ID, "09:00", "17:00")...)
	}

	relationships := []*domain.ServiceRelationship{
		{SpecializationID: 10, ServiceIDs: []int64{100}},
		{SpecializationID: 20, ServiceIDs: []int64{200}},
	}

	return day, employees, hours, relationships
}

func TestFindReplacementStaffForDayExcludesRequester(t *testing.T) {
	day, employees, hours, relationships := replacementFixtures()

	candidates := FindReplacementStaffForDay(day, employees, 1, testMonday, nil, hours, nil, relationships, map[int64]bool{})

	for _, candidate := range candidates {
		if candidate.EmployeeID == 1 {
			t.Fatalf("requester must not appear in replacement candidates")
		}
	}
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
}

func TestFindReplacementStaffForDayCapabilities(t *testing.T) {
	day, employees, hours, relationships := replacementFixtures()

	candidates := FindReplacementStaffForDay(day, employees, 1, testMonday, nil, hours, nil, relationships, map[int64]bool{})

	byID := make(map[int64]ReplacementStaff)
	for _, candidate := range candidates {
		byID[candidate.EmployeeID] = candidate
	}

	if !byID[2].CanTakeFullDay {
		t.Fatalf("employee 2 holds every specialization and should cover the full day")
	}
	if !slices.Equal(byID[2].CanTakeServiceIDs, []int64{100, 200}) {
		t.Fatalf("expected employee 2 to take both services, got %v", byID[2].CanTakeServiceIDs)
	}

	if byID[3].CanTakeFullDay {
		t.Fatalf("employee 3 lacks specialization 20 and cannot cover the full day")
	}
	if !slices.Equal(byID[3].CanTakeServiceIDs, []int64{100}) {
		t.Fatalf("expected employee 3 to take only service 100, got %v", byID[3].CanTakeServiceIDs)
	}
}

func TestFindReplacementStaffForDayTierOrdering(t *testing.T) {
	day, employees, hours, relationships := replacementFixtures()

	timeOff := []*domain.TimeOffEntry{
		{EmployeeID: 4, StartDate: testMonday, EndDate: testMonday, Type: domain.TimeOffVacation},
	}
	// 员工 3 当天已有两单，员工 2 没有
	appointments := []*domain.Appointment{
		testAppointment(10, 3, testMonday, "09:00", 60, domain.AppointmentConfirmed),
		testAppointment(11, 3, testMonday, "11:00", 60, domain.AppointmentConfirmed),
	}

	candidates := FindReplacementStaffForDay(day, employees, 1, testMonday, appointments, hours, timeOff, relationships, map[int64]bool{})

	// 排序不变式：分层权重非降，同层内现有预约数非降
	for i := 1; i < len(candidates); i++ {
		prev, cur := candidates[i-1], candidates[i]
		if tierRank[prev.Tier] > tierRank[cur.Tier] {
			t.Fatalf("tier order violated: %s before %s", prev.Tier, cur.Tier)
		}
		if prev.Tier == cur.Tier && prev.ExistingAppointments > cur.ExistingAppointments {
			t.Fatalf("workload order violated within tier %s", cur.Tier)
		}
	}

	if candidates[0].EmployeeID != 2 {
		t.Fatalf("expected least-loaded available employee first, got %d", candidates[0].EmployeeID)
	}
	if candidates[len(candidates)-1].EmployeeID != 4 {
		t.Fatalf("expected the on-leave employee last, got %d", candidates[len(candidates)-1].EmployeeID)
	}

	byID := make(map[int64]ReplacementStaff)
	for _, candidate := range candidates {
		byID[candidate.EmployeeID] = candidate
	}
	if byID[3].ExistingAppointments != 2 || byID[3].ScheduledHours != 2 {
		t.Fatalf("expected employee 3 to carry 2 appointments / 2 hours, got %+v", byID[3])
	}
}
