package schedule

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// GetStaffAvailabilityTier 判定候选员工在某一天的可用性分层
// 判定顺序：缺勤记录 -> 每周工作时间表 -> 员工状态
// leavePreferences 标记哪些员工愿意在灵活休假期间接受工作邀约
// 目前所有调用方都传入空 map，等将来有真实的偏好数据源后该分支才会生效
func GetStaffAvailabilityTier(employee *domain.Employee, date string, workingHours []*domain.WorkingHours, timeOffEntries []*domain.TimeOffEntry, leavePreferences map[int64]bool) TierInfo {
	if entry := findTimeOffEntry(employee.ID, date, timeOffEntries); entry != nil {
		if entry.Type.IsFlexible() && leavePreferences[employee.ID] {
			return TierInfo{
				Tier:               TierNeedsApproval,
				LeaveType:          entry.Type,
				WillingDuringLeave: true,
			}
		}
		return TierInfo{
			Tier:              TierUnavailable,
			LeaveType:         entry.Type,
			UnavailableReason: fmt.Sprintf("On %s", entry.Type),
		}
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return TierInfo{
			Tier:              TierUnavailable,
			UnavailableReason: "Not scheduled to work",
		}
	}

	row := findWorkingHoursRow(employee.ID, int(day.Weekday()), workingHours)
	if row == nil || !row.IsWorkingDay {
		return TierInfo{
			Tier:              TierUnavailable,
			UnavailableReason: "Not scheduled to work",
		}
	}

	if employee.Status != domain.EmployeeStatusActive {
		return TierInfo{
			Tier:              TierUnavailable,
			UnavailableReason: fmt.Sprintf("Status: %s", employee.Status),
		}
	}

	return TierInfo{Tier: TierAvailable}
}

// requiredServiceIDSet 收集冲突日需要被覆盖的全部服务 ID
func requiredServiceIDSet(day *domain.ConflictDay) map[int64]bool {
	required := make(map[int64]bool)
	for _, conflict := range day.Appointments {
		for _, svc := range conflict.Services {
			required[svc.ServiceID] = true
		}
	}
	return required
}

// FindReplacementStaffForDay 为冲突日的每个候选员工计算替班投影
// 排序规则：可用性分层升序，同层按现有预约数升序（负载均衡），最后按员工 ID 保证确定性
func FindReplacementStaffForDay(day *domain.ConflictDay, allEmployees []*domain.Employee, excludeStaffID int64, date string, appointments []*domain.Appointment, workingHours []*domain.WorkingHours, timeOffEntries []*domain.TimeOffEntry, relationships []*domain.ServiceRelationship, leavePreferences map[int64]bool) []ReplacementStaff {
	required := requiredServiceIDSet(day)

	candidates := make([]ReplacementStaff, 0, len(allEmployees))

	for _, employee := range allEmployees {
		if employee.ID == excludeStaffID {
			continue
		}

		info := GetStaffAvailabilityTier(employee, date, workingHours, timeOffEntries, leavePreferences)

		performable := performableServiceIDs(employee, relationships)

		canTake := make([]int64, 0, len(required))
		for serviceID := range required {
			if performable[serviceID] {
				canTake = append(canTake, serviceID)
			}
		}
		sort.Slice(canTake, func(i, j int) bool { return canTake[i] < canTake[j] })

		// 要承接整天，不仅要能做当天所有服务，还必须持有当天要求的每一项专长
		canTakeFullDay := len(canTake) == len(required)
		for _, specID := range day.RequiredSpecializationIDs {
			if !slices.Contains(employee.SpecializationIDs, specID) {
				canTakeFullDay = false
				break
			}
		}

		existing := 0
		scheduledMinutes := 0
		for _, apt := range appointments {
			if apt.StaffID != employee.ID || !apt.Status.CountsForSchedule() || apt.Date() != date {
				continue
			}
			existing++
			scheduledMinutes += apt.Duration
		}

		candidates = append(candidates, ReplacementStaff{
			EmployeeID:           employee.ID,
			FullName:             employee.FullName,
			Avatar:               employee.Avatar,
			Tier:                 info.Tier,
			LeaveType:            info.LeaveType,
			UnavailableReason:    info.UnavailableReason,
			WillingDuringLeave:   info.WillingDuringLeave,
			ExistingAppointments: existing,
			ScheduledHours:       float64(scheduledMinutes) / 60,
			CanTakeFullDay:       canTakeFullDay,
			CanTakeServiceIDs:    canTake,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if tierRank[candidates[i].Tier] != tierRank[candidates[j].Tier] {
			return tierRank[candidates[i].Tier] < tierRank[candidates[j].Tier]
		}
		if candidates[i].ExistingAppointments != candidates[j].ExistingAppointments {
			return candidates[i].ExistingAppointments < candidates[j].ExistingAppointments
		}
		return candidates[i].EmployeeID < candidates[j].EmployeeID
	})

	return candidates
}
