package schedule

import (
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// GetAvailableTimeSlots 枚举员工某天所有可预约的开始时间
// 从上班时间开始，以 slotInterval 分钟为步长，到最晚还能完成服务的时间点为止（含）
// 返回的时间点按升序排列，员工当天不上班时返回空切片
func GetAvailableTimeSlots(employeeID int64, date string, duration int, appointments []*domain.Appointment, workingHours []*domain.WorkingHours, timeOffEntries []*domain.TimeOffEntry, slotInterval int) []string {
	if slotInterval <= 0 {
		slotInterval = DefaultSlotInterval
	}

	slots := make([]string, 0)

	if !IsEmployeeWorkingOnDate(employeeID, date, workingHours, timeOffEntries) {
		return slots
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return slots
	}

	window := GetEmployeeWorkingHours(employeeID, int(day.Weekday()), workingHours)
	if window == nil {
		return slots
	}

	workStart := TimeToMinutes(window.StartTime)
	workEnd := TimeToMinutes(window.EndTime)

	for t := workStart; t+duration <= workEnd; t += slotInterval {
		candidate := MinutesToTime(t)
		if IsTimeSlotAvailable(employeeID, date, candidate, duration, appointments, workingHours, timeOffEntries) {
			slots = append(slots, candidate)
		}
	}

	return slots
}

// GetSequentialTimeSlots 枚举一名员工连续完成购物车内全部服务的可行开始时间
func GetSequentialTimeSlots(employeeID int64, date string, services []*domain.Service, appointments []*domain.Appointment, workingHours []*domain.WorkingHours, timeOffEntries []*domain.TimeOffEntry, slotInterval int) []string {
	total := 0
	for _, svc := range services {
		total += svc.Duration
	}
	return GetAvailableTimeSlots(employeeID, date, total, appointments, workingHours, timeOffEntries, slotInterval)
}

// performableServiceIDs 计算员工通过其专长能够提供的全部服务 ID 集合
func performableServiceIDs(employee *domain.Employee, relationships []*domain.ServiceRelationship) map[int64]bool {
	performable := make(map[int64]bool)
	for _, specID := range employee.SpecializationIDs {
		for _, rel := range relationships {
			if rel.SpecializationID != specID {
				continue
			}
			for _, serviceID := range rel.ServiceIDs {
				performable[serviceID] = true
			}
		}
	}
	return performable
}

// FindEmployeesForAllServices 返回能独立完成给定全部服务的员工
func FindEmployeesForAllServices(serviceIDs []int64, employees []*domain.Employee, relationships []*domain.ServiceRelationship) []*domain.Employee {
	matched := make([]*domain.Employee, 0)

	for _, employee := range employees {
		performable := performableServiceIDs(employee, relationships)

		coversAll := true
		for _, serviceID := range serviceIDs {
			if !performable[serviceID] {
				coversAll = false
				break
			}
		}

		if coversAll {
			matched = append(matched, employee)
		}
	}

	return matched
}

// SuggestAssignmentMode 根据购物车内容推荐分配粒度
// 没有任何员工能独立覆盖全部服务时退化为 "auto"，表示需要人工介入
func SuggestAssignmentMode(serviceIDs []int64, employees []*domain.Employee, relationships []*domain.ServiceRelationship) string {
	if len(FindEmployeesForAllServices(serviceIDs, employees, relationships)) > 0 {
		return string(domain.AssignmentModeSingle)
	}
	return "auto"
}
