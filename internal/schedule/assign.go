package schedule

import (
	"slices"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// isDayResolved 是三种分配模式共享的完整性判定
//   - single: 存在整天分配
//   - split: 每个要求的专长都有对应的分配
//   - individual: 每个预约都有对应的分配
func isDayResolved(day *domain.ConflictDay) bool {
	switch day.AssignmentMode {
	case domain.AssignmentModeSingle:
		return day.Assignments.FullDay != nil
	case domain.AssignmentModeSplit:
		for _, specID := range day.RequiredSpecializationIDs {
			if _, exists := day.Assignments.BySpecialization[specID]; !exists {
				return false
			}
		}
		return true
	case domain.AssignmentModeIndividual:
		for _, conflict := range day.Appointments {
			if _, exists := day.Assignments.Individual[conflict.AppointmentID]; !exists {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func recountResolved(request *domain.Request) {
	if request.Conflicts == nil {
		return
	}

	resolved := 0
	for i := range request.Conflicts.Days {
		if request.Conflicts.Days[i].IsResolved {
			resolved++
		}
	}
	request.Conflicts.Resolved = resolved
}

// IsFullyResolved 判断请求的全部冲突天是否都已解决
func IsFullyResolved(request *domain.Request) bool {
	if request.Conflicts == nil {
		return true
	}
	return request.Conflicts.Resolved == len(request.Conflicts.Days)
}

// cloneRequest 深拷贝请求，保证所有修改函数不触碰调用方持有的值
func cloneRequest(request *domain.Request) *domain.Request {
	next := *request

	if request.Conflicts == nil {
		return &next
	}

	conflicts := domain.RequestConflicts{
		Total:    request.Conflicts.Total,
		Resolved: request.Conflicts.Resolved,
		Days:     make([]domain.ConflictDay, len(request.Conflicts.Days)),
	}

	for i, day := range request.Conflicts.Days {
		cloned := day
		cloned.Appointments = slices.Clone(day.Appointments)
		cloned.RequiredSpecializationIDs = slices.Clone(day.RequiredSpecializationIDs)

		if day.Assignments.FullDay != nil {
			fullDay := *day.Assignments.FullDay
			fullDay.AppointmentIDs = slices.Clone(day.Assignments.FullDay.AppointmentIDs)
			cloned.Assignments.FullDay = &fullDay
		}
		if day.Assignments.BySpecialization != nil {
			cloned.Assignments.BySpecialization = make(map[int64]domain.StaffAssignment, len(day.Assignments.BySpecialization))
			for specID, assignment := range day.Assignments.BySpecialization {
				cloned.Assignments.BySpecialization[specID] = assignment
			}
		}
		if day.Assignments.Individual != nil {
			cloned.Assignments.Individual = make(map[int64]domain.StaffAssignment, len(day.Assignments.Individual))
			for aptID, assignment := range day.Assignments.Individual {
				cloned.Assignments.Individual[aptID] = assignment
			}
		}

		conflicts.Days[i] = cloned
	}

	next.Conflicts = &conflicts

	return &next
}

func findConflictDay(request *domain.Request, date string) *domain.ConflictDay {
	for i := range request.Conflicts.Days {
		if request.Conflicts.Days[i].Date == date {
			return &request.Conflicts.Days[i]
		}
	}
	return nil
}

// SetDayAssignmentMode 切换冲突日的分配模式
// 切换会清空已有的分配并把该天重置为未解决
func SetDayAssignmentMode(request *domain.Request, date string, mode domain.AssignmentMode) *domain.Request {
	if request.Conflicts == nil {
		return request
	}

	next := cloneRequest(request)
	day := findConflictDay(next, date)
	if day == nil {
		return request
	}

	day.AssignmentMode = mode
	day.Assignments = domain.DayAssignments{}
	day.IsResolved = false
	recountResolved(next)

	return next
}

// AssignFullDay 把冲突日的全部预约整体分配给一名员工
func AssignFullDay(request *domain.Request, date string, staffID int64, staffName string) *domain.Request {
	if request.Conflicts == nil {
		return request
	}

	next := cloneRequest(request)
	day := findConflictDay(next, date)
	if day == nil {
		return request
	}

	appointmentIDs := make([]int64, 0, len(day.Appointments))
	for _, conflict := range day.Appointments {
		appointmentIDs = append(appointmentIDs, conflict.AppointmentID)
	}

	day.Assignments.FullDay = &domain.FullDayAssignment{
		StaffID:        staffID,
		StaffName:      staffName,
		AppointmentIDs: appointmentIDs,
	}
	day.IsResolved = isDayResolved(day)
	recountResolved(next)

	return next
}

// AssignSpecialization 在 split 模式下把某个专长的预约分配给一名员工
func AssignSpecialization(request *domain.Request, date string, specializationID int64, staffID int64, staffName string) *domain.Request {
	if request.Conflicts == nil {
		return request
	}

	next := cloneRequest(request)
	day := findConflictDay(next, date)
	if day == nil {
		return request
	}

	if day.Assignments.BySpecialization == nil {
		day.Assignments.BySpecialization = make(map[int64]domain.StaffAssignment)
	}
	day.Assignments.BySpecialization[specializationID] = domain.StaffAssignment{
		StaffID:   staffID,
		StaffName: staffName,
	}
	day.IsResolved = isDayResolved(day)
	recountResolved(next)

	return next
}

// AssignAppointment 在 individual 模式下把单个预约分配给一名员工
func AssignAppointment(request *domain.Request, date string, appointmentID int64, staffID int64, staffName string) *domain.Request {
	if request.Conflicts == nil {
		return request
	}

	next := cloneRequest(request)
	day := findConflictDay(next, date)
	if day == nil {
		return request
	}

	if day.Assignments.Individual == nil {
		day.Assignments.Individual = make(map[int64]domain.StaffAssignment)
	}
	day.Assignments.Individual[appointmentID] = domain.StaffAssignment{
		StaffID:   staffID,
		StaffName: staffName,
	}
	day.IsResolved = isDayResolved(day)
	recountResolved(next)

	return next
}
