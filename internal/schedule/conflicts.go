package schedule

import (
	"sort"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// buildServiceSpecializationIndex 根据专长到服务的配置构建反向索引（服务 ID -> 专长 ID）
func buildServiceSpecializationIndex(relationships []*domain.ServiceRelationship) map[int64]int64 {
	index := make(map[int64]int64)
	for _, rel := range relationships {
		for _, serviceID := range rel.ServiceIDs {
			index[serviceID] = rel.SpecializationID
		}
	}
	return index
}

// DetectTimeOffConflicts 找出请假日期区间内该员工的全部冲突预约
// 区间为闭区间；已取消和爽约的预约不算冲突；未知员工返回空切片
func DetectTimeOffConflicts(staffID int64, startDate string, endDate string, appointments []*domain.Appointment, services []*domain.Service, relationships []*domain.ServiceRelationship, employees []*domain.Employee) []domain.AppointmentConflict {
	conflicts := make([]domain.AppointmentConflict, 0)

	var staff *domain.Employee
	for _, employee := range employees {
		if employee.ID == staffID {
			staff = employee
			break
		}
	}
	if staff == nil {
		return conflicts
	}

	specIndex := buildServiceSpecializationIndex(relationships)

	servicesByID := make(map[int64]*domain.Service)
	for _, svc := range services {
		servicesByID[svc.ID] = svc
	}

	for _, apt := range appointments {
		if apt.StaffID != staffID || !apt.Status.CountsForSchedule() {
			continue
		}

		date := apt.Date()
		if date < startDate || date > endDate {
			continue
		}

		startTime := apt.StartTime.Format("15:04")

		conflict := domain.AppointmentConflict{
			AppointmentID: apt.ID,
			Date:          date,
			StartTime:     startTime,
			EndTime:       CalculateEndTime(startTime, apt.Duration),
			ClientName:    apt.ClientName,
			ClientPhone:   apt.ClientPhone,
			Services:      make([]domain.ConflictService, 0, 1),
		}

		cs := domain.ConflictService{
			ServiceID:        apt.ServiceID,
			SpecializationID: specIndex[apt.ServiceID],
			Duration:         apt.Duration,
		}
		if svc, exists := servicesByID[apt.ServiceID]; exists {
			cs.Name = svc.Name
		}
		conflict.Services = append(conflict.Services, cs)

		conflicts = append(conflicts, conflict)
	}

	// 保证相同输入得到相同输出
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Date != conflicts[j].Date {
			return conflicts[i].Date < conflicts[j].Date
		}
		if conflicts[i].StartTime != conflicts[j].StartTime {
			return conflicts[i].StartTime < conflicts[j].StartTime
		}
		return conflicts[i].AppointmentID < conflicts[j].AppointmentID
	})

	return conflicts
}

// GroupConflictsByDay 把冲突预约按日期分组为冲突日
// 每个冲突日默认为 single 分配模式、空分配、未解决，结果按日期升序排列
func GroupConflictsByDay(conflicts []domain.AppointmentConflict) []domain.ConflictDay {
	byDate := make(map[string][]domain.AppointmentConflict)
	for _, conflict := range conflicts {
		byDate[conflict.Date] = append(byDate[conflict.Date], conflict)
	}

	days := make([]domain.ConflictDay, 0, len(byDate))
	for date, dayConflicts := range byDate {
		specSet := make(map[int64]bool)
		for _, conflict := range dayConflicts {
			for _, svc := range conflict.Services {
				specSet[svc.SpecializationID] = true
			}
		}

		specIDs := make([]int64, 0, len(specSet))
		for specID := range specSet {
			specIDs = append(specIDs, specID)
		}
		sort.Slice(specIDs, func(i, j int) bool { return specIDs[i] < specIDs[j] })

		days = append(days, domain.ConflictDay{
			Date:                      date,
			Appointments:              dayConflicts,
			TotalAppointments:         len(dayConflicts),
			RequiredSpecializationIDs: specIDs,
			AssignmentMode:            domain.AssignmentModeSingle,
			Assignments:               domain.DayAssignments{},
			IsResolved:                false,
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days
}

// BuildRequestConflicts 把冲突日列表组装为请求上的冲突状态
func BuildRequestConflicts(conflicts []domain.AppointmentConflict) *domain.RequestConflicts {
	days := GroupConflictsByDay(conflicts)
	return &domain.RequestConflicts{
		Days:     days,
		Total:    len(conflicts),
		Resolved: 0,
	}
}
