package schedule

import (
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// findTimeOffEntry 返回覆盖给定日期的缺勤记录
// 日期区间为闭区间，ISO 日期字符串的字典序和时间序一致，可以直接比较
func findTimeOffEntry(employeeID int64, date string, timeOffEntries []*domain.TimeOffEntry) *domain.TimeOffEntry {
	for _, entry := range timeOffEntries {
		if entry.EmployeeID == employeeID && entry.StartDate <= date && date <= entry.EndDate {
			return entry
		}
	}
	return nil
}

func findWorkingHoursRow(employeeID int64, dayOfWeek int, workingHours []*domain.WorkingHours) *domain.WorkingHours {
	for _, wh := range workingHours {
		if wh.EmployeeID == employeeID && wh.DayOfWeek == dayOfWeek {
			return wh
		}
	}
	return nil
}

// IsEmployeeWorkingOnDate 判断员工在某一天是否上班
// 先看是否在已批准的缺勤区间内，再看每周工作时间表
func IsEmployeeWorkingOnDate(employeeID int64, date string, workingHours []*domain.WorkingHours, timeOffEntries []*domain.TimeOffEntry) bool {
	if findTimeOffEntry(employeeID, date, timeOffEntries) != nil {
		return false
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}

	row := findWorkingHoursRow(employeeID, int(day.Weekday()), workingHours)
	if row == nil {
		return false
	}

	return row.IsWorkingDay
}

// GetEmployeeWorkingHours 返回员工某个星期几的上班时间段
// 没有对应记录或当天不上班时返回 nil
func GetEmployeeWorkingHours(employeeID int64, dayOfWeek int, workingHours []*domain.WorkingHours) *WorkingWindow {
	row := findWorkingHoursRow(employeeID, dayOfWeek, workingHours)
	if row == nil || !row.IsWorkingDay {
		return nil
	}

	return &WorkingWindow{
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
	}
}

// IsTimeSlotAvailable 判断员工在某天的 [startTime, startTime+duration) 区间是否可以接受预约
// 区间重叠判定采用半开区间，端点相接不算冲突
func IsTimeSlotAvailable(employeeID int64, date string, startTime string, duration int, appointments []*domain.Appointment, workingHours []*domain.WorkingHours, timeOffEntries []*domain.TimeOffEntry) bool {
	if !IsEmployeeWorkingOnDate(employeeID, date, workingHours, timeOffEntries) {
		return false
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}

	window := GetEmployeeWorkingHours(employeeID, int(day.Weekday()), workingHours)
	if window == nil {
		return false
	}

	slotStart := TimeToMinutes(startTime)
	slotEnd := slotStart + duration

	// 请求的区间必须完整落在上班时间段内
	if slotStart < TimeToMinutes(window.StartTime) || slotEnd > TimeToMinutes(window.EndTime) {
		return false
	}

	for _, apt := range appointments {
		if apt.StaffID != employeeID || !apt.Status.CountsForSchedule() || apt.Date() != date {
			continue
		}

		aptStart := apt.StartTime.Hour()*60 + apt.StartTime.Minute()
		aptEnd := aptStart + apt.Duration

		if slotStart < aptEnd && slotEnd > aptStart {
			return false
		}
	}

	return true
}
