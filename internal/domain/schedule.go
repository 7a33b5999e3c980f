package domain

import "time"

// WorkingHours: 每个员工每个星期几一条记录
// DayOfWeek 的取值为 0~6，0 表示星期日
type WorkingHours struct {
	ID           int64  `json:"id"`
	EmployeeID   int64  `json:"employeeID"`
	DayOfWeek    int    `json:"dayOfWeek"`
	IsWorkingDay bool   `json:"isWorkingDay"`
	StartTime    string `json:"startTime"` // "HH:MM"
	EndTime      string `json:"endTime"`   // "HH:MM"
}

type TimeOffType string

const (
	TimeOffVacation    TimeOffType = "vacation"
	TimeOffSick        TimeOffType = "sick"
	TimeOffDayOff      TimeOffType = "day-off"
	TimeOffHoliday     TimeOffType = "holiday"
	TimeOffPersonalDay TimeOffType = "personal-day"
)

// IsFlexible: 灵活休假类型的员工可能愿意在休假期间接受工作邀约
func (t TimeOffType) IsFlexible() bool {
	return t == TimeOffVacation || t == TimeOffDayOff
}

// TimeOffEntry: 已批准的缺勤记录，日期区间为闭区间
// StartDate 和 EndDate 的格式为 "2006-01-02"
type TimeOffEntry struct {
	ID         int64       `json:"id"`
	EmployeeID int64       `json:"employeeID"`
	StartDate  string      `json:"startDate"`
	EndDate    string      `json:"endDate"`
	Type       TimeOffType `json:"type"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type AppointmentStatus string

const (
	AppointmentConfirmed   AppointmentStatus = "confirmed"
	AppointmentRunningLate AppointmentStatus = "running-late"
	AppointmentInProgress  AppointmentStatus = "in-progress"
	AppointmentCompleted   AppointmentStatus = "completed"
	AppointmentCancelled   AppointmentStatus = "cancelled"
	AppointmentNoShow      AppointmentStatus = "no-show"
)

// CountsForSchedule: 已取消和客户爽约的预约不参与冲突和可用性计算
func (s AppointmentStatus) CountsForSchedule() bool {
	return s != AppointmentCancelled && s != AppointmentNoShow
}

type Appointment struct {
	ID          int64             `json:"id"`
	StaffID     int64             `json:"staffID"`
	ServiceID   int64             `json:"serviceID"`
	ClientName  string            `json:"clientName"`
	ClientPhone string            `json:"clientPhone"`
	StartTime   time.Time         `json:"startTime"`
	Duration    int               `json:"duration"` // 分钟
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Version     int32             `json:"-"`
}

// Date 返回预约所在的日期（"2006-01-02"）
func (a *Appointment) Date() string {
	return a.StartTime.Format("2006-01-02")
}
