package domain

import "time"

type RequestType string

const (
	RequestTimeOff   RequestType = "time-off"
	RequestShiftSwap RequestType = "shift-swap"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

type AssignmentMode string

const (
	AssignmentModeSingle     AssignmentMode = "single"
	AssignmentModeSplit      AssignmentMode = "split"
	AssignmentModeIndividual AssignmentMode = "individual"
)

// ConflictService: 冲突预约中需要被覆盖的服务
type ConflictService struct {
	ServiceID        int64  `json:"serviceID"`
	Name             string `json:"name"`
	SpecializationID int64  `json:"specializationID"`
	Duration         int    `json:"duration"` // 分钟
}

// AppointmentConflict: 预约在冲突处理视角下的投影
type AppointmentConflict struct {
	AppointmentID int64             `json:"appointmentID"`
	Date          string            `json:"date"`      // "2006-01-02"
	StartTime     string            `json:"startTime"` // "HH:MM"
	EndTime       string            `json:"endTime"`   // "HH:MM"
	ClientName    string            `json:"clientName"`
	ClientPhone   string            `json:"clientPhone"`
	Services      []ConflictService `json:"services"`
}

type FullDayAssignment struct {
	StaffID        int64   `json:"staffID"`
	StaffName      string  `json:"staffName"`
	AppointmentIDs []int64 `json:"appointmentIDs"`
}

type StaffAssignment struct {
	StaffID   int64  `json:"staffID"`
	StaffName string `json:"staffName"`
}

// DayAssignments: 三种分配粒度各自使用一个字段，由 ConflictDay.AssignmentMode 决定哪个生效
type DayAssignments struct {
	FullDay          *FullDayAssignment        `json:"fullDay,omitempty"`
	BySpecialization map[int64]StaffAssignment `json:"bySpecialization,omitempty"` // 专长 ID -> 接手员工
	Individual       map[int64]StaffAssignment `json:"individual,omitempty"`       // 预约 ID -> 接手员工
}

type ConflictDay struct {
	Date                      string                `json:"date"`
	Appointments              []AppointmentConflict `json:"appointments"`
	TotalAppointments         int                   `json:"totalAppointments"`
	RequiredSpecializationIDs []int64               `json:"requiredSpecializationIDs"`
	AssignmentMode            AssignmentMode        `json:"assignmentMode"`
	Assignments               DayAssignments        `json:"assignments"`
	IsResolved                bool                  `json:"isResolved"`
}

type RequestConflicts struct {
	Days     []ConflictDay `json:"days"`
	Total    int           `json:"total"`    // 冲突预约总数
	Resolved int           `json:"resolved"` // 已解决的冲突天数
}

// Request: 待处理的请假/调班请求
// Conflicts 保存冲突处理的全部状态，由核心计算、由调用方持久化
type Request struct {
	ID            int64             `json:"id"`
	RequesterID   int64             `json:"requesterID"`
	RequesterName string            `json:"requesterName"`
	Type          RequestType       `json:"type"`
	TimeOffType   TimeOffType       `json:"timeOffType"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	Reason        string            `json:"reason"`
	Status        RequestStatus     `json:"status"`
	Conflicts     *RequestConflicts `json:"conflicts"`
	CreatedAt     time.Time         `json:"createdAt"`
	Version       int32             `json:"-"`
}
