package schedule

import (
	"math"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

const (
	offerExpiryHours = 48

	// 预估营业额目前使用每单固定费率的占位值
	revenuePerAppointment = 50

	// 补偿规则的边界：超过 longDayHours 给补休，不足 shortDayHours 给奖金
	// 处在 [shortDayHours, longDayHours] 之间的时长两者都不给，只保留加班费标记
	// 这个空档是有意保留的既有策略，待产品确认前不要"修复"
	longDayHours     = 6.0
	shortDayHours    = 4.0
	hoursPerCredit   = 8.0
	bonusPerHourRate = 25.0
)

// CalculateDayHours 计算冲突日需要覆盖的总工时（小时）
func CalculateDayHours(day *domain.ConflictDay) float64 {
	return dayTotalHours(day)
}

// CalculateCompensation 根据总工时计算邀约的补偿条款
func CalculateCompensation(totalHours float64, overtimePay bool) domain.OfferCompensation {
	compensation := domain.OfferCompensation{
		OvertimePay: overtimePay,
	}

	if totalHours > longDayHours {
		compensation.TimeOffCreditDays = int(math.Ceil(totalHours / hoursPerCredit))
	} else if totalHours < shortDayHours {
		compensation.BonusAmount = int(math.Round(totalHours * bonusPerHourRate))
	}

	return compensation
}

// CreateWorkOffer 为休假中但愿意接活的员工生成一份限时工作邀约
// now 由调用方注入，保证可以用固定时钟做确定性测试
func CreateWorkOffer(requestID int64, targetStaffID int64, targetStaffName string, offeredByID int64, offeredByName string, day *domain.ConflictDay, now time.Time) *domain.WorkOffer {
	appointmentIDs := make([]int64, 0, len(day.Appointments))
	for _, conflict := range day.Appointments {
		appointmentIDs = append(appointmentIDs, conflict.AppointmentID)
	}

	totalHours := CalculateDayHours(day)

	return &domain.WorkOffer{
		RequestID:       requestID,
		TargetStaffID:   targetStaffID,
		TargetStaffName: targetStaffName,
		OfferedByID:     offeredByID,
		OfferedByName:   offeredByName,
		Coverage: domain.OfferCoverage{
			Date:              day.Date,
			AppointmentIDs:    appointmentIDs,
			TotalAppointments: day.TotalAppointments,
			TotalHours:        totalHours,
			EstimatedRevenue:  day.TotalAppointments * revenuePerAppointment,
		},
		Compensation: CalculateCompensation(totalHours, true),
		Status:       domain.OfferPending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(offerExpiryHours * time.Hour),
	}
}

// ProcessOfferResponse 记录员工对邀约的答复，返回新的邀约值
// 通知其他系统是外部协作方的职责，这里不做任何副作用
func ProcessOfferResponse(offer *domain.WorkOffer, accepted bool, respondedAt time.Time) *domain.WorkOffer {
	next := *offer

	if accepted {
		next.Status = domain.OfferAccepted
	} else {
		next.Status = domain.OfferDeclined
	}
	next.RespondedAt = &respondedAt

	return &next
}

// AssignOfferCoverage 把被接受的邀约落实为该天的整天分配
// 该天无论之前处于哪种分配模式，都强制切回 single 并覆盖已有分配，
// 避免残留的按专长或按预约分配让该天始终无法解决
func AssignOfferCoverage(request *domain.Request, date string, staffID int64, staffName string) *domain.Request {
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

	day.AssignmentMode = domain.AssignmentModeSingle
	day.Assignments = domain.DayAssignments{
		FullDay: &domain.FullDayAssignment{
			StaffID:        staffID,
			StaffName:      staffName,
			AppointmentIDs: appointmentIDs,
		},
	}
	day.IsResolved = true
	recountResolved(next)

	return next
}

func IsOfferExpired(offer *domain.WorkOffer, now time.Time) bool {
	return now.After(offer.ExpiresAt)
}
