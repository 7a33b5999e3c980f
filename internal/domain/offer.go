package domain

import "time"

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferDeclined OfferStatus = "declined"
)

// OfferCompensation: 接受邀约的补偿条款
type OfferCompensation struct {
	OvertimePay       bool `json:"overtimePay"`
	TimeOffCreditDays int  `json:"timeOffCreditDays,omitempty"` // 补休天数
	BonusAmount       int  `json:"bonusAmount,omitempty"`       // 奖金（元）
}

// OfferCoverage: 邀约对应的当天工作内容
type OfferCoverage struct {
	Date              string  `json:"date"`
	AppointmentIDs    []int64 `json:"appointmentIDs"`
	TotalAppointments int     `json:"totalAppointments"`
	TotalHours        float64 `json:"totalHours"`
	EstimatedRevenue  int     `json:"estimatedRevenue"`
}

// WorkOffer: 发给休假中员工的限时工作邀约
type WorkOffer struct {
	ID              int64             `json:"id"`
	RequestID       int64             `json:"requestID"`
	TargetStaffID   int64             `json:"targetStaffID"`
	TargetStaffName string            `json:"targetStaffName"`
	OfferedByID     int64             `json:"offeredByID"`
	OfferedByName   string            `json:"offeredByName"`
	Coverage        OfferCoverage     `json:"coverage"`
	Compensation    OfferCompensation `json:"compensation"`
	Status          OfferStatus       `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	ExpiresAt       time.Time         `json:"expiresAt"`
	RespondedAt     *time.Time        `json:"respondedAt,omitempty"`
	Version         int32             `json:"-"`
}
