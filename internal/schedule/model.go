package schedule

import "github.com/meiyu-dev/salon-manager/backend/internal/domain"

// AvailabilityTier: 替班候选人的可用性分层
type AvailabilityTier string

const (
	TierAvailable     AvailabilityTier = "available"
	TierNeedsApproval AvailabilityTier = "needs-approval"
	TierUnavailable   AvailabilityTier = "unavailable"
)

// 分层的排序权重，数值越小越优先
var tierRank = map[AvailabilityTier]int{
	TierAvailable:     1,
	TierNeedsApproval: 2,
	TierUnavailable:   3,
}

// TierInfo: GetStaffAvailabilityTier 的判定结果
type TierInfo struct {
	Tier               AvailabilityTier   `json:"tier"`
	LeaveType          domain.TimeOffType `json:"leaveType,omitempty"`
	UnavailableReason  string             `json:"unavailableReason,omitempty"`
	WillingDuringLeave bool               `json:"willingDuringLeave,omitempty"`
}

// ReplacementStaff: 针对某个冲突日和某个候选员工计算出的投影
// 属于临时派生数据，按需重新计算，不允许持久化
type ReplacementStaff struct {
	EmployeeID           int64              `json:"employeeID"`
	FullName             string             `json:"fullName"`
	Avatar               string             `json:"avatar"`
	Tier                 AvailabilityTier   `json:"tier"`
	LeaveType            domain.TimeOffType `json:"leaveType,omitempty"`
	UnavailableReason    string             `json:"unavailableReason,omitempty"`
	WillingDuringLeave   bool               `json:"willingDuringLeave"`
	ExistingAppointments int                `json:"existingAppointments"`
	ScheduledHours       float64            `json:"scheduledHours"`
	CanTakeFullDay       bool               `json:"canTakeFullDay"`
	CanTakeServiceIDs    []int64            `json:"canTakeServiceIDs"`
}

// WorkingWindow: 某个员工某天的上班时间段
type WorkingWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ScoreReason: 每一项得分及其可读解释
type ScoreReason struct {
	Points float64 `json:"points"`
	Reason string  `json:"reason"`
}

type SuggestionCandidate struct {
	EmployeeID    int64    `json:"employeeID"`
	FullName      string   `json:"fullName"`
	CoveredDates  []string `json:"coveredDates"`
	CoversAllDays bool     `json:"coversAllDays"`
	TotalHours    float64  `json:"totalHours"`
	// ScheduledHours: 首个冲突日已有的排班小时数，用于评分和并列时的取舍
	ScheduledHours float64       `json:"scheduledHours"`
	Score          float64       `json:"score"`
	Reasons        []ScoreReason `json:"reasons"`
}

type SuggestionAlternate struct {
	EmployeeID int64  `json:"employeeID"`
	FullName   string `json:"fullName"`
	Reason     string `json:"reason"`
}

type SmartSuggestion struct {
	CanAutoResolve     bool                  `json:"canAutoResolve"`
	Confidence         Confidence            `json:"confidence"`
	Suggestion         *SuggestionCandidate  `json:"suggestion"`
	Alternates         []SuggestionAlternate `json:"alternates,omitempty"`
	NeedsManualReview  bool                  `json:"needsManualReview,omitempty"`
	ManualReviewReason string                `json:"manualReviewReason,omitempty"`
}

// DefaultSlotInterval: 未指定时可预约开始时间的间隔（分钟）
const DefaultSlotInterval = 15
