package schedule

import (
	"fmt"
	"sort"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// dayTotalHours 计算冲突日全部服务的总时长（小时）
func dayTotalHours(day *domain.ConflictDay) float64 {
	minutes := 0
	for _, conflict := range day.Appointments {
		for _, svc := range conflict.Services {
			minutes += svc.Duration
		}
	}
	return float64(minutes) / 60
}

// GenerateSmartSuggestion 在全部冲突日中搜索单个最佳替班人选
// 评分规则：
//  1. 覆盖全部冲突日 +100，否则每覆盖一天 +30
//  2. 负载越轻加分越多，+max(0, 50 - 首个冲突日已排班小时数*5)
//  3. 在职状态 +20
func GenerateSmartSuggestion(request *domain.Request, employees []*domain.Employee, appointments []*domain.Appointment, workingHours []*domain.WorkingHours, timeOffEntries []*domain.TimeOffEntry, relationships []*domain.ServiceRelationship) *SmartSuggestion {
	if request.Conflicts == nil || len(request.Conflicts.Days) == 0 {
		return &SmartSuggestion{
			CanAutoResolve: true,
			Confidence:     ConfidenceHigh,
			Suggestion:     nil,
		}
	}

	days := request.Conflicts.Days
	firstDate := days[0].Date

	// 每个冲突日只跑一次替班排名，所有候选人共用
	noPreferences := map[int64]bool{}
	rankingByDate := make(map[string][]ReplacementStaff, len(days))
	for i := range days {
		day := &days[i]
		rankingByDate[day.Date] = FindReplacementStaffForDay(day, employees, request.RequesterID, day.Date, appointments, workingHours, timeOffEntries, relationships, noPreferences)
	}

	candidates := make([]SuggestionCandidate, 0)

	for _, employee := range employees {
		if employee.ID == request.RequesterID {
			continue
		}

		coveredDates := make([]string, 0, len(days))
		totalHours := 0.0
		scheduledHours := 0.0

		for i := range days {
			day := &days[i]

			var entry *ReplacementStaff
			for j := range rankingByDate[day.Date] {
				if rankingByDate[day.Date][j].EmployeeID == employee.ID {
					entry = &rankingByDate[day.Date][j]
					break
				}
			}
			if entry == nil {
				continue
			}

			if day.Date == firstDate {
				scheduledHours = entry.ScheduledHours
			}

			// 只把"当前就可用且能承接整天"的日子算作可覆盖
			if entry.Tier == TierAvailable && entry.CanTakeFullDay {
				coveredDates = append(coveredDates, day.Date)
				totalHours += dayTotalHours(day)
			}
		}

		if len(coveredDates) == 0 {
			continue
		}

		coversAll := len(coveredDates) == len(days)
		score := 0.0
		reasons := make([]ScoreReason, 0, 3)

		if coversAll {
			score += 100
			reasons = append(reasons, ScoreReason{
				Points: 100,
				Reason: fmt.Sprintf("Can cover all %d conflict days", len(days)),
			})
		} else {
			points := float64(30 * len(coveredDates))
			score += points
			reasons = append(reasons, ScoreReason{
				Points: points,
				Reason: fmt.Sprintf("Covers %d of %d conflict days", len(coveredDates), len(days)),
			})
		}

		workloadPoints := 50 - scheduledHours*5
		if workloadPoints < 0 {
			workloadPoints = 0
		}
		score += workloadPoints
		reasons = append(reasons, ScoreReason{
			Points: workloadPoints,
			Reason: fmt.Sprintf("%.1f hours already scheduled on %s", scheduledHours, firstDate),
		})

		if employee.Status == domain.EmployeeStatusActive {
			score += 20
			reasons = append(reasons, ScoreReason{
				Points: 20,
				Reason: "Active staff member",
			})
		}

		candidates = append(candidates, SuggestionCandidate{
			EmployeeID:     employee.ID,
			FullName:       employee.FullName,
			CoveredDates:   coveredDates,
			CoversAllDays:  coversAll,
			TotalHours:     totalHours,
			ScheduledHours: scheduledHours,
			Score:          score,
			Reasons:        reasons,
		})
	}

	if len(candidates) == 0 {
		return &SmartSuggestion{
			CanAutoResolve:     false,
			Confidence:         ConfidenceLow,
			Suggestion:         nil,
			NeedsManualReview:  true,
			ManualReviewReason: "No staff available to cover all days",
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].ScheduledHours != candidates[j].ScheduledHours {
			return candidates[i].ScheduledHours < candidates[j].ScheduledHours
		}
		return candidates[i].EmployeeID < candidates[j].EmployeeID
	})

	best := candidates[0]

	confidence := ConfidenceLow
	if best.CoversAllDays {
		if best.Score > 150 {
			confidence = ConfidenceHigh
		} else {
			confidence = ConfidenceMedium
		}
	}

	alternates := make([]SuggestionAlternate, 0, 3)
	for _, candidate := range candidates[1:] {
		if len(alternates) == 3 {
			break
		}
		alternates = append(alternates, SuggestionAlternate{
			EmployeeID: candidate.EmployeeID,
			FullName:   candidate.FullName,
			Reason:     fmt.Sprintf("Covers %d of %d conflict days", len(candidate.CoveredDates), len(days)),
		})
	}

	return &SmartSuggestion{
		CanAutoResolve: best.CoversAllDays,
		Confidence:     confidence,
		Suggestion:     &best,
		Alternates:     alternates,
	}
}

// ApplySmartSuggestion 把建议写入请求的冲突状态
// 建议覆盖到的每一天切换为 single 模式并写入整天分配，未覆盖的天保持原状
// 返回新的 Request 值，不修改传入的请求
func ApplySmartSuggestion(request *domain.Request, suggestion *SmartSuggestion) *domain.Request {
	if request.Conflicts == nil || suggestion == nil || suggestion.Suggestion == nil {
		return request
	}

	covered := make(map[string]bool, len(suggestion.Suggestion.CoveredDates))
	for _, date := range suggestion.Suggestion.CoveredDates {
		covered[date] = true
	}

	next := cloneRequest(request)
	for i := range next.Conflicts.Days {
		day := &next.Conflicts.Days[i]
		if !covered[day.Date] {
			continue
		}

		appointmentIDs := make([]int64, 0, len(day.Appointments))
		for _, conflict := range day.Appointments {
			appointmentIDs = append(appointmentIDs, conflict.AppointmentID)
		}

		day.AssignmentMode = domain.AssignmentModeSingle
		day.Assignments = domain.DayAssignments{
			FullDay: &domain.FullDayAssignment{
				StaffID:        suggestion.Suggestion.EmployeeID,
				StaffName:      suggestion.Suggestion.FullName,
				AppointmentIDs: appointmentIDs,
			},
		}
		day.IsResolved = true
	}

	recountResolved(next)

	return next
}
