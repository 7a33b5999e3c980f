package schedule

import (
	"testing"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func TestCalculateCompensationBoundaries(t *testing.T) {
	cases := []struct {
		hours      float64
		wantCredit int
		wantBonus  int
	}{
		{3, 0, 75},  // 短工时给奖金：round(3 * 25)
		{3.5, 0, 88}, // round(87.5)
		{4, 0, 0},   // 边界：[4, 6] 之间只有加班费标记
		{5, 0, 0},
		{6, 0, 0},
		{6.5, 1, 0}, // 长工时给补休：ceil(6.5 / 8)
		{8, 1, 0},
		{9, 2, 0}, // ceil(9 / 8)
	}

	for _, c := range cases {
		compensation := CalculateCompensation(c.hours, true)
		if !compensation.OvertimePay {
			t.Fatalf("hours=%v: overtime flag must always carry through", c.hours)
		}
		if compensation.TimeOffCreditDays != c.wantCredit {
			t.Fatalf("hours=%v: expected credit %d, got %d", c.hours, c.wantCredit, compensation.TimeOffCreditDays)
		}
		if compensation.BonusAmount != c.wantBonus {
			t.Fatalf("hours=%v: expected bonus %d, got %d", c.hours, c.wantBonus, compensation.BonusAmount)
		}
	}
}

func offerConflictDay() *domain.ConflictDay {
	return &domain.ConflictDay{
		Date: testMonday,
		Appointments: []domain.AppointmentConflict{
			{AppointmentID: 1, Services: []domain.ConflictService{{ServiceID: 100, Duration: 60}}},
			{AppointmentID: 2, Services: []domain.ConflictService{{ServiceID: 200, Duration: 120}}},
		},
		TotalAppointments: 2,
	}
}

func TestCreateWorkOffer(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

	offer := CreateWorkOffer(7, 4, "休假中", 9, "店长", offerConflictDay(), now)

	if offer.RequestID != 7 || offer.TargetStaffID != 4 || offer.OfferedByID != 9 {
		t.Fatalf("unexpected offer identities %+v", offer)
	}
	if offer.Status != domain.OfferPending {
		t.Fatalf("new offer must be pending, got %s", offer.Status)
	}
	if offer.Coverage.TotalHours != 3 {
		t.Fatalf("expected 3 hours of coverage, got %v", offer.Coverage.TotalHours)
	}
	if offer.Coverage.EstimatedRevenue != 100 {
		t.Fatalf("expected flat-rate revenue 100, got %d", offer.Coverage.EstimatedRevenue)
	}
	if len(offer.Coverage.AppointmentIDs) != 2 {
		t.Fatalf("expected both appointments in coverage, got %v", offer.Coverage.AppointmentIDs)
	}
	if !offer.ExpiresAt.Equal(now.Add(48 * time.Hour)) {
		t.Fatalf("expected expiry 48h after creation, got %v", offer.ExpiresAt)
	}
	// 3 小时属于短工时，应带奖金
	if offer.Compensation.BonusAmount != 75 {
		t.Fatalf("expected bonus 75 for a 3-hour day, got %d", offer.Compensation.BonusAmount)
	}
}

func TestIsOfferExpired(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	offer := CreateWorkOffer(7, 4, "休假中", 9, "店长", offerConflictDay(), now)

	if IsOfferExpired(offer, now) {
		t.Fatalf("offer must not be expired immediately after creation")
	}
	if IsOfferExpired(offer, now.Add(47*time.Hour)) {
		t.Fatalf("offer must still be valid before the 48h mark")
	}
	if !IsOfferExpired(offer, now.Add(48*time.Hour+time.Second)) {
		t.Fatalf("offer must be expired past the 48h mark")
	}
}

func TestAssignOfferCoverageForcesSingleMode(t *testing.T) {
	day := *offerConflictDay()
	// 该天此前被切到 individual 模式，且留有一条不完整的分配
	day.AssignmentMode = domain.AssignmentModeIndividual
	day.Assignments.Individual = map[int64]domain.StaffAssignment{
		1: {StaffID: 8, StaffName: "王芳"},
	}

	request := &domain.Request{
		Conflicts: &domain.RequestConflicts{
			Days:  []domain.ConflictDay{day},
			Total: 2,
		},
	}

	updated := AssignOfferCoverage(request, testMonday, 4, "休假中")
	if updated == request {
		t.Fatalf("expected a modified copy of the request")
	}

	got := updated.Conflicts.Days[0]
	if got.AssignmentMode != domain.AssignmentModeSingle {
		t.Fatalf("accepting an offer must switch the day to single mode, got %s", got.AssignmentMode)
	}
	if got.Assignments.Individual != nil {
		t.Fatalf("stale individual assignments must be cleared, got %v", got.Assignments.Individual)
	}
	if got.Assignments.FullDay == nil || got.Assignments.FullDay.StaffID != 4 {
		t.Fatalf("expected a full-day assignment for the offer target, got %+v", got.Assignments.FullDay)
	}
	if len(got.Assignments.FullDay.AppointmentIDs) != 2 {
		t.Fatalf("full-day assignment must cover every appointment, got %v", got.Assignments.FullDay.AppointmentIDs)
	}
	if !got.IsResolved || updated.Conflicts.Resolved != 1 {
		t.Fatalf("day must be resolved after coverage, resolved=%v count=%d", got.IsResolved, updated.Conflicts.Resolved)
	}

	// 原请求保持不变
	original := request.Conflicts.Days[0]
	if original.AssignmentMode != domain.AssignmentModeIndividual || original.IsResolved {
		t.Fatalf("AssignOfferCoverage must not modify the input request")
	}
}

func TestAssignOfferCoverageUnknownDate(t *testing.T) {
	request := &domain.Request{
		Conflicts: &domain.RequestConflicts{
			Days: []domain.ConflictDay{*offerConflictDay()},
		},
	}

	if updated := AssignOfferCoverage(request, "2024-07-01", 4, "休假中"); updated != request {
		t.Fatalf("a date without conflicts must leave the request untouched")
	}
}

func TestProcessOfferResponse(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	offer := CreateWorkOffer(7, 4, "休假中", 9, "店长", offerConflictDay(), now)

	respondedAt := now.Add(2 * time.Hour)

	accepted := ProcessOfferResponse(offer, true, respondedAt)
	if accepted.Status != domain.OfferAccepted || accepted.RespondedAt == nil || !accepted.RespondedAt.Equal(respondedAt) {
		t.Fatalf("unexpected accepted offer %+v", accepted)
	}

	declined := ProcessOfferResponse(offer, false, respondedAt)
	if declined.Status != domain.OfferDeclined {
		t.Fatalf("expected declined status, got %s", declined.Status)
	}

	// 原邀约保持不变
	if offer.Status != domain.OfferPending || offer.RespondedAt != nil {
		t.Fatalf("ProcessOfferResponse must not modify the input offer")
	}
}
