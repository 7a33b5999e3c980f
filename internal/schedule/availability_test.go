package schedule

import (
	"testing"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// 2024-06-10 是星期一
const (
	testMonday    = "2024-06-10"
	testTuesday   = "2024-06-11"
	testWednesday = "2024-06-12"
)

// fullWeekHours 生成周一到周六上班的工作时间表
func fullWeekHours(employeeID int64, start string, end string) []*domain.WorkingHours {
	rows := make([]*domain.WorkingHours, 0, 7)
	for day := 0; day < 7; day++ {
		rows = append(rows, &domain.WorkingHours{
			EmployeeID:   employeeID,
			DayOfWeek:    day,
			IsWorkingDay: day != 0, // 周日休息
			StartTime:    start,
			EndTime:      end,
		})
	}
	return rows
}

func testAppointment(id int64, staffID int64, date string, startTime string, duration int, status domain.AppointmentStatus) *domain.Appointment {
	day, _ := time.Parse("2006-01-02", date)
	return &domain.Appointment{
		ID:        id,
		StaffID:   staffID,
		ServiceID: 100,
		StartTime: CombineDateAndTime(day, startTime),
		Duration:  duration,
		Status:    status,
	}
}

func TestIsEmployeeWorkingOnDate(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")

	if !IsEmployeeWorkingOnDate(1, testMonday, hours, nil) {
		t.Fatalf("expected employee to be working on a Monday")
	}

	// 周日的 isWorkingDay 为 false
	if IsEmployeeWorkingOnDate(1, "2024-06-09", hours, nil) {
		t.Fatalf("expected employee to be off on Sunday")
	}

	// 没有工作时间表的员工不算上班
	if IsEmployeeWorkingOnDate(2, testMonday, hours, nil) {
		t.Fatalf("expected unknown employee to be off")
	}
}

func TestIsEmployeeWorkingOnDateRespectsTimeOff(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")
	timeOff := []*domain.TimeOffEntry{
		{EmployeeID: 1, StartDate: testMonday, EndDate: testWednesday, Type: domain.TimeOffVacation},
	}

	// 闭区间：首尾两天都算缺勤
	for _, date := range []string{testMonday, testTuesday, testWednesday} {
		if IsEmployeeWorkingOnDate(1, date, hours, timeOff) {
			t.Fatalf("expected employee on vacation on %s", date)
		}
	}

	if !IsEmployeeWorkingOnDate(1, "2024-06-13", hours, timeOff) {
		t.Fatalf("expected employee back at work the day after vacation")
	}
}

func TestGetEmployeeWorkingHours(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")

	window := GetEmployeeWorkingHours(1, 1, hours)
	if window == nil {
		t.Fatalf("expected a working window on Monday")
	}
	if window.StartTime != "09:00" || window.EndTime != "17:00" {
		t.Fatalf("unexpected window %+v", window)
	}

	if GetEmployeeWorkingHours(1, 0, hours) != nil {
		t.Fatalf("expected nil window on a non-working day")
	}
	if GetEmployeeWorkingHours(99, 1, hours) != nil {
		t.Fatalf("expected nil window for unknown employee")
	}
}

func TestIsTimeSlotAvailableOverlap(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")
	appointments := []*domain.Appointment{
		testAppointment(1, 1, testMonday, "10:00", 60, domain.AppointmentConfirmed),
	}

	cases := []struct {
		name      string
		startTime string
		duration  int
		want      bool
	}{
		{"strictly before", "09:00", 60, true},
		{"touching start", "09:30", 30, true},
		{"identical interval", "10:00", 60, false},
		{"straddles start", "09:30", 60, false},
		{"inside", "10:15", 30, false},
		{"straddles end", "10:30", 60, false},
		{"touching end", "11:00", 60, true},
		{"before opening", "08:00", 60, false},
		{"runs past closing", "16:30", 60, false},
	}

	for _, c := range cases {
		got := IsTimeSlotAvailable(1, testMonday, c.startTime, c.duration, appointments, hours, nil)
		if got != c.want {
			t.Fatalf("%s: IsTimeSlotAvailable(%q, %d) = %v, want %v", c.name, c.startTime, c.duration, got, c.want)
		}
	}
}

func TestIsTimeSlotAvailableIgnoresCancelled(t *testing.T) {
	hours := fullWeekHours(1, "09:00", "17:00")
	appointments := []*domain.Appointment{
		testAppointment(1, 1, testMonday, "10:00", 60, domain.AppointmentCancelled),
		testAppointment(2, 1, testMonday, "13:00", 60, domain.AppointmentNoShow),
	}

	if !IsTimeSlotAvailable(1, testMonday, "10:00", 60, appointments, hours, nil) {
		t.Fatalf("cancelled appointment should not block the slot")
	}
	if !IsTimeSlotAvailable(1, testMonday, "13:00", 60, appointments, hours, nil) {
		t.Fatalf("no-show appointment should not block the slot")
	}
}

func TestIsTimeSlotAvailableIgnoresOtherStaff(t *testing.T) {
	hours := append(fullWeekHours(1, "09:00", "17:00"), fullWeekHours(2, "09:00", "17:00")...)
	appointments := []*domain.Appointment{
		testAppointment(1, 2, testMonday, "10:00", 60, domain.AppointmentConfirmed),
	}

	if !IsTimeSlotAvailable(1, testMonday, "10:00", 60, appointments, hours, nil) {
		t.Fatalf("another employee's appointment should not block the slot")
	}
}
