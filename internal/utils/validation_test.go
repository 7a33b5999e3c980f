package utils

import (
	"fmt"
	"testing"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func TestValidateDateRange(t *testing.T) {
	cases := []struct {
		startDate string
		endDate   string
		wantErr   bool
	}{
		{"2024-06-10", "2024-06-12", false},
		{"2024-06-10", "2024-06-10", false},
		{"2024-06-12", "2024-06-10", true},
		{"2024/06/10", "2024-06-12", true},
		{"2024-06-10", "not-a-date", true},
	}

	for _, c := range cases {
		err := ValidateDateRange(c.startDate, c.endDate)
		if (err != nil) != c.wantErr {
			t.Fatalf("ValidateDateRange(%q, %q) = %v, wantErr = %v", c.startDate, c.endDate, err, c.wantErr)
		}
	}
}

func fullWeek() []*domain.WorkingHours {
	workingHours := make([]*domain.WorkingHours, 0, 7)
	for dayOfWeek := 0; dayOfWeek < 7; dayOfWeek++ {
		workingHours = append(workingHours, &domain.WorkingHours{
			EmployeeID:   1,
			DayOfWeek:    dayOfWeek,
			IsWorkingDay: true,
			StartTime:    "09:00",
			EndTime:      "17:00",
		})
	}
	return workingHours
}

func TestValidateWeeklyWorkingHours(t *testing.T) {
	if err := ValidateWeeklyWorkingHours(fullWeek()); err != nil {
		t.Fatalf("完整的每周排班不应该报错: %v", err)
	}

	t.Run("不满7天", func(t *testing.T) {
		if err := ValidateWeeklyWorkingHours(fullWeek()[:6]); err == nil {
			t.Fatal("期望报错，但没有")
		}
	})

	t.Run("星期重复", func(t *testing.T) {
		week := fullWeek()
		week[6].DayOfWeek = 0
		if err := ValidateWeeklyWorkingHours(week); err == nil {
			t.Fatal("期望报错，但没有")
		}
	})

	t.Run("结束时间早于开始时间", func(t *testing.T) {
		week := fullWeek()
		week[1].StartTime = "17:00"
		week[1].EndTime = "09:00"
		if err := ValidateWeeklyWorkingHours(week); err == nil {
			t.Fatal("期望报错，但没有")
		}
	})

	t.Run("休息日不检查时间", func(t *testing.T) {
		week := fullWeek()
		week[0].IsWorkingDay = false
		week[0].StartTime = ""
		week[0].EndTime = ""
		if err := ValidateWeeklyWorkingHours(week); err != nil {
			t.Fatalf("休息日的空时间不应该报错: %v", err)
		}
	})
}

func TestGenerateRandomWeeklyWorkingHours(t *testing.T) {
	for i := 0; i < 20; i++ {
		week := GenerateRandomWeeklyWorkingHours(1)
		if err := ValidateWeeklyWorkingHours(week); err != nil {
			t.Fatalf("随机生成的每周排班不合法: %v", err)
		}
		if week[0].IsWorkingDay {
			t.Fatal("周日应该固定为休息日")
		}
	}
}

func TestGenerateRandomSubset(t *testing.T) {
	arr := []int64{1, 2, 3, 4, 5}
	for i := 0; i < 20; i++ {
		subset := GenerateRandomSubset(arr)
		if len(subset) == 0 || len(subset) > len(arr) {
			t.Fatalf("子集大小不合法: %d", len(subset))
		}
		seen := make(map[int64]bool)
		for _, v := range subset {
			if seen[v] {
				t.Fatalf("子集中存在重复元素 %d", v)
			}
			seen[v] = true
		}
	}
	if fmt.Sprint(arr) != "[1 2 3 4 5]" {
		t.Fatal("原数组不应该被修改")
	}
}
