package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// ValidateDateRange 检查 "2006-01-02" 格式的闭区间是否合法。
func ValidateDateRange(startDate, endDate string) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return errors.New("开始日期格式错误")
	}

	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return errors.New("结束日期格式错误")
	}

	if end.Before(start) {
		return errors.New("结束日期不能早于开始日期")
	}

	return nil
}

// ValidateWeeklyWorkingHours 检查每周排班是否是完整的 7 天，
// 以及每个工作日的时间段是否合法。
func ValidateWeeklyWorkingHours(workingHours []*domain.WorkingHours) error {
	if len(workingHours) != 7 {
		return errors.New("每周排班必须包含 7 天")
	}

	seen := make(map[int]bool)
	for _, row := range workingHours {
		if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
			return fmt.Errorf("星期 %d 不合法", row.DayOfWeek)
		}
		if seen[row.DayOfWeek] {
			return fmt.Errorf("星期 %d 出现了多次", row.DayOfWeek)
		}
		seen[row.DayOfWeek] = true

		if !row.IsWorkingDay {
			continue
		}

		startTime, err := time.Parse("15:04", row.StartTime)
		if err != nil {
			return fmt.Errorf("星期 %d 的开始时间格式错误", row.DayOfWeek)
		}
		endTime, err := time.Parse("15:04", row.EndTime)
		if err != nil {
			return fmt.Errorf("星期 %d 的结束时间格式错误", row.DayOfWeek)
		}
		if !endTime.After(startTime) {
			return fmt.Errorf("星期 %d 的结束时间必须晚于开始时间", row.DayOfWeek)
		}
	}

	return nil
}
