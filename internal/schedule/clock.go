package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

// TimeToMinutes 将 "HH:MM" 解析为从零点开始的分钟数
// 前置条件：时间字符串必须是合法的 "HH:MM"，格式错误时结果未定义
// 调用方（HTTP 层）负责在入口处校验格式
func TimeToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// MinutesToTime 是 TimeToMinutes 的逆运算，输出零填充的 "HH:MM"
// 只处理单日以内的分钟数，不处理跨日溢出
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func AddMinutesToTime(t string, delta int) string {
	return MinutesToTime(TimeToMinutes(t) + delta)
}

// CombineDateAndTime 把 "HH:MM" 设置到给定日期的副本上，秒和纳秒归零
func CombineDateAndTime(date time.Time, t string) time.Time {
	total := TimeToMinutes(t)
	return time.Date(date.Year(), date.Month(), date.Day(), total/60, total%60, 0, 0, date.Location())
}

func CalculateEndTime(startTime string, duration int) string {
	return AddMinutesToTime(startTime, duration)
}

// CalculateSequentialEndTime 计算一名员工连续完成购物车内所有服务后的结束时间
func CalculateSequentialEndTime(startTime string, services []*domain.Service) string {
	total := 0
	for _, svc := range services {
		total += svc.Duration
	}
	return AddMinutesToTime(startTime, total)
}
