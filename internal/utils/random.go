package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣", "悦",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var stylistRoles = []domain.Role{
	domain.RoleStylist,
	domain.RoleSeniorStylist,
}

// 种子数据中只生成美发师和资深美发师，店长由初始管理员担任
func GenerateRandomRole() domain.Role {
	return stylistRoles[rand.Intn(len(stylistRoles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomEmployee(password string, emailDomainName string, specializationIDs []int64) (*domain.Employee, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		Username:          username,
		PasswordHash:      string(passwordHash),
		FullName:          fullName,
		Email:             username + "@" + emailDomainName,
		Role:              GenerateRandomRole(),
		SpecializationIDs: GenerateRandomSubset(specializationIDs),
		Status:            domain.EmployeeStatusActive,
	}

	return employee, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// 使用 Fisher-Yates 洗牌算法来生成一个随机非空子集
func GenerateRandomSubset(arr []int64) []int64 {
	arrCopy := append([]int64{}, arr...) // 复制数组，避免修改原数组

	for i := 0; i < len(arrCopy)-1; i++ {
		j := rand.Intn(len(arrCopy)-i) + i
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	l := rand.Intn(len(arrCopy)) + 1
	return arrCopy[:l]
}

// 随机生成某个员工的每周排班，周一到周六随机选工作日，周日固定休息
func GenerateRandomWeeklyWorkingHours(employeeID int64) []*domain.WorkingHours {
	workingHours := make([]*domain.WorkingHours, 0, 7)

	for dayOfWeek := 0; dayOfWeek < 7; dayOfWeek++ {
		row := &domain.WorkingHours{
			EmployeeID: employeeID,
			DayOfWeek:  dayOfWeek,
		}

		if dayOfWeek != 0 && rand.Intn(10) < 8 {
			startHour := rand.Intn(3) + 8 // 8~10 点开工
			workHours := rand.Intn(3) + 7 // 工作 7~9 小时

			row.IsWorkingDay = true
			row.StartTime = fmt.Sprintf("%02d:00", startHour)
			row.EndTime = fmt.Sprintf("%02d:00", startHour+workHours)
		}

		workingHours = append(workingHours, row)
	}

	return workingHours
}

var clientSurnames = []string{"钱", "沈", "韩", "冯", "曹", "许", "邓", "萧", "程", "袁"}

// 随机生成某个员工未来几天内的预约
func GenerateRandomAppointment(staffID int64, service *domain.Service) *domain.Appointment {
	clientName := clientSurnames[rand.Intn(len(clientSurnames))] + commonNameCharacters[rand.Intn(len(commonNameCharacters))]

	day := time.Now().AddDate(0, 0, rand.Intn(14)+1)
	startHour := rand.Intn(8) + 9 // 9~16 点开始
	startMinute := rand.Intn(4) * 15
	startTime := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMinute, 0, 0, time.Local)

	return &domain.Appointment{
		StaffID:     staffID,
		ServiceID:   service.ID,
		ClientName:  clientName,
		ClientPhone: fmt.Sprintf("13%09d", rand.Intn(1000000000)),
		StartTime:   startTime,
		Duration:    service.Duration,
		Status:      domain.AppointmentConfirmed,
	}
}

var timeOffTypes = []domain.TimeOffType{
	domain.TimeOffVacation,
	domain.TimeOffSick,
	domain.TimeOffDayOff,
	domain.TimeOffHoliday,
	domain.TimeOffPersonalDay,
}

// 随机生成某个员工未来一个月内的缺勤记录
func GenerateRandomTimeOffEntry(employeeID int64) *domain.TimeOffEntry {
	start := time.Now().AddDate(0, 0, rand.Intn(30)+1)
	end := start.AddDate(0, 0, rand.Intn(5))

	return &domain.TimeOffEntry{
		EmployeeID: employeeID,
		Type:       timeOffTypes[rand.Intn(len(timeOffTypes))],
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
	}
}
