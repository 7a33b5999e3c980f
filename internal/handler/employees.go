package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
	"github.com/meiyu-dev/salon-manager/backend/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username          string  `json:"username" validate:"required"`
		FullName          string  `json:"fullName" validate:"required"`
		Email             string  `json:"email" validate:"required,email"`
		Role              string  `json:"role" validate:"required,oneof=美发师 资深美发师 店长"`
		SpecializationIDs []int64 `json:"specializationIDs" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 生成随机密码
	password := utils.GenerateRandomPassword(h.config.NewEmployee.PasswordLength)

	// 对密码进行哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 插入员工到数据库中
	employee := &domain.Employee{
		Username:          req.Username,
		PasswordHash:      string(hashedPassword),
		FullName:          req.FullName,
		Email:             req.Email,
		Role:              domain.Role(req.Role),
		SpecializationIDs: req.SpecializationIDs,
		Status:            domain.EmployeeStatusActive,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "employees_username_key":
				h.badRequest(w, r, errors.New("用户名已存在"))
			case pgErr.ConstraintName == "employees_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			case pgErr.ConstraintName == "employee_specializations_specialization_id_fkey":
				h.badRequest(w, r, errors.New("专长不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 准备邮件
	message := domain.NotificationMessage{
		Type: "create_employee",
		To:   employee.Email,
		Data: domain.CreateEmployeeMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	// 对邮件进行序列化
	messageData, err := json.Marshal(message)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 将邮件发送到消息队列
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        messageData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 成功响应
	h.successResponse(w, r, "员工创建成功", employee)
}

func (h *Handler) GetEmployeeInfo(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)
	h.successResponse(w, r, "获取员工信息成功", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email             *string `json:"email" validate:"omitempty,email"`
		Role              *string `json:"role" validate:"omitempty,oneof=美发师 资深美发师 店长"`
		Status            *string `json:"status" validate:"omitempty,oneof=active inactive on-leave"`
		SpecializationIDs []int64 `json:"specializationIDs" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Role != nil {
		employee.Role = domain.Role(*req.Role)
	}
	if req.Status != nil {
		employee.Status = domain.EmployeeStatus(*req.Status)
	}
	if req.SpecializationIDs != nil {
		employee.SpecializationIDs = req.SpecializationIDs
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "employees_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			case pgErr.ConstraintName == "employee_specializations_specialization_id_fkey":
				h.badRequest(w, r, errors.New("专长不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新员工信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工信息成功", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}

func (h *Handler) GetEmployeeWorkingHours(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	workingHours, err := h.repository.GetWorkingHoursByEmployee(employee.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取每周排班成功", workingHours)
}

func (h *Handler) ReplaceEmployeeWorkingHours(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	var req struct {
		WorkingHours []struct {
			DayOfWeek    int    `json:"dayOfWeek" validate:"min=0,max=6"`
			IsWorkingDay bool   `json:"isWorkingDay"`
			StartTime    string `json:"startTime"`
			EndTime      string `json:"endTime"`
		} `json:"workingHours" validate:"required,len=7,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	workingHours := make([]*domain.WorkingHours, 0, len(req.WorkingHours))
	for _, row := range req.WorkingHours {
		workingHours = append(workingHours, &domain.WorkingHours{
			EmployeeID:   employee.ID,
			DayOfWeek:    row.DayOfWeek,
			IsWorkingDay: row.IsWorkingDay,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
		})
	}

	if err := utils.ValidateWeeklyWorkingHours(workingHours); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.ReplaceEmployeeWorkingHours(employee.ID, workingHours); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新每周排班成功", workingHours)
}

func (h *Handler) GetEmployeeTimeOff(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	entries, err := h.repository.GetTimeOffEntriesByEmployee(employee.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取缺勤记录成功", entries)
}
