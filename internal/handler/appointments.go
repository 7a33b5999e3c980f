package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
	"github.com/meiyu-dev/salon-manager/backend/internal/schedule"
)

// 取某员工某天的全部可用性快照，供核心计算使用
func (h *Handler) loadStaffScheduleSnapshot(staffID int64) ([]*domain.Appointment, []*domain.WorkingHours, []*domain.TimeOffEntry, error) {
	appointments, err := h.repository.GetAppointmentsByStaff(staffID)
	if err != nil {
		return nil, nil, nil, err
	}

	workingHours, err := h.repository.GetWorkingHoursByEmployee(staffID)
	if err != nil {
		return nil, nil, nil, err
	}

	timeOffEntries, err := h.repository.GetTimeOffEntriesByEmployee(staffID)
	if err != nil {
		return nil, nil, nil, err
	}

	return appointments, workingHours, timeOffEntries, nil
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID     int64  `json:"staffID" validate:"required"`
		ServiceID   int64  `json:"serviceID" validate:"required"`
		ClientName  string `json:"clientName" validate:"required"`
		ClientPhone string `json:"clientPhone" validate:"required"`
		Date        string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service, err := h.repository.GetServiceByID(req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "服务不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	appointments, workingHours, timeOffEntries, err := h.loadStaffScheduleSnapshot(req.StaffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !schedule.IsTimeSlotAvailable(req.StaffID, req.Date, req.StartTime, service.Duration, appointments, workingHours, timeOffEntries) {
		h.errorResponse(w, r, "该时间段不可预约")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointment := &domain.Appointment{
		StaffID:     req.StaffID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		StartTime:   schedule.CombineDateAndTime(date, req.StartTime),
		Duration:    service.Duration,
		Status:      domain.AppointmentConfirmed,
	}

	if err := h.repository.CreateAppointment(appointment); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "appointments_staff_id_fkey":
			h.badRequest(w, r, errors.New("员工不存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "预约创建成功", appointment)
}

func (h *Handler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")

	var appointments []*domain.Appointment
	var err error

	if startDate != "" && endDate != "" {
		appointments, err = h.repository.GetAppointmentsByDateRange(startDate, endDate)
	} else {
		appointments, err = h.repository.GetAllAppointments()
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取预约列表成功", appointments)
}

func (h *Handler) GetAppointmentInfo(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)
	h.successResponse(w, r, "获取预约信息成功", appointment)
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	var req struct {
		Status string `json:"status" validate:"required,oneof=confirmed running-late in-progress completed cancelled no-show"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointment.Status = domain.AppointmentStatus(req.Status)

	if err := h.repository.UpdateAppointmentStatus(appointment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新预约状态失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新预约状态成功", appointment)
}

func (h *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	staffIDParam := r.URL.Query().Get("staffID")
	staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "员工ID无效")
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		h.errorResponse(w, r, "日期无效")
		return
	}

	serviceIDParam := r.URL.Query().Get("serviceID")
	serviceID, err := strconv.ParseInt(serviceIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "服务ID无效")
		return
	}

	service, err := h.repository.GetServiceByID(serviceID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "服务不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	appointments, workingHours, timeOffEntries, err := h.loadStaffScheduleSnapshot(staffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slots := schedule.GetAvailableTimeSlots(staffID, date, service.Duration, appointments, workingHours, timeOffEntries, h.config.Booking.SlotInterval)

	h.successResponse(w, r, "获取可用时间段成功", slots)
}

// GetSequentialSlots 查询可以连续完成多个服务的开始时间段，serviceIDs 以逗号分隔
func (h *Handler) GetSequentialSlots(w http.ResponseWriter, r *http.Request) {
	staffIDParam := r.URL.Query().Get("staffID")
	staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "员工ID无效")
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		h.errorResponse(w, r, "日期无效")
		return
	}

	serviceIDsParam := r.URL.Query().Get("serviceIDs")
	serviceIDs := make([]int64, 0)
	for _, part := range strings.Split(serviceIDsParam, ",") {
		serviceID, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			h.errorResponse(w, r, "服务ID无效")
			return
		}
		serviceIDs = append(serviceIDs, serviceID)
	}

	services, err := h.repository.GetServicesByIDs(serviceIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(services) != len(serviceIDs) {
		h.errorResponse(w, r, "服务不存在")
		return
	}

	appointments, workingHours, timeOffEntries, err := h.loadStaffScheduleSnapshot(staffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slots := schedule.GetSequentialTimeSlots(staffID, date, services, appointments, workingHours, timeOffEntries, h.config.Booking.SlotInterval)

	h.successResponse(w, r, "获取可用时间段成功", slots)
}
