package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
	"github.com/meiyu-dev/salon-manager/backend/internal/schedule"
	"github.com/meiyu-dev/salon-manager/backend/internal/utils"
)

// 取冲突检测和替班排序所需的全店快照
func (h *Handler) loadSalonSnapshot() ([]*domain.Employee, []*domain.WorkingHours, []*domain.TimeOffEntry, []*domain.ServiceRelationship, error) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	workingHours, err := h.repository.GetAllWorkingHours()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	timeOffEntries, err := h.repository.GetAllTimeOffEntries()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	relationships, err := h.repository.GetAllServiceRelationships()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return employees, workingHours, timeOffEntries, relationships, nil
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		Type        string `json:"type" validate:"required,oneof=time-off shift-swap"`
		TimeOffType string `json:"timeOffType" validate:"required,oneof=vacation sick day-off holiday personal-day"`
		StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
		Reason      string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检测该区间内请求者名下会受影响的预约
	appointments, err := h.repository.GetAppointmentsByDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	services, err := h.repository.GetAllServices()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	relationships, err := h.repository.GetAllServiceRelationships()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	conflicts := schedule.DetectTimeOffConflicts(sub, req.StartDate, req.EndDate, appointments, services, relationships, employees)

	request := &domain.Request{
		RequesterID: sub,
		Type:        domain.RequestType(req.Type),
		TimeOffType: domain.TimeOffType(req.TimeOffType),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      req.Reason,
		Status:      domain.RequestPending,
		Conflicts:   schedule.BuildRequestConflicts(conflicts),
	}

	if err := h.repository.CreateRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "请求创建成功", request)
}

func (h *Handler) GetAllRequests(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(r.Context().Value(RoleCtxKey).(string))

	// 店长可以看到全部请求，其他员工只能看到自己的
	if role == domain.RoleManager {
		requests, err := h.repository.GetAllRequests()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "获取请求列表成功", requests)
		return
	}

	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	requests, err := h.repository.GetRequestsByRequester(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取请求列表成功", requests)
}

func (h *Handler) GetRequestInfo(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)
	h.successResponse(w, r, "获取请求信息成功", request)
}

// 将已解决的分配方案换算成 接手员工 -> 预约ID列表
func collectReassignments(request *domain.Request) map[int64][]int64 {
	reassignments := make(map[int64][]int64)

	if request.Conflicts == nil {
		return reassignments
	}

	for _, day := range request.Conflicts.Days {
		switch day.AssignmentMode {
		case domain.AssignmentModeSingle:
			if day.Assignments.FullDay != nil {
				staffID := day.Assignments.FullDay.StaffID
				reassignments[staffID] = append(reassignments[staffID], day.Assignments.FullDay.AppointmentIDs...)
			}
		case domain.AssignmentModeSplit:
			for _, apt := range day.Appointments {
				for _, svc := range apt.Services {
					if assignment, ok := day.Assignments.BySpecialization[svc.SpecializationID]; ok {
						reassignments[assignment.StaffID] = append(reassignments[assignment.StaffID], apt.AppointmentID)
					}
				}
			}
		case domain.AssignmentModeIndividual:
			for aptID, assignment := range day.Assignments.Individual {
				reassignments[assignment.StaffID] = append(reassignments[assignment.StaffID], aptID)
			}
		}
	}

	return reassignments
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)

	if request.Status != domain.RequestPending {
		h.errorResponse(w, r, "该请求已被处理")
		return
	}

	if !schedule.IsFullyResolved(request) {
		h.errorResponse(w, r, "仍有未解决的预约冲突，无法批准")
		return
	}

	entry := &domain.TimeOffEntry{
		EmployeeID: request.RequesterID,
		Type:       request.TimeOffType,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
	}

	// 批准、写入缺勤记录和预约改派在同一事务中完成
	if err := h.repository.ApproveRequestWithTimeOff(request, entry, collectReassignments(request)); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "批准请求失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "请求批准成功", request)
}

func (h *Handler) DenyRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)

	if request.Status != domain.RequestPending {
		h.errorResponse(w, r, "该请求已被处理")
		return
	}

	request.Status = domain.RequestDenied

	if err := h.repository.UpdateRequestStatus(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "拒绝请求失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "请求已拒绝", request)
}

// GetReplacementsForDay 返回某个冲突日的替班候选名单，按可用性排序
func (h *Handler) GetReplacementsForDay(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)

	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		h.errorResponse(w, r, "日期无效")
		return
	}

	if request.Conflicts == nil {
		h.errorResponse(w, r, "该请求没有预约冲突")
		return
	}

	var day *domain.ConflictDay
	for i := range request.Conflicts.Days {
		if request.Conflicts.Days[i].Date == date {
			day = &request.Conflicts.Days[i]
			break
		}
	}
	if day == nil {
		h.errorResponse(w, r, "该日期没有预约冲突")
		return
	}

	employees, workingHours, timeOffEntries, relationships, err := h.loadSalonSnapshot()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	appointments, err := h.repository.GetAppointmentsByDateRange(date, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	replacements := schedule.FindReplacementStaffForDay(day, employees, request.RequesterID, date, appointments, workingHours, timeOffEntries, relationships, nil)

	h.successResponse(w, r, "获取替班候选成功", replacements)
}

func (h *Handler) GetSmartSuggestion(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)

	employees, workingHours, timeOffEntries, relationships, err := h.loadSalonSnapshot()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	appointments, err := h.repository.GetAppointmentsByDateRange(request.StartDate, request.EndDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	suggestion := schedule.GenerateSmartSuggestion(request, employees, appointments, workingHours, timeOffEntries, relationships)

	h.successResponse(w, r, "获取推荐方案成功", suggestion)
}

func (h *Handler) ApplySmartSuggestion(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)

	employees, workingHours, timeOffEntries, relationships, err := h.loadSalonSnapshot()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	appointments, err := h.repository.GetAppointmentsByDateRange(request.StartDate, request.EndDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	suggestion := schedule.GenerateSmartSuggestion(request, employees, appointments, workingHours, timeOffEntries, relationships)
	if suggestion.Suggestion == nil {
		h.errorResponse(w, r, "没有可应用的推荐方案")
		return
	}

	updated := schedule.ApplySmartSuggestion(request, suggestion)

	if err := h.repository.UpdateRequestConflicts(updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "应用推荐方案失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "应用推荐方案成功", updated)
}

func (h *Handler) SetDayAssignmentMode(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)
	date := chi.URLParam(r, "date")

	var req struct {
		Mode string `json:"mode" validate:"required,oneof=single split individual"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated := schedule.SetDayAssignmentMode(request, date, domain.AssignmentMode(req.Mode))
	if updated == request {
		h.errorResponse(w, r, "该日期没有预约冲突")
		return
	}

	if err := h.repository.UpdateRequestConflicts(updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新分配方式失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新分配方式成功", updated)
}

func (h *Handler) lookupStaffName(w http.ResponseWriter, r *http.Request, staffID int64) (string, bool) {
	staff, err := h.repository.GetEmployeeByID(staffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return "", false
	}
	return staff.FullName, true
}

func (h *Handler) AssignFullDay(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)
	date := chi.URLParam(r, "date")

	var req struct {
		StaffID int64 `json:"staffID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staffName, ok := h.lookupStaffName(w, r, req.StaffID)
	if !ok {
		return
	}

	updated := schedule.AssignFullDay(request, date, req.StaffID, staffName)
	if updated == request {
		h.errorResponse(w, r, "该日期没有预约冲突")
		return
	}

	if err := h.repository.UpdateRequestConflicts(updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新分配方案失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "整天替班分配成功", updated)
}

func (h *Handler) AssignSpecialization(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)
	date := chi.URLParam(r, "date")

	specializationIDParam := chi.URLParam(r, "specializationID")
	specializationID, err := strconv.ParseInt(specializationIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "专长ID无效")
		return
	}

	var req struct {
		StaffID int64 `json:"staffID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staffName, ok := h.lookupStaffName(w, r, req.StaffID)
	if !ok {
		return
	}

	updated := schedule.AssignSpecialization(request, date, specializationID, req.StaffID, staffName)
	if updated == request {
		h.errorResponse(w, r, "该日期没有预约冲突")
		return
	}

	if err := h.repository.UpdateRequestConflicts(updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新分配方案失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "按专长分配成功", updated)
}

func (h *Handler) AssignAppointment(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)
	date := chi.URLParam(r, "date")

	appointmentIDParam := chi.URLParam(r, "appointmentID")
	appointmentID, err := strconv.ParseInt(appointmentIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "预约ID无效")
		return
	}

	var req struct {
		StaffID int64 `json:"staffID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staffName, ok := h.lookupStaffName(w, r, req.StaffID)
	if !ok {
		return
	}

	updated := schedule.AssignAppointment(request, date, appointmentID, req.StaffID, staffName)
	if updated == request {
		h.errorResponse(w, r, "该日期没有预约冲突")
		return
	}

	if err := h.repository.UpdateRequestConflicts(updated); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新分配方案失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "单个预约分配成功", updated)
}
