package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
)

func (h *Handler) GetAllSpecializations(w http.ResponseWriter, r *http.Request) {
	specializations, err := h.repository.GetAllSpecializations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取专长列表成功", specializations)
}

func (h *Handler) CreateSpecialization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	specialization := &domain.Specialization{
		Name: req.Name,
	}

	if err := h.repository.CreateSpecialization(specialization); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "specializations_name_key":
			h.badRequest(w, r, errors.New("专长名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "专长创建成功", specialization)
}

func (h *Handler) SetSpecializationServices(w http.ResponseWriter, r *http.Request) {
	specializationIDParam := chi.URLParam(r, "id")
	specializationID, err := strconv.ParseInt(specializationIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "专长ID无效")
		return
	}

	var req struct {
		ServiceIDs []int64 `json:"serviceIDs" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.SetSpecializationServices(specializationID, req.ServiceIDs); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "specialization_services_service_id_fkey":
			h.badRequest(w, r, errors.New("服务不存在"))
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "specialization_services_specialization_id_fkey":
			h.badRequest(w, r, errors.New("专长不存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新专长服务成功", nil)
}

func (h *Handler) GetAllServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repository.GetAllServices()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取服务列表成功", services)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Duration int    `json:"duration" validate:"required,min=5"`
		Price    int    `json:"price" validate:"required,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := &domain.Service{
		Name:     req.Name,
		Duration: req.Duration,
		Price:    req.Price,
	}

	if err := h.repository.CreateService(service); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "服务创建成功", service)
}
