package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
	"github.com/meiyu-dev/salon-manager/backend/internal/schedule"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CreateWorkOffer 给休假中的员工发送某个冲突日的限时工作邀约
func (h *Handler) CreateWorkOffer(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)

	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		Date          string `json:"date" validate:"required,datetime=2006-01-02"`
		TargetStaffID int64  `json:"targetStaffID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if request.Conflicts == nil {
		h.errorResponse(w, r, "该请求没有预约冲突")
		return
	}

	var day *domain.ConflictDay
	for i := range request.Conflicts.Days {
		if request.Conflicts.Days[i].Date == req.Date {
			day = &request.Conflicts.Days[i]
			break
		}
	}
	if day == nil {
		h.errorResponse(w, r, "该日期没有预约冲突")
		return
	}

	target, err := h.repository.GetEmployeeByID(req.TargetStaffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	sender, err := h.repository.GetEmployeeByID(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	offer := schedule.CreateWorkOffer(request.ID, target.ID, target.FullName, sender.ID, sender.FullName, day, time.Now())

	if err := h.repository.CreateWorkOffer(offer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通过邮件通知被邀请的员工
	message := domain.NotificationMessage{
		Type: "work_offer",
		To:   target.Email,
		Data: domain.WorkOfferMailData{
			FullName:          target.FullName,
			OfferedByName:     sender.FullName,
			Date:              offer.Coverage.Date,
			TotalAppointments: offer.Coverage.TotalAppointments,
			TotalHours:        offer.Coverage.TotalHours,
			BonusAmount:       offer.Compensation.BonusAmount,
			TimeOffCreditDays: offer.Compensation.TimeOffCreditDays,
			ExpiresAt:         offer.ExpiresAt.Format("2006-01-02 15:04"),
		},
	}

	messageData, err := json.Marshal(message)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

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

	h.successResponse(w, r, "邀约发送成功", offer)
}

func (h *Handler) GetRequestWorkOffers(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(RequestCtx).(*domain.Request)

	offers, err := h.repository.GetWorkOffersByRequest(request.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取邀约列表成功", offers)
}

func (h *Handler) GetWorkOfferInfo(w http.ResponseWriter, r *http.Request) {
	offer := r.Context().Value(WorkOfferCtx).(*domain.WorkOffer)
	h.successResponse(w, r, "获取邀约信息成功", offer)
}

// RespondWorkOffer 处理被邀请员工的接受或拒绝。接受后对应冲突日按整天模式分配给该员工。
func (h *Handler) RespondWorkOffer(w http.ResponseWriter, r *http.Request) {
	offer := r.Context().Value(WorkOfferCtx).(*domain.WorkOffer)

	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if offer.TargetStaffID != sub {
		h.errorResponse(w, r, "只有被邀请的员工才能答复该邀约")
		return
	}

	if offer.Status != domain.OfferPending {
		h.errorResponse(w, r, "该邀约已被答复")
		return
	}

	if schedule.IsOfferExpired(offer, time.Now()) {
		h.errorResponse(w, r, "该邀约已过期")
		return
	}

	var req struct {
		Accepted *bool `json:"accepted" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	responded := schedule.ProcessOfferResponse(offer, *req.Accepted, time.Now())

	if err := h.repository.UpdateWorkOfferResponse(responded); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "答复邀约失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if responded.Status == domain.OfferAccepted {
		request, err := h.repository.GetRequestByID(responded.RequestID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		// 邀约覆盖整天，落实时强制把该天切回 single 模式再分配
		updated := schedule.AssignOfferCoverage(request, responded.Coverage.Date, responded.TargetStaffID, responded.TargetStaffName)
		if updated != request {
			if err := h.repository.UpdateRequestConflicts(updated); err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
	}

	h.successResponse(w, r, "答复邀约成功", responded)
}
