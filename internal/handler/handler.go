package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/meiyu-dev/salon-manager/backend/internal/config"
	"github.com/meiyu-dev/salon-manager/backend/internal/domain"
	"github.com/meiyu-dev/salon-manager/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
			r.Get("/offers", h.GetMyWorkOffers)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees) // 排班和改派需要看到同事信息，因此不限角色
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployeeInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteEmployee)
				r.Get("/working-hours", h.GetEmployeeWorkingHours)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/working-hours", h.ReplaceEmployeeWorkingHours)
				r.Get("/time-off", h.GetEmployeeTimeOff)
			})
		})

		r.Route("/specializations", func(r chi.Router) {
			r.Get("/", h.GetAllSpecializations)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateSpecialization)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/{id}/services", h.SetSpecializationServices)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.GetAllServices)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateService)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", h.CreateAppointment)
			r.Get("/", h.GetAllAppointments)
			r.Get("/available-slots", h.GetAvailableSlots)
			r.Get("/sequential-slots", h.GetSequentialSlots)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.appointmentInfo)
				r.Get("/", h.GetAppointmentInfo)
				r.Patch("/status", h.UpdateAppointmentStatus)
			})
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", h.CreateRequest)
			r.Get("/", h.GetAllRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.requestInfo)
				r.Get("/", h.GetRequestInfo)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/approve", h.ApproveRequest)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/deny", h.DenyRequest)
				r.Get("/replacements", h.GetReplacementsForDay)
				r.Get("/suggestion", h.GetSmartSuggestion)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/suggestion/apply", h.ApplySmartSuggestion)
				r.Route("/days/{date}", func(r chi.Router) {
					r.Use(h.RequiredRole([]domain.Role{domain.RoleManager}))
					r.Patch("/mode", h.SetDayAssignmentMode)
					r.Put("/full-day", h.AssignFullDay)
					r.Put("/specializations/{specializationID}", h.AssignSpecialization)
					r.Put("/appointments/{appointmentID}", h.AssignAppointment)
				})
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/offers", h.CreateWorkOffer)
				r.Get("/offers", h.GetRequestWorkOffers)
			})
		})

		r.Route("/offers", func(r chi.Router) {
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workOfferInfo)
				r.Get("/", h.GetWorkOfferInfo)
				r.Post("/respond", h.RespondWorkOffer)
			})
		})
	})
}
