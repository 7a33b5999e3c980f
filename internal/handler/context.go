package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	MyInfoCtx       ContextKey = "myInfo"
	EmployeeInfoCtx ContextKey = "employeeInfo"
	AppointmentCtx  ContextKey = "appointment"
	RequestCtx      ContextKey = "request"
	WorkOfferCtx    ContextKey = "workOffer"
)
