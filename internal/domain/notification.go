package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateEmployeeMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type WorkOfferMailData struct {
	FullName          string  `json:"fullName"`
	OfferedByName     string  `json:"offeredByName"`
	Date              string  `json:"date"`
	TotalAppointments int     `json:"totalAppointments"`
	TotalHours        float64 `json:"totalHours"`
	BonusAmount       int     `json:"bonusAmount"`
	TimeOffCreditDays int     `json:"timeOffCreditDays"`
	ExpiresAt         string  `json:"expiresAt"`
}
