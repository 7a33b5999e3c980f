package domain

import (
	"time"
)

type Role string

const (
	RoleManager       Role = "店长"
	RoleSeniorStylist Role = "资深美发师"
	RoleStylist       Role = "美发师"
)

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
	EmployeeStatusOnLeave  EmployeeStatus = "on-leave"
)

type Employee struct {
	ID                int64          `json:"id"`
	Username          string         `json:"username"`
	PasswordHash      string         `json:"-"`
	FullName          string         `json:"fullName"`
	Email             string         `json:"email"`
	Avatar            string         `json:"avatar"`
	Role              Role           `json:"role"`
	SpecializationIDs []int64        `json:"specializationIDs"`
	Status            EmployeeStatus `json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	Version           int32          `json:"-"`
}
