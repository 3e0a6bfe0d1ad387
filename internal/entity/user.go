package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	TenantID   *int    `json:"tenant_id"   bun:"tenant_id"`
	EmployeeID *string `json:"employee_id" bun:"employee_id"`
	FullName   *string `json:"full_name"   bun:"full_name"`
	Password   *string `json:"password"    bun:"password"`
	Role       *string `json:"role"        bun:"role"`
	Phone      *string `json:"phone"       bun:"phone"`
	Email      *string `json:"email"       bun:"email"`
}
