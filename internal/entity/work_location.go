package entity

import (
	"github.com/uptrace/bun"
)

// TenantWorkLocation is a named circular zone where attendance submissions
// are valid when the tenant enforces geofencing.
type TenantWorkLocation struct {
	bun.BaseModel `bun:"table:work_location"`

	BasicEntity
	TenantID     int     `json:"tenant_id"     bun:"tenant_id"`
	Name         string  `json:"name"          bun:"name"`
	Latitude     float64 `json:"latitude"      bun:"latitude"`
	Longitude    float64 `json:"longitude"     bun:"longitude"`
	RadiusMeters float64 `json:"radius_meters" bun:"radius_meters"`
	IsActive     bool    `json:"is_active"     bun:"is_active"`
}
