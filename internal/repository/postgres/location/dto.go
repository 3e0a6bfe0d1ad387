package location

type CreateRequest struct {
	TenantID     int      `json:"-"`
	Name         *string  `json:"name" form:"name"`
	Latitude     *float64 `json:"latitude" form:"latitude"`
	Longitude    *float64 `json:"longitude" form:"longitude"`
	RadiusMeters *float64 `json:"radius_meters" form:"radius_meters"`
}

type UpdateRequest struct {
	ID           int      `json:"-"`
	TenantID     int      `json:"-"`
	Name         *string  `json:"name" form:"name"`
	Latitude     *float64 `json:"latitude" form:"latitude"`
	Longitude    *float64 `json:"longitude" form:"longitude"`
	RadiusMeters *float64 `json:"radius_meters" form:"radius_meters"`
	IsActive     *bool    `json:"is_active" form:"is_active"`
}
