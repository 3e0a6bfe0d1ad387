package policy

import (
	"net/http"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/repository/postgres/policy"
)

type Controller struct {
	policy Policy
}

func NewController(policy Policy) *Controller {
	return &Controller{policy}
}

// Get returns the caller's tenant policy, falling back to the defaults when
// the tenant never saved one.
func (uc Controller) Get(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	response, err := uc.policy.GetByTenant(c.Ctx, claims.TenantID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// Upsert applies an administrative policy change. Fields absent from the
// body keep their stored values.
func (uc Controller) Upsert(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	var request policy.UpsertRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.TenantID = claims.TenantID

	response, err := uc.policy.Upsert(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
