package attendance

import (
	"net/http"
	"time"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/logger"
	"hrms/backend/internal/service/attendance"
	"hrms/backend/internal/service/challenge"
	"hrms/backend/internal/service/geofence"

	"github.com/pkg/errors"
)

type Controller struct {
	engine     Submitter
	days       DayReader
	challenges ChallengeConsumer
}

func NewController(engine Submitter, days DayReader, challenges ChallengeConsumer) *Controller {
	return &Controller{engine: engine, days: days, challenges: challenges}
}

// CheckIn handles a web-session check-in.
func (uc Controller) CheckIn(c *web.Context) error {
	return uc.submit(c, attendance.KindCheckIn, entity.SourceWeb)
}

// CheckOut handles a web-session check-out.
func (uc Controller) CheckOut(c *web.Context) error {
	return uc.submit(c, attendance.KindCheckOut, entity.SourceWeb)
}

// SubmitMobile handles a mobile submission. The nonce is consumed before the
// engine runs; failing consumption aborts with no state mutation.
func (uc Controller) SubmitMobile(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	var request MobileSubmitRequest
	if err := c.BindFunc(&request, "Kind", "Nonce", "DeviceID"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.challenges.Consume(c.Ctx, request.Nonce, claims.UserId, request.DeviceID); err != nil {
		if errors.Is(err, challenge.ErrInvalid) {
			return respondKind(c, err)
		}
		logger.Logger.WithError(err).Error("consuming challenge")
		return c.RespondError(err)
	}

	return uc.run(c, claims, attendance.Kind(request.Kind), entity.SourceMobile, request.SubmitBody)
}

func (uc Controller) submit(c *web.Context, kind attendance.Kind, source string) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	var request SubmitBody
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	return uc.run(c, claims, kind, source, request)
}

func (uc Controller) run(c *web.Context, claims auth.Claims, kind attendance.Kind, source string, body SubmitBody) error {
	req := attendance.SubmitRequest{
		TenantID:   claims.TenantID,
		EmployeeID: claims.UserId,
		Kind:       kind,
		Source:     source,
		Accuracy:   body.Accuracy,
		Address:    body.Address,
	}
	if body.Latitude != nil && body.Longitude != nil {
		req.Coordinate = &geofence.Point{Latitude: *body.Latitude, Longitude: *body.Longitude}
	}

	rec, err := uc.engine.Submit(c.Ctx, req)
	if err != nil {
		return respondKind(c, err)
	}

	return c.Respond(map[string]interface{}{
		"data":   rec,
		"status": true,
	}, http.StatusOK)
}

// GetToday returns the caller's record for the current work day.
func (uc Controller) GetToday(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	workDay := time.Now().Format(attendance.WorkDayFormat)

	response, err := uc.days.GetTodayByEmployee(c.Ctx, claims.TenantID, claims.UserId, workDay)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// respondKind maps typed engine outcomes to a status code and a
// machine-readable error code. Anything unmapped is a storage failure and is
// logged as such.
func respondKind(c *web.Context, err error) error {
	type mapping struct {
		status int
		code   string
	}

	known := []struct {
		err error
		m   mapping
	}{
		{attendance.ErrEmployeeNotFound, mapping{http.StatusNotFound, "not_found"}},
		{attendance.ErrAlreadyCheckedIn, mapping{http.StatusConflict, "invalid_state"}},
		{attendance.ErrNotCheckedIn, mapping{http.StatusConflict, "invalid_state"}},
		{attendance.ErrAlreadyCheckedOut, mapping{http.StatusConflict, "invalid_state"}},
		{attendance.ErrLocationRequired, mapping{http.StatusUnprocessableEntity, "location_required"}},
		{attendance.ErrLocationTooInaccurate, mapping{http.StatusUnprocessableEntity, "location_too_inaccurate"}},
		{attendance.ErrNoZonesConfigured, mapping{http.StatusUnprocessableEntity, "no_zones_configured"}},
		{attendance.ErrOutsideGeofence, mapping{http.StatusUnprocessableEntity, "outside_geofence"}},
		{attendance.ErrInvalidCoordinate, mapping{http.StatusBadRequest, "invalid_coordinate"}},
		{attendance.ErrInvalidKind, mapping{http.StatusBadRequest, "invalid_kind"}},
		{challenge.ErrInvalid, mapping{http.StatusUnauthorized, "challenge_invalid"}},
	}

	for _, k := range known {
		if errors.Is(err, k.err) {
			logger.Logger.WithField("error_code", k.m.code).Warn(err.Error())
			c.JSON(k.m.status, map[string]interface{}{
				"status":     false,
				"error":      err.Error(),
				"error_code": k.m.code,
			})
			return nil
		}
	}

	logger.Logger.WithError(err).Error("attendance submission failed")
	return c.RespondError(err)
}
