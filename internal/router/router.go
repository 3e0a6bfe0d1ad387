package router

import (
	"time"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/middleware"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/service/attendance"
	"hrms/backend/internal/service/challenge"
	"hrms/backend/internal/service/ratelimit"
	"hrms/backend/internal/service/token"

	"github.com/redis/go-redis/v9"

	attendance_repo "hrms/backend/internal/repository/postgres/attendance"
	"hrms/backend/internal/repository/postgres/device"
	"hrms/backend/internal/repository/postgres/location"
	"hrms/backend/internal/repository/postgres/policy"
	token_repo "hrms/backend/internal/repository/postgres/token"
	"hrms/backend/internal/repository/postgres/user"

	attendance_controller "hrms/backend/internal/controller/http/v1/attendance"
	auth_controller "hrms/backend/internal/controller/http/v1/auth"
	location_controller "hrms/backend/internal/controller/http/v1/location"
	policy_controller "hrms/backend/internal/controller/http/v1/policy"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	port       string
	auth       *auth.Auth
	baseURL    string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	port string,
	auth *auth.Auth,
	baseURL string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		port,
		auth,
		baseURL,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.baseURL))

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	devicePostgres := device.NewRepository(r.postgresDB)
	policyPostgres := policy.NewRepository(r.postgresDB)
	locationPostgres := location.NewRepository(r.postgresDB)
	attendancePostgres := attendance_repo.NewRepository(r.postgresDB)
	tokenPostgres := token_repo.NewRepository(r.postgresDB)

	// services
	engine := attendance.NewEngine(userPostgres, locationPostgres, policyPostgres, attendancePostgres)
	challenges := challenge.NewIssuer(challenge.NewRedisStore(r.redisDB), devicePostgres)
	tokens := token.NewManager(tokenPostgres)
	limiter := ratelimit.NewInMemory(time.Minute)

	// controller
	attendanceController := attendance_controller.NewController(engine, attendancePostgres, challenges)
	authController := auth_controller.NewController(userPostgres, devicePostgres, challenges, tokens, r.auth)
	policyController := policy_controller.NewController(policyPostgres)
	locationController := location_controller.NewController(locationPostgres)

	// #mobile auth
	r.Post("/api/v1/mobile/sign-in", authController.SignInMobile,
		middleware.RateLimit(limiter, "mobile-sign-in", 10, time.Minute))
	r.Post("/api/v1/mobile/refresh", authController.RefreshToken,
		middleware.RateLimit(limiter, "mobile-refresh", 30, time.Minute))
	r.Post("/api/v1/mobile/logout", authController.Logout,
		middleware.RateLimit(limiter, "mobile-logout", 10, time.Minute),
		middleware.Authenticate(r.auth))
	r.Post("/api/v1/mobile/challenge", authController.Challenge, middleware.Authenticate(r.auth))

	// #attendance
	r.Post("/api/v1/attendance/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Post("/api/v1/mobile/attendance", attendanceController.SubmitMobile, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/today", attendanceController.GetToday, middleware.Authenticate(r.auth))

	// #policy
	r.Get("/api/v1/policy", policyController.Get, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/policy", policyController.Upsert, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #location
	r.Get("/api/v1/location/list", locationController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/location/create", locationController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/location/:id", locationController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/location/:id", locationController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.port)
}
