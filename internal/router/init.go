package router

import (
	"github.com/devtrails/campdirect/internal/application"
	"github.com/devtrails/campdirect/internal/container"
	pginfra "github.com/devtrails/campdirect/internal/infrastructure/postgres"
	handlers "github.com/devtrails/campdirect/internal/interface/http"
	"github.com/devtrails/campdirect/internal/interface/middleware"
	"github.com/devtrails/campdirect/internal/router/modules"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	bootcamps := pginfra.NewBootcampRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)

	gate := middleware.Authenticate(users, container.GetTokens())

	authSvc := application.NewAuthService(
		users,
		container.GetTokens(),
		container.GetMailSender(),
		container.GetRabbitPub(),
		container.GetLogger(),
		cfg.PublicBaseURL,
	)
	bootcampSvc := &application.BootcampService{
		Bootcamps:    bootcamps,
		Courses:      courses,
		Reviews:      reviews,
		Geo:          container.GetGeocoder(),
		GCS:          container.GetGCS(),
		GCSBucket:    cfg.GCSBucket,
		MaxPhotoSize: cfg.MaxPhotoUploadSize,
		ES:           container.GetES(),
		ESIndex:      cfg.ESBootcampsIndex,
		Logger:       container.GetLogger(),
	}
	courseSvc := &application.CourseService{Courses: courses, Bootcamps: bootcamps}
	reviewSvc := &application.ReviewService{Reviews: reviews, Bootcamps: bootcamps}
	userSvc := &application.UserService{Users: users}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, container.GetCookies()), gate))
	r.Add(modules.NewBootcampModule(
		handlers.NewBootcampHandler(bootcampSvc),
		handlers.NewCourseHandler(courseSvc),
		handlers.NewReviewHandler(reviewSvc),
		gate,
	))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(courseSvc), gate))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(reviewSvc), gate))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc), gate))
	r.Add(modules.NewDebugModule())
}
