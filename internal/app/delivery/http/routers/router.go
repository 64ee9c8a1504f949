package routers

import (
	"carecapture-service/internal/app/config"
	"carecapture-service/internal/app/delivery/http/middlewares"
	formDrafts "carecapture-service/internal/app/services/core/form_drafts"
	"carecapture-service/internal/app/services/core/questionnaires"
	"carecapture-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	appMiddlewares *middlewares.Middlewares,
	accessLog *logrus.Logger,
	questionnaireController *questionnaires.QuestionnaireController,
	formDraftController *formDrafts.FormDraftController,
) {

	corsOptions := cors.Options{
		AllowedOrigins: internalConfig.App.AllowedOrigins,
		AllowedMethods: []string{
			constvars.MethodGet,
			constvars.MethodPost,
			constvars.MethodPut,
			constvars.MethodDelete,
			constvars.MethodOptions,
		},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderXCSRFToken,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second)
	router.Use(rateLimiter)

	router.Use(appMiddlewares.RequestIDMiddleware)
	router.Use(appMiddlewares.RequestLogger(internalConfig.App, accessLog))
	router.Use(appMiddlewares.Logging(appMiddlewares.Log))
	router.Use(appMiddlewares.ErrorHandler)
	router.Use(appMiddlewares.BodyLimit)

	submitLimiter := middlewares.NewRateLimiter(
		internalConfig.App.SubmitRequestsPerSecond,
		internalConfig.App.SubmitBurst,
		time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
		appMiddlewares.Log,
	)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/questionnaires", func(r chi.Router) {
				attachQuestionnaireRoutes(r, questionnaireController)
			})

			r.Route("/form-drafts", func(r chi.Router) {
				attachFormDraftRoutes(r, submitLimiter, formDraftController)
			})
		})
	})
}
