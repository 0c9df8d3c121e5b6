package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rentdesk/rentdesk/internal/api/cron"
	v1 "github.com/rentdesk/rentdesk/internal/api/v1"
	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/metrics"
	"github.com/rentdesk/rentdesk/internal/rest/middleware"
	"github.com/rentdesk/rentdesk/internal/sentry"
	"github.com/rentdesk/rentdesk/internal/types"
)

type Handlers struct {
	Health          *v1.HealthHandler
	Contract        *v1.ContractHandler
	Installment     *v1.InstallmentHandler
	PriceSuggestion *v1.PriceSuggestionHandler
	Statistics      *v1.StatisticsHandler

	CronInstallment *cron.InstallmentCronHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	if cfg.Logging.Level != types.LogLevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger, sentrySvc),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.TenantMiddleware)
	{
		contracts := v1Group.Group("/contracts")
		{
			contracts.POST("", handlers.Contract.CreateContract)
			contracts.GET("", handlers.Contract.GetContracts)
			contracts.GET("/:id", handlers.Contract.GetContract)
			contracts.PUT("/:id", handlers.Contract.UpdateContract)
			contracts.DELETE("/:id", handlers.Contract.DeleteContract)
			contracts.POST("/:id/schedule", handlers.Contract.GenerateSchedule)
		}

		installments := v1Group.Group("/installments")
		{
			installments.POST("", handlers.Installment.CreateInstallment)
			installments.GET("", handlers.Installment.GetInstallments)
			installments.GET("/:id", handlers.Installment.GetInstallment)
			installments.PUT("/:id", handlers.Installment.UpdateInstallment)
			installments.DELETE("/:id", handlers.Installment.DeleteInstallment)
		}

		v1Group.GET("/prices/suggestions", handlers.PriceSuggestion.Suggest)
		v1Group.GET("/statistics/installments", handlers.Statistics.GetInstallmentStatistics)

		cronGroup := v1Group.Group("/cron")
		{
			cronGroup.POST("/installments/overdue", handlers.CronInstallment.MarkOverdue)
		}
	}

	return router
}
