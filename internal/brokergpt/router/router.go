// Package router wires the BrokerGPT HTTP API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/internal/brokergpt/handler"
	"github.com/kart-io/brokergpt/internal/brokergpt/middleware"
	"github.com/kart-io/brokergpt/internal/brokergpt/store"
)

// Services bundles the business services the routes depend on.
type Services struct {
	Clients  *biz.ClientService
	Carriers *biz.CarrierService
	Policies *biz.PolicyService
	Records  *biz.RecordService
	Chat     *biz.ChatService
	Research *biz.ResearchService

	Bootstrapper *store.Bootstrapper
}

// New builds the gin engine with the full middleware stack and all routes.
func New(svcs *Services) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	healthHandler := handler.NewHealthHandler(svcs.Bootstrapper)
	engine.GET("/healthz", healthHandler.Healthz)

	clientHandler := handler.NewClientHandler(svcs.Clients)
	carrierHandler := handler.NewCarrierHandler(svcs.Carriers)
	policyHandler := handler.NewPolicyHandler(svcs.Policies)
	recordHandler := handler.NewRecordHandler(svcs.Records)
	chatHandler := handler.NewChatHandler(svcs.Chat)
	researchHandler := handler.NewResearchHandler(svcs.Research)

	v1 := engine.Group("/api/v1")
	{
		clients := v1.Group("/clients")
		{
			clients.GET("", clientHandler.List)
			clients.POST("", clientHandler.Create)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
			clients.GET("/:id/records", recordHandler.ListByClient)
			clients.GET("/:id/recommendations", carrierHandler.Recommend)
		}

		carriers := v1.Group("/carriers")
		{
			carriers.GET("", carrierHandler.List)
			carriers.POST("", carrierHandler.Create)
			carriers.POST("/match", carrierHandler.Match)
			carriers.GET("/:id", carrierHandler.Get)
			carriers.PUT("/:id", carrierHandler.Update)
			carriers.DELETE("/:id", carrierHandler.Delete)
		}
		policies := v1.Group("/policies")
		{
			policies.GET("", policyHandler.List)
			policies.POST("", policyHandler.Create)
			policies.GET("/:id", policyHandler.Get)
			policies.PUT("/:id", policyHandler.Update)
			policies.DELETE("/:id", policyHandler.Delete)
		}

		recordTypes := v1.Group("/record-types")
		{
			recordTypes.GET("", recordHandler.ListTypes)
			recordTypes.POST("", recordHandler.CreateType)
			recordTypes.GET("/:id", recordHandler.GetType)
		}

		records := v1.Group("/records")
		{
			records.GET("/:id", recordHandler.Get)
			records.POST("", recordHandler.Create)
			records.PUT("/:id", recordHandler.Update)
			records.DELETE("/:id", recordHandler.Delete)
		}
		chat := v1.Group("/chat")
		{
			chat.GET("", chatHandler.Transcript)
			chat.POST("", chatHandler.Send)
			chat.POST("/extract", chatHandler.Extract)
		}

		v1.POST("/research", researchHandler.Research)
	}

	return engine
}
