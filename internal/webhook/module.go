package webhook

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/httpclient"
	"github.com/rentdesk/rentdesk/internal/pubsub/memory"
	pubsubRouter "github.com/rentdesk/rentdesk/internal/pubsub/router"
	"github.com/rentdesk/rentdesk/internal/webhook/handler"
	"github.com/rentdesk/rentdesk/internal/webhook/payload"
	"github.com/rentdesk/rentdesk/internal/webhook/publisher"
	"go.uber.org/fx"
)

// Module provides all webhook-related dependencies
var Module = fx.Options(
	fx.Provide(
		memory.NewPubSub,
		pubsubRouter.NewRouter,
		httpclient.NewDefaultClient,
		payload.NewBuilder,
		publisher.NewPublisher,
		handler.NewHandler,
		NewWebhookService,
	),
	fx.Invoke(registerHooks),
)

func registerHooks(lc fx.Lifecycle, svc *WebhookService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return svc.Stop()
		},
	})
}
