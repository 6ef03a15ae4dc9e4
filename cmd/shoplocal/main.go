package main

import (
	"context"
	"log/slog"
	"os"

	"shoplocal/config"
	"shoplocal/internal/delivery"
	"shoplocal/internal/delivery/http"
	"shoplocal/internal/delivery/http/middleware"
	"shoplocal/internal/delivery/http/router/handler"
	"shoplocal/internal/infra/auth"
	"shoplocal/internal/infra/auth/google"
	logs "shoplocal/internal/infra/log"
	"shoplocal/internal/infra/persistence/sqlite"
	"shoplocal/internal/infra/pubsub"
	"shoplocal/internal/infra/qrcode"
	"shoplocal/internal/infra/wordpress"
	"shoplocal/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
		wordpress.NewClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewSessionRepository,
			sqlite.NewVisitRepository,
			sqlite.NewCartRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewTokenMinter,
			auth.NewCredentialSealer,
			google.NewVerifier,
			wordpress.NewAuthGateway,
			wordpress.NewProfileGateway,
			wordpress.NewListingGateway,
			wordpress.NewVendorGateway,
			pubsub.NewEventPublisher,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewListingService,
			impl.NewVendorService,
			impl.NewCartService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewSessionHandler,
			handler.NewListingHandler,
			handler.NewVendorHandler,
			handler.NewCartHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
