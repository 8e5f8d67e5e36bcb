package components

import (
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra/receipt"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/internal/pkg/password"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewTieredPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	booking.NewFactory,
	fx.Annotate(
		password.NewBcryptHasher,
		fx.As(new(password.Hasher)),
	),
	func(s *jwt.Service) commands.TokenIssuer { return s },
	fx.Annotate(
		func(cfg config.Config) *receipt.PDFRenderer {
			return receipt.NewPDFRenderer(cfg.App.Currency, cfg.App.Location())
		},
		fx.As(new(queries.ReceiptRenderer)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCategoryCommands,
		commands.NewReviewCommands,
		commands.NewSeedCommands,
		func(uow shared.UnitOfWork, factory *booking.Factory, bookings queries.BookingQueries, clk clock.Clock, cfg config.Config) commands.BookingCommands {
			return commands.NewBookingCommands(uow, factory, bookings, clk, commands.BookingOptions{
				PreventOverlap: cfg.App.PreventOverlap,
			})
		},
		func(uow shared.UnitOfWork, images commands.ImageStore, cache queries.CatalogCache, clk clock.Clock, cfg config.Config) commands.VehicleCommands {
			return commands.NewVehicleCommands(uow, images, cache, clk, cfg.Storage.MaxImageBytes)
		},
		func(uow shared.UnitOfWork, images commands.ImageStore, clk clock.Clock, cfg config.Config) commands.ProfileCommands {
			return commands.NewProfileCommands(uow, images, clk, cfg.Storage.MaxImageBytes)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewVehicleQueries,
		queries.NewHomeQueries,
		queries.NewCategoryQueries,
		queries.NewBookingQueries,
		queries.NewReviewQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
