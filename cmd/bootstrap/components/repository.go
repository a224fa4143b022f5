package components

import (
	"go-shop/internal/infra/db"
	"go-shop/internal/infra/invoicefs"
	"go-shop/internal/infra/payment"
	"go-shop/internal/infra/readstore"
	"go-shop/internal/infra/repository"
	"go-shop/internal/infra/uow"
	"go-shop/internal/usecase"
	"go-shop/internal/usecase/commands"
	"go-shop/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductViewRepo)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartViewRepo)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
		// External adapters
		fx.Annotate(
			payment.NewStripeGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			invoicefs.NewStore,
			fx.As(new(usecase.InvoiceStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
