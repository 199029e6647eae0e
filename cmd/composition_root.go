package cmd

import (
	"errors"
	"fmt"

	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/localstorage"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/counterrepo"
	"storefront/internal/adapters/out/redis"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	pipeline   *services.OrderConsistencyPipeline
	publisher  ports.OrderEventPublisher
	images     ports.ImageStorage
	logger     *zap.Logger

	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, reg prometheus.Registerer, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
	if err := c.wire(cfg, reg); err != nil {
		return nil, err
	}
	return c, nil
}

// wire builds the adapters and services. Connections opened before a failing
// step are closed before it returns.
func (c *CompositionRoot) wire(cfg Config, reg prometheus.Registerer) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(err, c.Close())
		}
	}()

	store, err := c.counterStore(cfg)
	if err != nil {
		return err
	}

	orderMetrics, err := metrics.NewOrderMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	allocator, err := services.NewSequenceAllocator(store, c.logger, orderMetrics)
	if err != nil {
		return err
	}
	c.pipeline, err = services.NewOrderConsistencyPipeline(allocator, c.logger, orderMetrics)
	if err != nil {
		return err
	}

	c.publisher, err = c.eventPublisher(cfg)
	if err != nil {
		return err
	}

	c.images, err = localstorage.NewImageStorage(cfg.UploadDir, cfg.UploadBaseURL)
	return err
}

func (c *CompositionRoot) counterStore(cfg Config) (ports.CounterStore, error) {
	switch cfg.CounterBackend {
	case CounterBackendPostgres, "":
		return counterrepo.NewGormCounterStore(c.gormDB), nil
	case CounterBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		c.closers = append(c.closers, client.Close)
		return redis.NewCounterStore(client)
	default:
		return nil, fmt.Errorf("unknown counter backend %q", cfg.CounterBackend)
	}
}

func (c *CompositionRoot) eventPublisher(cfg Config) (ports.OrderEventPublisher, error) {
	if cfg.KafkaHost == "" {
		c.logger.Warn("KAFKA_HOST is not set, order events are discarded")
		return kafka.NopPublisher{}, nil
	}

	writer, err := kafka.NewWriter(cfg.KafkaHost, cfg.KafkaOrderChangedTopic)
	if err != nil {
		return nil, err
	}
	publisher, err := kafka.NewOrderEventPublisher(writer)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, publisher.Close)
	return publisher, nil
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	return err
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.pipeline, c.publisher, c.logger)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.pipeline, c.publisher, c.logger)
	return &h
}

func (c *CompositionRoot) CreateMarkOrderDeliveredCommandHandler() *commands.MarkOrderDeliveredCommandHandler {
	h := commands.NewMarkOrderDeliveredCommandHandler(c.orderUoWFactory(), c.pipeline, c.publisher, c.logger)
	return &h
}

func (c *CompositionRoot) CreateReconcileDeliveredOrdersCommandHandler() *commands.ReconcileDeliveredOrdersCommandHandler {
	h := commands.NewReconcileDeliveredOrdersCommandHandler(c.orderUoWFactory(), c.pipeline, c.publisher, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUndeliveredOrdersQueryHandler() queries.GetUndeliveredOrdersQueryHandler {
	return queries.NewGetUndeliveredOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) ImageStorage() ports.ImageStorage {
	return c.images
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
