package cmd

import (
	"time"

	httpin "deliveryportal/internal/adapters/in/http"
	"deliveryportal/internal/adapters/out/kafka"
	"deliveryportal/internal/adapters/out/postgres"
	"deliveryportal/internal/core/application/usecases/commands"
	"deliveryportal/internal/core/application/usecases/queries"
	"deliveryportal/internal/core/domain/model/kernel"
	"deliveryportal/internal/core/domain/services"
	"deliveryportal/internal/core/ports"
	"deliveryportal/internal/jobs"
	"deliveryportal/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *zap.Logger
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	publisher  *kafka.OrderEventPublisher
	clock      func() time.Time
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var publisher *kafka.OrderEventPublisher
	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		publisher = kafka.NewOrderEventPublisher(brokers, config.KafkaOrderChangedTopic, logger)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   registry,
		metrics:    metrics.New(registry),
		publisher:  publisher,
		clock:      time.Now,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// orderRepository returns a repository outside any transaction, for reads.
func (c *CompositionRoot) orderRepository() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) eventPublisher() ports.OrderEventPublisher {
	if c.publisher == nil {
		return nil
	}
	return c.publisher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.eventPublisher(), c.clock)
}

func (c *CompositionRoot) CreateFeeEstimator() (services.FeeEstimator, error) {
	base, err := kernel.NewMoney(c.config.FeeBase)
	if err != nil {
		return nil, err
	}
	ceiling, err := kernel.NewMoney(c.config.FeeVariableCeiling)
	if err != nil {
		return nil, err
	}
	return services.NewRandomFeeEstimator(base, ceiling, nil)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderRepository())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderRepository())
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.orderRepository())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	statsJob := jobs.NewOrderStatsJob(
		c.orderRepository(),
		c.CreateGetOrderStatsQueryHandler(),
		c.metrics,
		c.config.StatsJobSchedule,
		c.clock,
		c.logger,
	)
	return jobs.NewJobManager(statsJob)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	estimator, err := c.CreateFeeEstimator()
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		queries.NewEstimateFeeQueryHandler(estimator),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderStatsQueryHandler(),
		c.metrics,
		c.clock,
	)

	return httpin.NewRouter(server, httpin.RouterConfig{
		JWTSecret: []byte(c.config.JWTSecret),
		Metrics:   c.metrics,
		Gatherer:  c.registry,
		Logger:    c.logger,
	})
}

// Close releases the resources owned by the root.
func (c *CompositionRoot) Close() error {
	if c.publisher != nil {
		return c.publisher.Close()
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
