package cmd

import (
	"log/slog"

	"distribution/internal/adapters/out/kafka"
	"distribution/internal/adapters/out/postgres"
	"distribution/internal/adapters/out/postgres/masterdatarepo"
	"distribution/internal/adapters/out/postgres/outboxrepo"
	"distribution/internal/adapters/out/redis"
	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	sequence    *postgres.GormOrderNumberSequence
	masterData  *masterdatarepo.GormMasterData
	orderCache  *redis.OrderCache
	producer    *kafka.Producer
	warehouseID kernel.UUID
	logger      *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, warehouseID kernel.UUID, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		sequence:    postgres.NewGormOrderNumberSequence(gormDB),
		masterData:  masterdatarepo.NewGormMasterData(gormDB),
		orderCache:  redis.NewOrderCache(configs.RedisAddr),
		producer:    kafka.NewProducer([]string{configs.KafkaHost}, configs.KafkaNotificationsTopic),
		warehouseID: warehouseID,
		logger:      logger,
	}
}

func (c *CompositionRoot) approvalUoWFactory() commands.ApprovalUoWFactory {
	return FuncApprovalUoWFactory(func() commands.ApprovalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) OrderNumberSequence() *postgres.GormOrderNumberSequence {
	return c.sequence
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.approvalUoWFactory(),
		c.sequence,
		c.masterData,
		c.masterData,
	)
}

func (c *CompositionRoot) CreateLeaderApproveCommandHandler() commands.LeaderApproveCommandHandler {
	return commands.NewLeaderApproveCommandHandler(c.approvalUoWFactory())
}

func (c *CompositionRoot) CreateLeaderRejectCommandHandler() commands.LeaderRejectCommandHandler {
	return commands.NewLeaderRejectCommandHandler(c.approvalUoWFactory())
}

func (c *CompositionRoot) CreateAdminApproveCommandHandler() commands.AdminApproveCommandHandler {
	return commands.NewAdminApproveCommandHandler(c.approvalUoWFactory(), c.masterData, c.warehouseID)
}

func (c *CompositionRoot) CreateAdminRejectCommandHandler() commands.AdminRejectCommandHandler {
	return commands.NewAdminRejectCommandHandler(c.approvalUoWFactory())
}

func (c *CompositionRoot) CreateBulkApproveCommandHandler() commands.BulkApproveCommandHandler {
	return commands.NewBulkApproveCommandHandler(
		c.approvalUoWFactory(),
		c.CreateLeaderApproveCommandHandler(),
		c.CreateAdminApproveCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.orderCache)
}

func (c *CompositionRoot) CreateGetOrdersByStageQueryHandler() queries.GetOrdersByStageQueryHandler {
	return queries.NewGetOrdersByStageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetApprovalHistoryQueryHandler() queries.GetApprovalHistoryQueryHandler {
	return queries.NewGetApprovalHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		outboxrepo.NewGormOutbox(c.gormDB),
		c.producer,
		c.orderCache,
		c.logger,
	)
}

// Close releases the outbound connections held by the root.
func (c *CompositionRoot) Close() {
	if err := c.producer.Close(); err != nil {
		c.logger.Error("failed to close kafka producer", "error", err)
	}
	if err := c.orderCache.Close(); err != nil {
		c.logger.Error("failed to close redis client", "error", err)
	}
}

type FuncApprovalUoWFactory func() commands.ApprovalUoW

func (f FuncApprovalUoWFactory) Create() commands.ApprovalUoW {
	return f()
}
