//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	adapterevents "github.com/hifzhub/murajaah/internal/adapter/events"
	repoimpl "github.com/hifzhub/murajaah/internal/adapter/repository"
	"github.com/hifzhub/murajaah/internal/infrastructure/config"
	"github.com/hifzhub/murajaah/internal/infrastructure/database"
	"github.com/hifzhub/murajaah/internal/infrastructure/server"
	"github.com/hifzhub/murajaah/internal/recitation"
	"github.com/hifzhub/murajaah/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var infrastructureSet = wire.NewSet(
	database.NewConnection,
	provideRedis,
	provideRedisClient,
)

var repositorySet = wire.NewSet(
	repoimpl.NewReviewItemRepository,
	repoimpl.NewLedgerRepository,
	repoimpl.NewAnalysisRepository,
)

var analysisSet = wire.NewSet(
	provideWhisper,
	provideVerseTextClient,
	providePipeline,
	wire.Bind(new(usecase.Analyzer), new(*recitation.Pipeline)),
)

var eventSet = wire.NewSet(
	adapterevents.NewRedisPublisher,
	wire.Bind(new(usecase.EventPublisher), new(*adapterevents.RedisPublisher)),
)

var usecaseSet = wire.NewSet(
	usecase.NewReviewUsecase,
	usecase.NewPlanUsecase,
	usecase.NewLedgerUsecase,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		infrastructureSet,
		repositorySet,
		analysisSet,
		eventSet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
