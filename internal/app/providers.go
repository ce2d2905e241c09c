package app

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hifzhub/murajaah/internal/adapter/cache"
	"github.com/hifzhub/murajaah/internal/adapter/transcriber"
	"github.com/hifzhub/murajaah/internal/adapter/versetext"
	"github.com/hifzhub/murajaah/internal/infrastructure/config"
	"github.com/hifzhub/murajaah/internal/recitation"
)

func provideRedis(cfg *config.Config) (*cache.Redis, func(), error) {
	return cache.NewRedis(cfg.Redis.URI)
}

func provideRedisClient(r *cache.Redis) *redis.Client {
	return r.Client()
}

func provideWhisper(cfg *config.Config) *transcriber.Whisper {
	return transcriber.NewWhisper(cfg.Transcriber.APIKey, cfg.Transcriber.BaseURL, cfg.Transcriber.Model)
}

func provideVerseTextClient(cfg *config.Config) *versetext.Client {
	return versetext.NewClient(cfg.VerseText.BaseURL, cfg.VerseText.APIKey, cfg.VerseText.Timeout)
}

func providePipeline(
	whisper *transcriber.Whisper,
	verses *versetext.Client,
	store *cache.Redis,
	logger *logrus.Logger,
	cfg *config.Config,
) *recitation.Pipeline {
	opts := &recitation.Options{
		VerseTextTTL:    cfg.Engine.VerseTextTTL,
		AnalysisTTL:     cfg.Engine.AnalysisTTL,
		ProviderTimeout: cfg.Engine.ProviderTimeout,
	}
	return recitation.NewPipeline(whisper, verses, store, recitation.NewScorer(), logger, opts)
}
