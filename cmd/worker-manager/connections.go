// cmd/worker-manager/connections.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	awsclient "civic-relevance-workers/internal/common/aws"
	"civic-relevance-workers/internal/common/config"
	"civic-relevance-workers/internal/common/database"
	"civic-relevance-workers/internal/common/logger"
)

// connections holds the backing services the configuration asks for. Members
// are nil when not configured.
type connections struct {
	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
	sns   *awsclient.SNSClient
	ses   *awsclient.SESClient
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled: %w", operationName, ctx.Err())
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*connections, error) {
	conns := &connections{}

	// --- Redis (dataset cache) ---
	conns.redis = database.NewRedis(cfg.Database.Redis)
	if err := retryWithBackoff(ctx, func() error {
		return conns.redis.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection"); err != nil {
		conns.Close()
		return nil, err
	}
	log.Info("Redis connected successfully", nil)

	// --- PostgreSQL, only when it holds the dataset ---
	if cfg.Explorer.DataSource == config.SourcePostgres {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			conns.Close()
			return nil, err
		}
		conns.pg = pg
		if err := retryWithBackoff(ctx, func() error {
			return pg.Ping(ctx)
		}, 15, 2*time.Second, log, "PostgreSQL connection"); err != nil {
			conns.Close()
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			conns.Close()
			return nil, err
		}
		log.Info("PostgreSQL connected successfully", nil)
	}

	// --- Elasticsearch, for micro-community snapshots ---
	if cfg.Database.Elasticsearch.GetURL() != "" {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			conns.Close()
			return nil, err
		}
		if err := retryWithBackoff(ctx, func() error {
			return es.Ping(ctx)
		}, 15, 2*time.Second, log, "Elasticsearch connection"); err != nil {
			conns.Close()
			return nil, err
		}
		conns.es = es
		log.Info("Elasticsearch connected successfully", nil)
	}

	// --- AWS notification channels ---
	aws := cfg.Integrations.AWS
	if aws.SNS.Enabled {
		sns, err := awsclient.NewSNSClient(ctx, aws.Region, aws.SNS.TopicARN)
		if err != nil {
			conns.Close()
			return nil, err
		}
		conns.sns = sns
	}
	if aws.SES.Enabled {
		ses, err := awsclient.NewSESClient(ctx, aws.Region, aws.SES.FromEmail)
		if err != nil {
			conns.Close()
			return nil, err
		}
		conns.ses = ses
	}

	return conns, nil
}

// Ping checks every connected backing service.
func (c *connections) Ping(ctx context.Context) error {
	if err := c.redis.Ping(ctx); err != nil {
		return err
	}
	if c.pg != nil {
		if err := c.pg.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if c.es != nil {
		if err := c.es.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *connections) Close() {
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.pg != nil {
		_ = c.pg.Close()
	}
}

func dbOf(c *connections) *sql.DB {
	if c.pg == nil {
		return nil
	}
	return c.pg.DB
}
