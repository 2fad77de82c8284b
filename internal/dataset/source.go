package dataset

import (
	"database/sql"
	"fmt"
	"time"

	"civic-relevance-workers/internal/common/config"
	httpclient "civic-relevance-workers/internal/common/http"
	"civic-relevance-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Deps are the connections a configured source may need. Nil members are
// allowed when the configuration does not use them.
type Deps struct {
	DB     *sql.DB
	Redis  redis.Cmdable
	Logger logger.Logger
}

// NewSource builds the source named by cfg.DataSource, wrapped in a Redis
// cache when a Redis client is supplied and the TTL is positive.
func NewSource(cfg config.ExplorerConfig, deps Deps) (Source, error) {
	var src Source
	switch cfg.DataSource {
	case config.SourceFile, "":
		src = NewFileSource(cfg.ProfilesPath, cfg.IssuesPath)
	case config.SourceHTTP:
		client := httpclient.NewClient(config.GetDuration(cfg.HTTPTimeout))
		src = NewHTTPSource(client, cfg.BaseURL, cfg.ProfilesPath, cfg.IssuesPath)
	case config.SourcePostgres:
		if deps.DB == nil {
			return nil, fmt.Errorf("postgres data source requires a database connection")
		}
		src = NewPostgresStore(deps.DB)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}

	if deps.Redis != nil && cfg.CacheTTL > 0 {
		log := deps.Logger
		if log == nil {
			log = logger.NewNoOpLogger()
		}
		src = NewCachedSource(src, deps.Redis, cfg.CacheKeyPrefix, time.Duration(cfg.CacheTTL)*time.Second, log)
	}
	return src, nil
}
