package sources

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/dmitrijs2005/userdesk/internal/server/config"
	"github.com/dmitrijs2005/userdesk/internal/server/repositories/repomanager"
)

// FromConfig builds the source named by cfg.DataSource. db and m are only
// used by the postgres source and may be nil otherwise.
func FromConfig(ctx context.Context, cfg *config.Config, db *sql.DB, m repomanager.RepositoryManager) (directory.Source, error) {
	switch cfg.DataSource {
	case config.DataSourceHTTP:
		return NewHTTPSource(cfg.DirectoryURL, cfg.RequestTimeout), nil
	case config.DataSourcePostgres:
		if db == nil || m == nil {
			return nil, fmt.Errorf("data source %q needs a database", cfg.DataSource)
		}
		return NewPostgresSource(db, m), nil
	case config.DataSourceS3:
		client, err := NewS3Client(ctx, S3Settings{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		return NewS3Source(client, cfg.S3Bucket), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
