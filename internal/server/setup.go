package server

import (
	"context"
	"log"

	"github.com/linuxmatters/lyricloud/internal/cache"
	"github.com/linuxmatters/lyricloud/internal/config"
	"github.com/linuxmatters/lyricloud/internal/store"
)

// Deps wires optional storage and caching from configuration. Close releases
// whatever was opened.
type Deps struct {
	Store store.Store
	Cache *cache.Cache
}

func (d Deps) Options() []Option {
	var opts []Option
	if d.Store != nil {
		opts = append(opts, WithStore(d.Store))
	}
	if d.Cache != nil {
		opts = append(opts, WithCache(d.Cache))
	}
	return opts
}

func (d Deps) Close() {
	if d.Cache != nil {
		d.Cache.Close()
	}
}

// LoadDeps opens the store and cache named in cfg. Storage errors are fatal;
// an unreachable Redis only disables caching.
func LoadDeps(ctx context.Context, cfg config.Server) (Deps, error) {
	var deps Deps

	switch {
	case cfg.Storage.S3Bucket != "":
		s, err := store.NewS3StoreFromEnv(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3URLPrefix)
		if err != nil {
			return deps, err
		}
		deps.Store = s
		log.Printf("[server] storing images in s3://%s", cfg.Storage.S3Bucket)
	case cfg.Storage.Dir != "":
		s, err := store.NewFileStore(cfg.Storage.Dir, "/api/wordcloud/")
		if err != nil {
			return deps, err
		}
		deps.Store = s
		log.Printf("[server] storing images in %s", cfg.Storage.Dir)
	}

	if cfg.Cache.RedisAddr != "" {
		c, err := cache.Dial(ctx, cfg.Cache.RedisAddr, cfg.Cache.TTL)
		if err != nil {
			log.Printf("[server] cache disabled: %v", err)
		} else {
			deps.Cache = c
			log.Printf("[server] caching responses in redis at %s for %s", cfg.Cache.RedisAddr, cfg.Cache.TTL)
		}
	}

	return deps, nil
}
