// Package redis connects to Redis for relaying toast announcements between
// processes.
//
// Connect parses Config.URL, pings the server and retries until it answers
// or the attempts run out. Healthcheck wraps a ping for readiness checks.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//	}
package redis
