package jobs

import (
	"context"
	"time"

	"megaodds/cache"
	"megaodds/services"

	"github.com/sirupsen/logrus"
)

// StartLeaderboardWarmer keeps the cached leaderboard fresh so public
// reads rarely hit the database. Does nothing when redis is not
// configured.
func StartLeaderboardWarmer() {
	if cache.Client == nil {
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	go func() {
		for {
			<-ticker.C
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := services.RefreshLeaderboardCache(ctx); err != nil {
				logrus.WithError(err).Warn("failed to refresh leaderboard cache")
			}
			cancel()
		}
	}()
}
