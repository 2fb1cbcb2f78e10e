package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:xp"

// ErrLeaderboardUnavailable is returned when redis is not reachable.
var ErrLeaderboardUnavailable = errors.New("leaderboard unavailable")

// LeaderboardEntry is a single ranked row from the XP leaderboard.
type LeaderboardEntry struct {
	UserID uint  `json:"user_id"`
	XP     int64 `json:"xp"`
	Rank   int64 `json:"rank"`
}

// Leaderboard keeps an XP ranking in a Redis sorted set. The database stays
// authoritative; this is a read-optimized projection that can be rebuilt at
// any time.
type Leaderboard struct {
	cache *Client
}

// NewLeaderboard creates a leaderboard backed by the given cache client.
func NewLeaderboard(cache *Client) *Leaderboard {
	return &Leaderboard{cache: cache}
}

// SetScore writes a user's absolute XP score.
func (l *Leaderboard) SetScore(ctx context.Context, userID uint, xp int64) error {
	rdb := l.cache.Redis()
	if rdb == nil {
		return nil
	}
	return rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(xp),
		Member: memberFor(userID),
	}).Err()
}

// Top returns the highest-ranked entries, best first.
func (l *Leaderboard) Top(ctx context.Context, limit int64) ([]LeaderboardEntry, error) {
	rdb := l.cache.Redis()
	if rdb == nil {
		return nil, ErrLeaderboardUnavailable
	}
	if limit <= 0 {
		limit = 10
	}
	zs, err := rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, limit-1).Result()
	if err != nil {
		return nil, ErrLeaderboardUnavailable
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		userID, err := userFromMember(member)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID: userID,
			XP:     int64(z.Score),
			Rank:   int64(i) + 1,
		})
	}
	return entries, nil
}

// Rank returns a user's 1-based rank, or ErrLeaderboardUnavailable.
func (l *Leaderboard) Rank(ctx context.Context, userID uint) (int64, error) {
	rdb := l.cache.Redis()
	if rdb == nil {
		return 0, ErrLeaderboardUnavailable
	}
	rank, err := rdb.ZRevRank(ctx, leaderboardKey, memberFor(userID)).Result()
	if err != nil {
		return 0, ErrLeaderboardUnavailable
	}
	return rank + 1, nil
}
