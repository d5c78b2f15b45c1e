package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"vdcode/internal/domain"
	"vdcode/internal/shortcode"
)

// DefaultRedisPrefix namespaces every key written by RedisRepository.
const DefaultRedisPrefix = "vdcode:"

// RedisRepository stores records in Redis.
//
// Layout:
//
//	<prefix>code:<code>     record JSON, written with SETNX
//	<prefix>lookups:<code>  hash {count, last} updated on lookup
//	<prefix>expiry          sorted set of codes scored by expiry (unix ms)
//
// Writes that touch more than one key run as Lua scripts, so a record is
// never stored without its expiry entry and a lookup never recreates the
// counters of a deleted record.
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRepository creates a repository using client. An empty prefix
// falls back to DefaultRedisPrefix.
func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisRepository{client: client, prefix: prefix}
}

type redisRecord struct {
	Code      shortcode.Code `json:"code"`
	Label     string         `json:"label"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

func (r *RedisRepository) codeKey(code string) string    { return r.prefix + "code:" + code }
func (r *RedisRepository) lookupsKey(code string) string { return r.prefix + "lookups:" + code }
func (r *RedisRepository) expiryKey() string             { return r.prefix + "expiry" }

// saveScript writes a new record and its indexes in one step.
// KEYS: code, lookups, expiry. ARGV: payload, count, last ("" if never), score, member.
var saveScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call('DEL', KEYS[2])
redis.call('HSET', KEYS[2], 'count', ARGV[2])
if ARGV[3] ~= '' then
	redis.call('HSET', KEYS[2], 'last', ARGV[3])
end
redis.call('ZADD', KEYS[3], ARGV[4], ARGV[5])
return 1
`)

// incrementScript counts a lookup only while the record exists.
// KEYS: code, lookups. ARGV: last.
var incrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HINCRBY', KEYS[2], 'count', 1)
redis.call('HSET', KEYS[2], 'last', ARGV[1])
return 1
`)

func (r *RedisRepository) SaveIfNotExists(ctx context.Context, record *domain.CodeRecord) error {
	payload, err := json.Marshal(redisRecord{
		Code:      record.Code,
		Label:     record.Label,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	last := ""
	if !record.LastLookupAt.IsZero() {
		last = strconv.FormatInt(record.LastLookupAt.UnixNano(), 10)
	}

	code := record.Code.String()
	saved, err := saveScript.Run(ctx, r.client,
		[]string{r.codeKey(code), r.lookupsKey(code), r.expiryKey()},
		payload, record.LookupCount, last, record.ExpiresAt.UnixMilli(), code,
	).Int()
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	if saved == 0 {
		return domain.ErrCodeExists
	}
	return nil
}

func (r *RedisRepository) FindByCode(ctx context.Context, code shortcode.Code) (*domain.CodeRecord, error) {
	key := code.String()

	payload, err := r.client.Get(ctx, r.codeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	var stored redisRecord
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", key, err)
	}

	stats, err := r.client.HGetAll(ctx, r.lookupsKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting lookups: %w", err)
	}

	record := &domain.CodeRecord{
		Code:      stored.Code,
		Label:     stored.Label,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}
	if v, ok := stats["count"]; ok {
		if record.LookupCount, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("decoding lookup count %s: %w", key, err)
		}
	}
	if v, ok := stats["last"]; ok {
		nanos, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decoding last lookup %s: %w", key, err)
		}
		record.LastLookupAt = time.Unix(0, nanos).UTC()
	}

	return record, nil
}

func (r *RedisRepository) IncrementLookupCount(ctx context.Context, code shortcode.Code, at time.Time) error {
	key := code.String()

	counted, err := incrementScript.Run(ctx, r.client,
		[]string{r.codeKey(key), r.lookupsKey(key)},
		at.UnixNano(),
	).Int()
	if err != nil {
		return fmt.Errorf("incrementing lookups: %w", err)
	}
	if counted == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteExpired removes records with ExpiresAt before before. The expiry
// index holds milliseconds, so members in the millisecond of before are
// checked against the exact expiry stored in the record.
func (r *RedisRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	boundary := before.UnixMilli()
	candidates, err := r.client.ZRangeByScoreWithScores(ctx, r.expiryKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(boundary, 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("listing expired: %w", err)
	}

	var codes, edge []string
	for _, z := range candidates {
		code, ok := z.Member.(string)
		if !ok {
			continue
		}
		if int64(z.Score) < boundary {
			codes = append(codes, code)
		} else {
			edge = append(edge, code)
		}
	}

	if len(edge) > 0 {
		expired, err := r.expiredAt(ctx, edge, before)
		if err != nil {
			return 0, err
		}
		codes = append(codes, expired...)
	}
	if len(codes) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(codes)*2)
	members := make([]any, 0, len(codes))
	for _, code := range codes {
		keys = append(keys, r.codeKey(code), r.lookupsKey(code))
		members = append(members, code)
	}

	var deleted *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.ZRem(ctx, r.expiryKey(), members...)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("deleting expired: %w", err)
	}

	return deleted.Val(), nil
}

// expiredAt returns the codes whose stored ExpiresAt is before before.
// Index members without a record are returned as well.
func (r *RedisRepository) expiredAt(ctx context.Context, codes []string, before time.Time) ([]string, error) {
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = r.codeKey(code)
	}

	payloads, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading expiring records: %w", err)
	}

	var expired []string
	for i, payload := range payloads {
		raw, ok := payload.(string)
		if !ok {
			expired = append(expired, codes[i])
			continue
		}
		var stored redisRecord
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return nil, fmt.Errorf("decoding record %s: %w", codes[i], err)
		}
		if stored.ExpiresAt.Before(before) {
			expired = append(expired, codes[i])
		}
	}
	return expired, nil
}
