package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/pkg/blockchain/types"
	"github.com/moltfund/backend/pkg/pubsub"
)

// MockRedisClient keeps sorted sets and plain values in process memory.
type MockRedisClient struct {
	mutex sync.Mutex
	zsets map[string]map[string]float64
	kv    map[string]string
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		zsets: make(map[string]map[string]float64),
		kv:    make(map[string]string),
	}
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.zsets[key]; ok {
		return true, nil
	}

	_, ok := c.kv[key]
	return ok, nil
}

func (c *MockRedisClient) Del(ctx context.Context, key ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, k := range key {
		delete(c.zsets, k)
		delete(c.kv, k)
	}

	return nil
}

func (c *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.zsets[key]; !ok {
		c.zsets[key] = make(map[string]float64)
	}

	c.zsets[key][z.Member.(string)] = z.Score
	return nil
}

func (c *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.zsets[key]; !ok {
		c.zsets[key] = make(map[string]float64)
	}

	c.zsets[key][member] += float64(incr)
	return nil
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	all := []redis.Z{}
	for member, score := range c.zsets[key] {
		all = append(all, redis.Z{Member: member, Score: score})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}

		return all[i].Member.(string) > all[j].Member.(string)
	})

	if offset >= len(all) {
		return []redis.Z{}, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

func (c *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	ranged, err := c.ZRevRangeWithScores(ctx, key, 0, len(c.zsets[key]))
	if err != nil {
		return 0, err
	}

	for i, z := range ranged {
		if z.Member.(string) == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (c *MockRedisClient) Set(ctx context.Context, key, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.kv[key] = value
	return nil
}

func (c *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	return errors.New("not implemented")
}

func (c *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.kv[key]
	if !ok {
		return "", redis.Nil
	}

	return value, nil
}

func (c *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	return errors.New("not implemented")
}

// MockPublisher records every published pack instead of talking to a broker.
type MockPublisher struct {
	mutex  sync.Mutex
	Packs  map[string][]*pubsub.Pack
	Failed bool
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Packs: make(map[string][]*pubsub.Pack)}
}

func (p *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.Failed {
		return errors.New("broker unavailable")
	}

	p.Packs[topic] = append(p.Packs[topic], pack)
	return nil
}

func (p *MockPublisher) Stop(ctx context.Context) error {
	return nil
}

type sentMail struct {
	ToEmail string
	Subject string
}

// MockEmailCaller records notifications and fails on demand to exercise
// retry paths.
type MockEmailCaller struct {
	mutex  sync.Mutex
	Mails  []sentMail
	Links  []string
	Failed bool
}

func NewMockEmailCaller() *MockEmailCaller {
	return &MockEmailCaller{}
}

func (c *MockEmailCaller) SendCampaignMilestone(
	ctx context.Context, toEmail, campaignTitle string, milestonePercent int,
) error {
	return c.record(toEmail, "milestone")
}

func (c *MockEmailCaller) SendNewAdvocateNotification(
	ctx context.Context, toEmail, agentName, campaignTitle string,
) error {
	return c.record(toEmail, "advocate")
}

func (c *MockEmailCaller) SendMagicLink(ctx context.Context, toEmail, link string) error {
	if err := c.record(toEmail, "magic-link"); err != nil {
		return err
	}

	c.mutex.Lock()
	c.Links = append(c.Links, link)
	c.mutex.Unlock()
	return nil
}

func (c *MockEmailCaller) Count(subject string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	n := 0
	for _, mail := range c.Mails {
		if mail.Subject == subject {
			n++
		}
	}

	return n
}

func (c *MockEmailCaller) record(toEmail, subject string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.Failed {
		return errors.New("delivery failed")
	}

	c.Mails = append(c.Mails, sentMail{ToEmail: toEmail, Subject: subject})
	return nil
}

// MockTransferFetcher serves a canned transfer list per (chain, address)
// and fails on demand for selected addresses.
type MockTransferFetcher struct {
	mutex     sync.Mutex
	Transfers map[entity.Chain]map[string][]types.Transfer
	failed    map[string]bool
}

func NewMockTransferFetcher() *MockTransferFetcher {
	return &MockTransferFetcher{
		Transfers: make(map[entity.Chain]map[string][]types.Transfer),
		failed:    make(map[string]bool),
	}
}

func (f *MockTransferFetcher) Add(chain entity.Chain, address string, transfer types.Transfer) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if _, ok := f.Transfers[chain]; !ok {
		f.Transfers[chain] = make(map[string][]types.Transfer)
	}

	f.Transfers[chain][address] = append(f.Transfers[chain][address], transfer)
}

// Fail makes every fetch for the address return an error.
func (f *MockTransferFetcher) Fail(address string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.failed[address] = true
}

func (f *MockTransferFetcher) GetConfirmedTransfers(
	ctx context.Context, chain entity.Chain, address string, limit int,
) ([]types.Transfer, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.failed[address] {
		return nil, errors.New("explorer unavailable")
	}

	return f.Transfers[chain][address], nil
}

// MockPriceStrategy is a price oracle link with a scripted answer.
type MockPriceStrategy struct {
	StrategyName string
	Prices       map[string]float64
	Failed       bool
	Calls        int
}

func (s *MockPriceStrategy) Name() string {
	return s.StrategyName
}

func (s *MockPriceStrategy) Cacheable() bool {
	return true
}

func (s *MockPriceStrategy) GetUSDPrice(ctx context.Context, symbol string) (float64, error) {
	s.Calls++
	if s.Failed {
		return 0, errors.New("provider unavailable")
	}

	price, ok := s.Prices[symbol]
	if !ok {
		return 0, errors.New("unknown symbol")
	}

	return price, nil
}
