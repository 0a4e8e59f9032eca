package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/joripage/limit-orderbook/config"
	"github.com/joripage/limit-orderbook/pkg/engine"
	redis_wrapper "github.com/joripage/limit-orderbook/pkg/infra/redis"
	kafkawrapper "github.com/joripage/limit-orderbook/pkg/kafka_wrapper"
	"github.com/joripage/limit-orderbook/pkg/logging"
	"github.com/joripage/limit-orderbook/pkg/marketdata"
	"github.com/joripage/limit-orderbook/pkg/orderbook"
)

const (
	minPrice = 10_000
	maxPrice = 10_200
	minQty   = 1
	maxQty   = 100
)

func randomOrder(r *rand.Rand, fakRatio float64) (orderbook.OrderType, orderbook.Side, orderbook.Price, orderbook.Quantity) {
	kind := orderbook.GTC
	if r.Float64() < fakRatio {
		kind = orderbook.FAK
	}
	side := orderbook.BUY
	if r.Intn(2) == 0 {
		side = orderbook.SELL
	}
	price := orderbook.Price(minPrice + r.Intn(maxPrice-minPrice+1))
	qty := orderbook.Quantity(r.Intn(maxQty-minQty+1) + minQty)
	return kind, side, price, qty
}

func main() {
	var (
		configFile string
		numOrders  int
		fakRatio   float64
		cancelRate float64
		seed       int64
	)
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.IntVar(&numOrders, "orders", 1_000_000, "Number of orders to submit")
	flag.Float64Var(&fakRatio, "fak-ratio", 0.1, "Share of fill and kill orders")
	flag.Float64Var(&cancelRate, "cancel-rate", 0.05, "Chance of cancelling a random earlier order after each add")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger := logging.NewLogger(cfg.Level()).With(zap.String("service", cfg.ServiceName))
	defer logger.Sync() // nolint

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithRequestID(ctx, logging.NewRequestID())

	opts := []engine.Option{engine.WithLogger(logger)}

	if k := cfg.Kafka; k != nil {
		producer := kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
			Brokers:      k.Brokers,
			BatchTimeout: time.Duration(k.BatchTimeoutMs) * time.Millisecond,
		})
		defer producer.Close() // nolint
		opts = append(opts, engine.WithTradeSink(
			marketdata.NewTradePublisher(producer, k.Topic, cfg.Book.PriceScale, k.MaxRetries)))
		logger.Info(ctx, "publishing trades", zap.Strings("brokers", k.Brokers), zap.String("topic", k.Topic))
	}

	if rc := cfg.Redis; rc != nil {
		client, err := redis_wrapper.InitRedisWithBackoff(ctx, &rc.RedisConfig, 5)
		if err != nil {
			logger.Fatal(ctx, "connect redis failed", zap.Error(err))
		}
		defer client.Close() // nolint
		cache := marketdata.NewDepthCache(client, rc.KeyPrefix, time.Duration(rc.TTLSeconds)*time.Second, cfg.Book.PriceScale)
		opts = append(opts, engine.WithDepthSink(cache, rc.DepthLevels))
		logger.Info(ctx, "caching depth", zap.String("key_prefix", rc.KeyPrefix))
	}

	eng := engine.New(cfg.Book.Symbol, opts...)

	totalMatched := 0
	totalQty := orderbook.Quantity(0)
	eng.RegisterTradeCallback(func(seq uint64, trades []orderbook.Trade) {
		for _, t := range trades {
			totalMatched++
			totalQty += t.Quantity()
			if totalMatched <= 5 {
				logger.Info(ctx, "trade",
					zap.Uint64("seq", seq),
					zap.Int64("bid", int64(t.Bid.OrderID)),
					zap.Int64("ask", int64(t.Ask.OrderID)),
					zap.Stringer("price", marketdata.FormatPrice(t.Ask.Price, cfg.Book.PriceScale)),
					zap.Int64("qty", int64(t.Quantity())))
			}
		}
	})

	r := rand.New(rand.NewSource(seed))
	rejected := map[error]int{}
	cancelled := 0
	start := time.Now()
	submitted := 0
	for i := 1; i <= numOrders && ctx.Err() == nil; i++ {
		kind, side, price, qty := randomOrder(r, fakRatio)
		if _, err := eng.AddOrder(ctx, kind, orderbook.OrderID(i), side, price, qty); err != nil {
			rejected[err]++
		}
		submitted++

		if r.Float64() < cancelRate {
			if err := eng.CancelOrder(ctx, orderbook.OrderID(r.Intn(i)+1)); err == nil {
				cancelled++
			}
		}
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Symbol            : %s\n", cfg.Book.Symbol)
	fmt.Printf("Total Orders      : %d\n", submitted)
	fmt.Printf("Total Matches     : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty : %d\n", totalQty)
	fmt.Printf("Cancelled         : %d\n", cancelled)
	for err, n := range rejected {
		fmt.Printf("Rejected (%s): %d\n", err, n)
	}
	fmt.Printf("Resting Orders    : %d\n", eng.Size())
	fmt.Printf("Last Seq          : %d\n", eng.Seq())
	fmt.Printf("Time Taken        : %s\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("Orders/sec        : %.0f\n", float64(submitted)/elapsed.Seconds())
	}
}
