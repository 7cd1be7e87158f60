package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/venue-engine/pkg/orderbook"
	"github.com/joripage/venue-engine/pkg/venue"
)

const (
	numOrders = 1_000_000
	minPrice  = 100.0
	maxPrice  = 200.0
	minQty    = 1
	maxQty    = 100
)

func randomSubmit(rng *rand.Rand, id int) (side orderbook.Side, qty int64, price decimal.Decimal) {
	side = orderbook.Buy
	if rng.Intn(2) == 0 {
		side = orderbook.Sell
	}
	raw := minPrice + rng.Float64()*(maxPrice-minPrice)
	qty = int64(rng.Intn(maxQty-minQty+1) + minQty)
	price = decimal.NewFromFloat(raw).Round(2)
	return side, qty, price
}

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	v := venue.New(nil, decimal.Zero, nil, nil, nil, nil)
	ctx := context.Background()

	totalMatched := 0
	totalQty := int64(0)

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		side, qty, price := randomSubmit(rng, i+1)
		userID := fmt.Sprintf("U-%06d", i%1000)

		trades, err := v.Submit(ctx, userID, "ABC", side, qty, price)
		if err != nil {
			log.Fatalf("submit %d: %v", i, err)
		}
		for _, tr := range trades {
			totalMatched++
			totalQty += tr.Qty
			if totalMatched <= 5 {
				log.Printf("match: BUY[%d] <=> SELL[%d] @ %s qty %d\n",
					tr.BuyOrderID, tr.SellOrderID, tr.Price, tr.Qty)
			}
		}
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("total orders     : %d\n", numOrders)
	fmt.Printf("total matches    : %d\n", totalMatched)
	fmt.Printf("total matched qty: %d\n", totalQty)
	fmt.Printf("time taken       : %s\n", elapsed)
}
