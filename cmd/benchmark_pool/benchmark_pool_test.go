package benchmarkpool

import (
	"sync"
	"testing"
	"time"

	"github.com/joripage/venue-engine/pkg/orderbook"
)

var orderPool = sync.Pool{
	New: func() interface{} {
		return &orderbook.Order{}
	},
}

func BenchmarkNewOrder(b *testing.B) {
	arr := make([]*orderbook.Order, 0, b.N)
	for i := 0; i < b.N; i++ {
		o := &orderbook.Order{
			ID:          int64(i),
			Symbol:      "Symbol",
			Side:        orderbook.Buy,
			Type:        orderbook.Limit,
			LimitPrice:  orderbook.Price(1000),
			Remaining:   100,
			UserID:      "Account",
			SubmittedAt: time.Now(),
		}
		arr = append(arr, o)
		_ = o
	}
}

func BenchmarkPoolOrder(b *testing.B) {
	arr := make([]*orderbook.Order, 0, b.N)
	for i := 0; i < b.N; i++ {
		s := orderPool.Get().(*orderbook.Order)
		s.ID = int64(i)
		s.Symbol = "Symbol"
		s.Side = orderbook.Buy
		s.Type = orderbook.Limit
		s.LimitPrice = orderbook.Price(1000)
		s.Remaining = 100
		s.UserID = "Account"
		s.SubmittedAt = time.Now()

		arr = append(arr, s)

		// reset before returning to the pool
		s.ID = 0
		s.Symbol = ""
		s.Side = ""
		s.Type = ""
		s.LimitPrice = 0
		s.Remaining = 0
		s.UserID = ""
		s.SubmittedAt = time.Time{}
		orderPool.Put(s)
	}
}

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 64*1024) // 64KB buffer
		return &b
	},
}

func BenchmarkNewBuffer(b *testing.B) {
	buffers := make([][]byte, 0, b.N)
	for i := 0; i < b.N; i++ {
		buf := make([]byte, 64*1024)
		buffers = append(buffers, buf)
		if len(buffers) > 1000 {
			// giữ lại nhiều buffer để ép GC
			buffers = buffers[:0]
		}
	}
}

func BenchmarkPoolBuffer(b *testing.B) {
	buffers := make([]*[]byte, 0, b.N)
	for i := 0; i < b.N; i++ {
		buf := bufPool.Get().(*[]byte)
		buffers = append(buffers, buf)
		if len(buffers) > 1000 {
			// reset về pool
			for _, bb := range buffers {
				bufPool.Put(bb)
			}
			buffers = buffers[:0]
		}
	}
}
