// Command orderfeed-producer publishes synthetic add command frames
// to Kafka for exercising internal/orderfeed without a live client.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/segmentio/kafka-go"
)

type command struct {
	Type    string `json:"type"`
	OrderID uint64 `json:"orderId"`
	Side    string `json:"side,omitempty"`
	Price   uint64 `json:"price,omitempty"`
	Qty     uint64 `json:"qty,omitempty"`
}

func generateCommands(count int, basePrice, spread uint64) []command {
	cmds := make([]command, count)
	for i := 0; i < count; i++ {
		side := "buy"
		if rand.Float64() < 0.5 {
			side = "sell"
		}

		delta := uint64(rand.Int63n(int64(spread)))
		price := basePrice
		if side == "buy" {
			price -= delta / 2
		} else {
			price += delta / 2
		}

		cmds[i] = command{
			Type:    "add",
			OrderID: uint64(i + 1),
			Side:    side,
			Price:   price,
			Qty:     uint64(rand.Intn(50) + 1),
		}
	}
	return cmds
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker address")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		delay       = flag.Duration("delay", 100*time.Millisecond, "delay between commands")
		count       = flag.Int("count", 1000, "number of add commands to generate")
		basePrice   = flag.Uint64("base-price", 39455, "base price in ticks")
		priceSpread = flag.Uint64("price-spread", 2000, "price spread range in ticks")
	)
	flag.Parse()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(*brokers),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	log.Printf("generating %d commands", *count)
	cmds := generateCommands(*count, *basePrice, *priceSpread)

	log.Printf("sending commands to broker %s, topic %s", *brokers, *topic)
	for i, cmd := range cmds {
		value, err := json.Marshal(cmd)
		if err != nil {
			log.Printf("failed to marshal command %d: %v", i+1, err)
			continue
		}

		msg := kafka.Message{Value: value, Time: time.Now()}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("failed to send command %d: %v", i+1, err)
			continue
		}

		if (i+1)%100 == 0 || i == len(cmds)-1 {
			log.Printf("sent %d/%d: %s %s %d @ %d", i+1, len(cmds), cmd.Side, cmd.Type, cmd.Qty, cmd.Price)
		}

		if i < len(cmds)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("done: sent %d commands", len(cmds))
}
