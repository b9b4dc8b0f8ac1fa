package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/astrolens/astrolens/internal/lightcurve"
	"github.com/astrolens/astrolens/internal/message"
)

const (
	kafkaBroker = "localhost:9092"
	topic       = "lightcurve-stream"

	samplesPerCurve = 2000
)

func main() {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(kafkaBroker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer func() {
		if err := writer.Close(); err != nil {
			log.Fatalf("Error closing kafka writer: %v", err)
		}
	}()
	log.Printf("Starting synthetic lightcurve producer for topic: %s on broker: %s", topic, kafkaBroker)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		log.Println("Shutdown signal received, stopping producer...")
		cancel()
	}()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		select {
		case <-ticker.C:
			msg := generateObservation(rng)
			msgBytes, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshalling observation: %v", err)
				continue
			}

			err = writer.WriteMessages(ctx, kafka.Message{Value: msgBytes})
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Context cancelled, exiting message loop.")
					return
				}
				log.Printf("Error writing observation: %v", err)
			} else {
				log.Printf("Produced observation obsid=%s samples=%d", msg.ObsID, len(msg.Times))
			}

		case <-ctx.Done():
			log.Println("Producer loop stopped.")
			return
		}
	}
}

// generateObservation builds a synthetic lightcurve on the native frame
// cadence: Poisson-ish background, optional sinusoidal modulation, and an
// occasional injected flare or eclipse window.
func generateObservation(rng *rand.Rand) *message.ObservationMessage {
	obsid := fmt.Sprintf("%05d", 10000+rng.Intn(20000))

	baseRate := 2.0 + rng.Float64()*4.0 // mean counts per frame

	// ~50% of curves carry a periodic modulation.
	period := 0.0
	if rng.Float64() < 0.5 {
		period = lightcurve.FrameTime * float64(50+rng.Intn(200))
	}

	flareStart, flareEnd := -1, -1
	if rng.Float64() < 0.3 {
		flareStart = rng.Intn(samplesPerCurve * 3 / 4)
		flareEnd = flareStart + 20 + rng.Intn(80)
	}
	eclipseStart, eclipseEnd := -1, -1
	if rng.Float64() < 0.2 {
		eclipseStart = rng.Intn(samplesPerCurve * 3 / 4)
		eclipseEnd = eclipseStart + 50 + rng.Intn(150)
	}

	times := make([]float64, samplesPerCurve)
	counts := make([]float64, samplesPerCurve)
	for i := 0; i < samplesPerCurve; i++ {
		t := float64(i) * lightcurve.FrameTime
		rate := baseRate
		if period > 0 {
			rate += baseRate * 0.5 * math.Sin(2*math.Pi*t/period)
		}
		if i >= flareStart && i < flareEnd {
			rate *= 5
		}
		if i >= eclipseStart && i < eclipseEnd {
			rate *= 0.05
		}

		c := math.Round(rate + rng.NormFloat64()*math.Sqrt(rate))
		if c < 0 {
			c = 0
		}
		times[i] = t
		counts[i] = c
	}

	return &message.ObservationMessage{
		ObsID:  obsid,
		Coords: "00 42 44.3 +41 16 09",
		RA:     10.6847,
		Dec:    41.2692,
		Galaxy: "M31",
		Times:  times,
		Counts: counts,
	}
}
