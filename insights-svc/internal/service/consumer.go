package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"cafenine/insights-svc/internal/domain"
)

// DefaultRetryDelay is the pause after a failed read before the next attempt.
const DefaultRetryDelay = time.Second

type Consumer struct {
	Reader     Reader
	Store      StoreInterface
	RetryDelay time.Duration
}

func NewConsumer(reader Reader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader:     reader,
		Store:      store,
		RetryDelay: DefaultRetryDelay,
	}
}

// Start reads order events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("[insights-svc] starting order consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("[insights-svc] order consumer stopped")
				return
			}
			log.Printf("[insights-svc] error reading message: %v", err)
			if !c.wait(ctx) {
				log.Println("[insights-svc] order consumer stopped")
				return
			}
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("[insights-svc] error unmarshaling message: %v", err)
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

// wait pauses for RetryDelay and reports false if ctx ended first.
func (c *Consumer) wait(ctx context.Context) bool {
	delay := c.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// ProcessEvent folds an order_created event into the rankings for the day it was placed.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.Event) {
	if event.Type != domain.EventOrderCreated || len(event.Items) == 0 {
		return
	}
	day := event.Timestamp
	if day.IsZero() {
		day = time.Now()
	}

	if err := c.Store.RecordOrder(ctx, event.BranchID, day, event.Items); err != nil {
		log.Printf("[insights-svc] error recording order %s: %v", event.OrderID, err)
		return
	}
	log.Printf("[insights-svc] recorded order %s for branch %s", event.OrderID, event.BranchID)
}
