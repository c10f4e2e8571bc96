package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const outboxKey = "mail:outbox"

// Job is one queued outgoing message.
type Job struct {
	ID      string `json:"id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Dispatcher hands messages to a redis-backed outbox consumed by a
// background worker. Dispatch never blocks the caller and never reports
// failure upward: delivery is best effort and its outcome is only logged.
// With no redis client the job is sent directly in a detached goroutine.
type Dispatcher struct {
	rdb    *redis.Client
	sender Sender
}

// NewDispatcher creates a dispatcher. rdb may be nil.
func NewDispatcher(rdb *redis.Client, sender Sender) *Dispatcher {
	return &Dispatcher{rdb: rdb, sender: sender}
}

// Dispatch queues a message without blocking the caller.
func (d *Dispatcher) Dispatch(to, subject, body string) {
	job := Job{
		ID:      uuid.New().String(),
		To:      to,
		Subject: subject,
		Body:    body,
	}
	go d.enqueue(job)
}

func (d *Dispatcher) enqueue(job Job) {
	if d.rdb == nil {
		d.send(job)
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("notify: marshal job %s: %v", job.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.rdb.LPush(ctx, outboxKey, payload).Err(); err != nil {
		// Outbox unavailable: degrade to a direct send.
		log.Printf("notify: enqueue job %s: %v, sending directly", job.ID, err)
		d.send(job)
	}
}

func (d *Dispatcher) send(job Job) {
	if err := d.sender.Send(job.To, job.Subject, job.Body); err != nil {
		log.Printf("notify: send mail %s to %s: %v", job.ID, job.To, err)
		return
	}
	log.Printf("notify: mail %s sent to %s", job.ID, job.To)
}

// Run consumes the outbox until ctx is cancelled. Intended to run in its own
// goroutine from main.
func (d *Dispatcher) Run(ctx context.Context) {
	if d.rdb == nil {
		return
	}
	for {
		if ctx.Err() != nil {
			return
		}
		res, err := d.rdb.BRPop(ctx, 5*time.Second, outboxKey).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Printf("notify: outbox pop: %v", err)
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value].
		if len(res) != 2 {
			continue
		}
		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Printf("notify: decode job: %v", err)
			continue
		}
		d.send(job)
	}
}
