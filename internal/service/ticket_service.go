package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for the per-day ticket sequence
	ticketSeqKeyPrefix = "citas:ticket:seq:"

	// Sequences expire well after the service day ends
	ticketSeqTTL = 48 * time.Hour
)

// TicketService issues human-readable ticket numbers for appointments.
// Numbers follow CT-YYYYMMDD-NNNN using a per-day Redis counter; when
// Redis is unavailable a random suffix is issued instead. Uniqueness is
// ultimately enforced by the ticket_number unique index.
type TicketService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewTicketService(redisClient *redis.Client, log *logrus.Logger) *TicketService {
	return &TicketService{
		redisClient: redisClient,
		log:         log,
	}
}

// Next returns the ticket number for a booking on the given service date
func (s *TicketService) Next(ctx context.Context, date time.Time) string {
	dateStr := date.Format("20060102")
	key := ticketSeqKeyPrefix + dateStr

	seq, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Ticket sequence unavailable, falling back to random suffix: %+v", err)
		return fmt.Sprintf("CT-%s-%s", dateStr, randomSuffix())
	}
	if seq == 1 {
		if err := s.redisClient.Expire(ctx, key, ticketSeqTTL).Err(); err != nil {
			s.log.Warnf("Failed to set TTL on ticket sequence %s: %+v", key, err)
		}
	}

	return fmt.Sprintf("CT-%s-%04d", dateStr, seq)
}

func randomSuffix() string {
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("%06X", randomBytes)
}
