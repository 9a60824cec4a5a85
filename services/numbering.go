package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hoteldine/apperrors"
	"hoteldine/models"
)

const numberAttempts = 5

// NumberGenerator hands out human-readable display numbers, format
// PREFIX + yy + mm + 6 digits, unique per collection. With Redis configured
// the digits come from a monthly INCR sequence; without it they are random
// and the unique index plus retry catches collisions.
type NumberGenerator struct {
	redis *redis.Client
}

func NewNumberGenerator(rdb *redis.Client) *NumberGenerator {
	return &NumberGenerator{redis: rdb}
}

// BookingNumber returns a fresh unused booking number.
func (g *NumberGenerator) BookingNumber(tx *gorm.DB) (string, error) {
	return g.next(tx, "BKG", &models.Booking{}, "booking_number")
}

// OrderNumber returns a fresh unused order number.
func (g *NumberGenerator) OrderNumber(tx *gorm.DB) (string, error) {
	return g.next(tx, "ORD", &models.Order{}, "order_number")
}

func (g *NumberGenerator) next(tx *gorm.DB, prefix string, model interface{}, column string) (string, error) {
	stamp := time.Now().Format("0601") // yymm

	for attempt := 0; attempt < numberAttempts; attempt++ {
		digits, err := g.digits(prefix, stamp)
		if err != nil {
			return "", apperrors.Internal(err)
		}
		candidate := fmt.Sprintf("%s%s%06d", prefix, stamp, digits)

		var count int64
		if err := tx.Model(model).Where(column+" = ?", candidate).Count(&count).Error; err != nil {
			return "", apperrors.Internal(err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", apperrors.Conflict("could not allocate a unique %s number", prefix)
}

func (g *NumberGenerator) digits(prefix, stamp string) (int64, error) {
	if g.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		key := fmt.Sprintf("seq:%s:%s", prefix, stamp)
		seq, err := g.redis.Incr(ctx, key).Result()
		if err == nil {
			// keep the counter from outliving its month by much
			g.redis.Expire(ctx, key, 40*24*time.Hour)
			return seq % 1000000, nil
		}
		// Redis unreachable: fall through to random digits
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
