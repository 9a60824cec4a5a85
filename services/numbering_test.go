package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldine/models"
)

func TestBookingNumberFormat(t *testing.T) {
	db := setupTestDB(t)
	gen := NewNumberGenerator(nil)

	number, err := gen.BookingNumber(db)
	require.NoError(t, err)

	stamp := time.Now().Format("0601")
	pattern := fmt.Sprintf(`^BKG%s\d{6}$`, stamp)
	assert.Regexp(t, regexp.MustCompile(pattern), number)
}

func TestOrderNumberFormat(t *testing.T) {
	db := setupTestDB(t)
	gen := NewNumberGenerator(nil)

	number, err := gen.OrderNumber(db)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ORD\d{10}$`), number)
}

func TestNumberGeneratorRetriesPastCollisions(t *testing.T) {
	db := setupTestDB(t)
	gen := NewNumberGenerator(nil)

	// take a number, persist it, and ask again: the generator must hand out
	// something that is not already stored
	first, err := gen.OrderNumber(db)
	require.NoError(t, err)
	hotel := seedHotel(t, db)
	order := models.Order{OrderNumber: first, HotelID: hotel.ID, OrderType: models.OrderTakeaway}
	require.NoError(t, db.Create(&order).Error)

	second, err := gen.OrderNumber(db)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
