package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCents(t *testing.T) {
	assert.Equal(t, int64(12000), Cents(120.00))
	assert.Equal(t, int64(12050), Cents(120.50))
	assert.Equal(t, int64(2820), Cents(28.20))

	// binary float artifacts must round, not truncate
	assert.Equal(t, int64(1), Cents(0.01))
	assert.Equal(t, int64(5799), Cents(57.99))
	assert.Equal(t, int64(-2000), Cents(-20.00))
}

func TestDecimal(t *testing.T) {
	assert.Equal(t, 120.0, Decimal(12000))
	assert.Equal(t, 28.2, Decimal(2820))
	assert.Equal(t, 0.0, Decimal(0))
	assert.Equal(t, -20.0, Decimal(-2000))
}
