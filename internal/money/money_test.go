package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "750.00", Format(750))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "10.50", Format(10.5))
	assert.Equal(t, "0.30", Format(0.1+0.2))
	assert.Equal(t, "2.68", Format(2.675))
}

func TestTotal(t *testing.T) {
	assert.Equal(t, float64(750), Total(250, 3))
	price := 19.99
	assert.Equal(t, price*7, Total(price, 7))
	assert.NotEqual(t, 139.93, Total(price, 7))
	assert.Equal(t, float64(0), Total(0, 5))
}
