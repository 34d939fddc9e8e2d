package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatRoundOffWithPrecision(t *testing.T) {
	value, err := FloatRoundOffWithPrecision(2.667, 2)
	assert.Nil(t, err)
	assert.Equal(t, 2.67, value)

	value, err = FloatRoundOffWithPrecision(5.0/3.0, 2)
	assert.Nil(t, err)
	assert.Equal(t, 1.67, value)

	value, err = FloatRoundOffWithPrecision(4, 2)
	assert.Nil(t, err)
	assert.Equal(t, 4.0, value)

	value, err = FloatRoundOffWithPrecision(0, 2)
	assert.Nil(t, err)
	assert.Equal(t, 0.0, value)
}

func TestRandomLowerAphaNumString(t *testing.T) {
	value := RandomLowerAphaNumString(8)
	assert.Len(t, value, 8)
	assert.NotEqual(t, value, RandomLowerAphaNumString(8))
}
