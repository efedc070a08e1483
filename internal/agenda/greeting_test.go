package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2024, 3, 10, hour, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, "Good Morning", Greeting(at(0)))
	assert.Equal(t, "Good Morning", Greeting(at(11)))
	assert.Equal(t, "Good Afternoon", Greeting(at(12)))
	assert.Equal(t, "Good Afternoon", Greeting(at(16)))
	assert.Equal(t, "Good Evening", Greeting(at(17)))
	assert.Equal(t, "Good Evening", Greeting(at(20)))
	assert.Equal(t, "Good Night", Greeting(at(21)))
	assert.Equal(t, "Good Night", Greeting(at(23)))
}
