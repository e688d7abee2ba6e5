package ebiten

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestTicksPerSecond(t *testing.T) {
	assert.Equal(t, 60, ticksPerSecond(time.Second/60))
	assert.Equal(t, 1, ticksPerSecond(time.Second))
	assert.Equal(t, 1, ticksPerSecond(5*time.Second))
	assert.Equal(t, ebiten.DefaultTPS, ticksPerSecond(0))
}
