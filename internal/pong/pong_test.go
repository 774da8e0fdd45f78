package pong

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return New(rand.New(rand.NewPCG(1, 2)))
}

func TestNewIsStopped(t *testing.T) {
	g := newTestGame(t)
	assert.False(t, g.Running)
	assert.Equal(t, "Player: 0 | CPU: 0", g.Score())
	assert.Equal(t, Width/2, (g.Ball.X1+g.Ball.X2)/2)
	assert.Equal(t, Height/2, g.Ball.CenterY())

	events, delay := g.Tick()
	assert.Empty(t, events)
	assert.Zero(t, delay)
}

func TestStart(t *testing.T) {
	g := newTestGame(t)
	gen := g.Start()

	require.True(t, g.Running)
	assert.Equal(t, 1, gen)
	assert.Equal(t, BaseSpeed, abs(g.DX))
	assert.Equal(t, BaseSpeed, abs(g.DY))
	assert.Equal(t, 1.0, g.Multiplier)

	g.ScoreLeft = 3
	gen2 := g.Start()
	assert.Equal(t, 2, gen2, "restart must bump the generation")
	assert.Zero(t, g.ScoreLeft, "restart resets scores")
}

func TestStopInvalidatesTicks(t *testing.T) {
	g := newTestGame(t)
	gen := g.Start()
	g.Stop()
	assert.False(t, g.Running)
	assert.NotEqual(t, gen, g.Generation)

	before := g.Generation
	g.Stop()
	assert.Equal(t, before, g.Generation, "stopping twice is a no-op")
}

func TestMovePaddle(t *testing.T) {
	g := newTestGame(t)

	y := g.LeftPaddle.Y1
	g.MovePaddle(Left, -PlayerStep)
	assert.Equal(t, y, g.LeftPaddle.Y1, "stopped game ignores input")

	g.Start()
	g.MovePaddle(Left, -PlayerStep)
	assert.Equal(t, y-PlayerStep, g.LeftPaddle.Y1)

	for i := 0; i < 100; i++ {
		g.MovePaddle(Left, -PlayerStep)
	}
	assert.GreaterOrEqual(t, g.LeftPaddle.Y1, 0.0)

	for i := 0; i < 100; i++ {
		g.MovePaddle(Left, PlayerStep)
	}
	assert.LessOrEqual(t, g.LeftPaddle.Y2, Height)
	assert.Equal(t, PaddleHeight, g.LeftPaddle.Y2-g.LeftPaddle.Y1)
}

func TestWallBounce(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	g.Ball = Rect{300, 1, 315, 16}
	g.DX, g.DY = 3, -3

	g.Tick()
	assert.Equal(t, 3.0, g.DY)

	g.Ball = Rect{300, Height - 16, 315, Height - 1}
	g.Tick()
	assert.Equal(t, -3.0, g.DY)
}

func TestPaddleHitSpeedsUp(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	l := g.LeftPaddle
	g.Ball = Rect{l.X2 + 1, l.Y1 + 10, l.X2 + 1 + BallSize, l.Y1 + 10 + BallSize}
	g.DX, g.DY = -3, 0

	events, delay := g.Tick()
	assert.Equal(t, []Event{EventHitLeft}, events)
	assert.Equal(t, 3.0, g.DX)
	assert.InDelta(t, SpeedUp, g.Multiplier, 1e-9)
	assert.Equal(t, g.TickInterval, delay)
}

func TestPaddleHitRequiresApproach(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	l := g.LeftPaddle
	g.Ball = Rect{l.X2 - 5, l.Y1 + 10, l.X2 - 5 + BallSize, l.Y1 + 10 + BallSize}
	g.DX, g.DY = 3, 0

	events, _ := g.Tick()
	assert.NotContains(t, events, EventHitLeft)
	assert.Equal(t, 3.0, g.DX)
}

func TestRightPaddleHit(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	r := g.RightPaddle
	g.Ball = Rect{r.X1 - BallSize - 1, r.Y1 + 10, r.X1 - 1, r.Y1 + 10 + BallSize}
	g.DX, g.DY = 3, 0

	events, _ := g.Tick()
	assert.Equal(t, []Event{EventHitRight}, events)
	assert.Equal(t, -3.0, g.DX)
}

func TestScoring(t *testing.T) {
	tests := []struct {
		name      string
		ball      Rect
		dx        float64
		event     Event
		wantLeft  int
		wantRight int
	}{
		{"ball past left edge scores for cpu", Rect{1, 10, 16, 25}, -3, EventScoreRight, 0, 1},
		{"ball past right edge scores for player", Rect{Width - 16, 10, Width - 1, 25}, 3, EventScoreLeft, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			g.Start()
			g.Multiplier = 1.5
			g.Ball = tt.ball
			g.DX, g.DY = tt.dx, 0

			events, delay := g.Tick()
			assert.Contains(t, events, tt.event)
			assert.Equal(t, tt.wantLeft, g.ScoreLeft)
			assert.Equal(t, tt.wantRight, g.ScoreRight)
			assert.Equal(t, g.ServeDelay, delay)

			assert.Equal(t, 1.0, g.Multiplier)
			assert.Equal(t, -tt.dx, g.DX, "serve flips horizontal direction")
			assert.GreaterOrEqual(t, abs(g.DY), 2.0)
			assert.LessOrEqual(t, abs(g.DY), 4.0)
			assert.Equal(t, Height/2, g.Ball.CenterY())
		})
	}
}

func TestCPUFollowsBall(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	g.DX, g.DY = 0, 0

	g.Ball = Rect{300, 10, 315, 25}
	y := g.RightPaddle.Y1
	g.Tick()
	assert.Equal(t, y-CPUStep, g.RightPaddle.Y1)

	g.Ball = Rect{300, 380, 315, 395}
	y = g.RightPaddle.Y1
	g.Tick()
	assert.Equal(t, y+CPUStep, g.RightPaddle.Y1)

	g.Ball = Rect{300, g.RightPaddle.CenterY() - 2, 315, g.RightPaddle.CenterY() + 13}
	y = g.RightPaddle.Y1
	g.Tick()
	assert.Equal(t, y, g.RightPaddle.Y1, "cpu holds inside the dead zone")
}

func TestEventString(t *testing.T) {
	assert.Contains(t, EventHitLeft.String(), "Speed increased")
	assert.Equal(t, "Score! Resetting ball position.", EventScoreLeft.String())
	assert.Empty(t, Event(0).String())
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
