// Package pong implements the two-paddle ball game.
//
// The game is a fixed-timestep simulation on a 600x400 logical field.
// The caller drives it by calling Tick and scheduling the next tick after
// the returned delay; Generation identifies a run so that ticks scheduled
// before a restart can be recognized and dropped.
package pong

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Field and object dimensions in logical units.
const (
	Width        = 600.0
	Height       = 400.0
	PaddleWidth  = 10.0
	PaddleHeight = 80.0
	PaddleMargin = 20.0
	BallSize     = 15.0
)

// Movement tuning.
const (
	BaseSpeed   = 3.0
	PlayerStep  = 15.0
	CPUStep     = 5.0
	CPUDeadZone = 10.0
	SpeedUp     = 1.05
)

// Default timing.
const (
	DefaultTickInterval = 15 * time.Millisecond
	DefaultServeDelay   = time.Second
)

// Side identifies a paddle.
type Side int

const (
	Left Side = iota
	Right
)

// Rect is an axis-aligned box given by its corners.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return (r.Y1 + r.Y2) / 2 }

func (r Rect) shift(dx, dy float64) Rect {
	return Rect{r.X1 + dx, r.Y1 + dy, r.X2 + dx, r.Y2 + dy}
}

// Event is something noteworthy that happened during a tick.
type Event int

const (
	EventHitLeft Event = iota + 1
	EventHitRight
	EventScoreLeft
	EventScoreRight
)

func (e Event) String() string {
	switch e {
	case EventHitLeft:
		return "Ball hit left paddle! Speed increased."
	case EventHitRight:
		return "Ball hit right paddle! Speed increased."
	case EventScoreLeft, EventScoreRight:
		return "Score! Resetting ball position."
	}
	return ""
}

// Game is the game state.
type Game struct {
	LeftPaddle  Rect
	RightPaddle Rect
	Ball        Rect

	DX, DY     float64
	Multiplier float64

	ScoreLeft  int
	ScoreRight int

	Running    bool
	Generation int

	TickInterval time.Duration
	ServeDelay   time.Duration

	rng *rand.Rand
}

// New creates a stopped game. A nil rng seeds one from the runtime.
func New(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g := &Game{
		TickInterval: DefaultTickInterval,
		ServeDelay:   DefaultServeDelay,
		rng:          rng,
	}
	g.reset()
	return g
}

// reset places paddles and ball and clears scores and speed.
func (g *Game) reset() {
	g.LeftPaddle = Rect{
		PaddleMargin, Height/2 - PaddleHeight/2,
		PaddleMargin + PaddleWidth, Height/2 + PaddleHeight/2,
	}
	g.RightPaddle = Rect{
		Width - PaddleMargin - PaddleWidth, Height/2 - PaddleHeight/2,
		Width - PaddleMargin, Height/2 + PaddleHeight/2,
	}
	g.centerBall()
	g.ScoreLeft = 0
	g.ScoreRight = 0
	g.Multiplier = 1.0
}

func (g *Game) centerBall() {
	g.Ball = Rect{
		Width/2 - BallSize/2, Height/2 - BallSize/2,
		Width/2 + BallSize/2, Height/2 + BallSize/2,
	}
}

func (g *Game) sign() float64 {
	if g.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Start starts or restarts the game and returns the new generation.
// Ticks from earlier generations must be discarded by the caller.
func (g *Game) Start() int {
	g.reset()
	g.DX = g.sign() * BaseSpeed
	g.DY = g.sign() * BaseSpeed
	g.Running = true
	g.Generation++
	return g.Generation
}

// Stop halts the game. Pending ticks become stale.
func (g *Game) Stop() {
	if !g.Running {
		return
	}
	g.Running = false
	g.Generation++
}

// Score returns the score line.
func (g *Game) Score() string {
	return fmt.Sprintf("Player: %d | CPU: %d", g.ScoreLeft, g.ScoreRight)
}

// paddle returns a pointer to the paddle on side.
func (g *Game) paddle(side Side) *Rect {
	if side == Left {
		return &g.LeftPaddle
	}
	return &g.RightPaddle
}

// MovePaddle moves a paddle vertically by dy. The move is ignored when
// the game is stopped or when it would leave the field.
func (g *Game) MovePaddle(side Side, dy float64) {
	if !g.Running {
		return
	}
	p := g.paddle(side)
	next := p.shift(0, dy)
	if next.Y1 >= 0 && next.Y2 <= Height {
		*p = next
	}
}

// cpu moves the right paddle toward the ball.
func (g *Game) cpu() {
	ball := g.Ball.CenterY()
	pad := g.RightPaddle.CenterY()
	switch {
	case ball < pad-CPUDeadZone:
		g.MovePaddle(Right, -CPUStep)
	case ball > pad+CPUDeadZone:
		g.MovePaddle(Right, CPUStep)
	}
}

// Tick advances the game by one step. It returns the events that
// happened and the delay before the next tick should run. A stopped game
// returns no events and a zero delay.
func (g *Game) Tick() ([]Event, time.Duration) {
	if !g.Running {
		return nil, 0
	}

	var events []Event
	g.Ball = g.Ball.shift(g.DX*g.Multiplier, g.DY*g.Multiplier)
	b := g.Ball

	if (b.Y1 <= 0 && g.DY < 0) || (b.Y2 >= Height && g.DY > 0) {
		g.DY = -g.DY
	}

	l := g.LeftPaddle
	if b.X1 <= l.X2 && b.Y2 >= l.Y1 && b.Y1 <= l.Y2 && g.DX < 0 {
		g.DX = -g.DX
		g.Multiplier *= SpeedUp
		events = append(events, EventHitLeft)
	}

	r := g.RightPaddle
	if b.X2 >= r.X1 && b.Y2 >= r.Y1 && b.Y1 <= r.Y2 && g.DX > 0 {
		g.DX = -g.DX
		g.Multiplier *= SpeedUp
		events = append(events, EventHitRight)
	}

	delay := g.TickInterval
	switch {
	case b.X1 < 0:
		g.ScoreRight++
		events = append(events, EventScoreRight)
		g.serve()
		delay = g.ServeDelay
	case b.X2 > Width:
		g.ScoreLeft++
		events = append(events, EventScoreLeft)
		g.serve()
		delay = g.ServeDelay
	}

	g.cpu()
	return events, delay
}

// serve re-centres the ball after a point: X direction flips, Y gets a
// random slope and the speed multiplier resets.
func (g *Game) serve() {
	g.centerBall()
	g.DX = -g.DX
	g.DY = g.sign() * (2 + 2*g.rng.Float64())
	g.Multiplier = 1.0
}
