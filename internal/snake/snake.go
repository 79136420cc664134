// Package snake is the small game reachable from Normal mode.
package snake

import (
	"math/rand"
	"time"
)

// Direction of travel.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	}
	return Left
}

// State of a game.
type State int

const (
	Playing State = iota
	GameOver
	Won
)

// Point is a board cell.
type Point struct {
	X, Y int
}

const (
	minWidth        = 8
	minHeight       = 6
	initialInterval = 150 * time.Millisecond
	minInterval     = 40 * time.Millisecond
)

// Game is a snake board.
type Game struct {
	width, height int
	body          []Point // head first
	dir           Direction
	pending       Direction
	food          Point
	state         State
	score         int
	maxScore      int

	interval time.Duration
	lastStep time.Time
	rng      *rand.Rand
}

// New creates a game on a width x height board. rng places the food.
func New(width, height int, rng *rand.Rand) *Game {
	g := &Game{
		width:  max(width, minWidth),
		height: max(height, minHeight),
		rng:    rng,
	}
	g.Restart()
	return g
}

// Restart resets the board keeping its size.
func (g *Game) Restart() {
	x, y := g.width/4, g.height/2
	g.body = []Point{{x, y}, {x - 1, y}, {x - 2, y}}
	g.dir, g.pending = Right, Right
	g.state = Playing
	g.score = 0
	g.maxScore = g.width * g.height / 4
	g.interval = initialInterval
	g.lastStep = time.Time{}
	g.placeFood()
}

// Turn changes direction from the next step on. Reversing is ignored.
func (g *Game) Turn(d Direction) {
	if d != g.dir.opposite() {
		g.pending = d
	}
}

// Tick steps the game when its interval has elapsed since the last step.
func (g *Game) Tick(now time.Time) bool {
	if g.state != Playing || now.Sub(g.lastStep) < g.interval {
		return false
	}
	g.lastStep = now
	return g.Step()
}

// Step advances the snake one cell. It reports whether anything changed.
func (g *Game) Step() bool {
	if g.state != Playing {
		return false
	}
	g.dir = g.pending

	head := g.body[0]
	switch g.dir {
	case Up:
		head.Y--
	case Down:
		head.Y++
	case Left:
		head.X--
	case Right:
		head.X++
	}

	if head.X < 0 || head.Y < 0 || head.X >= g.width || head.Y >= g.height {
		g.state = GameOver
		return true
	}
	// The tail moves away this step, so it is not an obstacle.
	for _, p := range g.body[:len(g.body)-1] {
		if p == head {
			g.state = GameOver
			return true
		}
	}

	g.body = append([]Point{head}, g.body...)
	if head != g.food {
		g.body = g.body[:len(g.body)-1]
		return true
	}

	g.score++
	if g.score >= g.maxScore {
		g.state = Won
		return true
	}
	g.interval = max(g.interval*9/10, minInterval)
	g.placeFood()
	return true
}

func (g *Game) occupied(p Point) bool {
	for _, b := range g.body {
		if b == p {
			return true
		}
	}
	return false
}

func (g *Game) placeFood() {
	var free []Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if p := (Point{x, y}); !g.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.state = Won
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

func (g *Game) Width() int { return g.width }
func (g *Game) Height() int { return g.height }
func (g *Game) Body() []Point { return g.body }
func (g *Game) Head() Point { return g.body[0] }
func (g *Game) Food() Point { return g.food }
func (g *Game) Score() int { return g.score }
func (g *Game) State() State { return g.state }
func (g *Game) Over() bool { return g.state != Playing }
func (g *Game) Direction() Direction { return g.dir }
