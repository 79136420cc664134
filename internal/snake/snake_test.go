package snake

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(w, h int) *Game {
	return New(w, h, rand.New(rand.NewSource(1)))
}

func TestInitialBoard(t *testing.T) {
	g := newGame(20, 10)
	assert.Equal(t, []Point{{5, 5}, {4, 5}, {3, 5}}, g.Body())
	assert.Equal(t, Playing, g.State())
	assert.False(t, g.occupied(g.Food()), "food never spawns on the snake")
}

func TestMinimumBoardSize(t *testing.T) {
	g := newGame(1, 1)
	assert.Equal(t, minWidth, g.Width())
	assert.Equal(t, minHeight, g.Height())
}

func TestStepMovesAndReversalIsIgnored(t *testing.T) {
	g := newGame(20, 10)
	g.food = Point{0, 0}

	g.Turn(Left)
	require.True(t, g.Step())
	assert.Equal(t, Point{6, 5}, g.Head(), "reversal ignored")

	g.Turn(Down)
	g.Step()
	assert.Equal(t, Point{6, 6}, g.Head())
	assert.Len(t, g.Body(), 3)
}

func TestEatingGrowsAndScores(t *testing.T) {
	g := newGame(20, 10)
	g.food = Point{6, 5}
	g.Step()
	assert.Equal(t, 1, g.Score())
	assert.Len(t, g.Body(), 4)
	assert.False(t, g.occupied(g.Food()))
	assert.Less(t, g.interval, initialInterval)
}

func TestWallEndsGame(t *testing.T) {
	g := newGame(20, 10)
	g.food = Point{0, 0}
	g.Turn(Up)
	for i := 0; i < 10 && !g.Over(); i++ {
		g.Step()
	}
	assert.Equal(t, GameOver, g.State())
	assert.False(t, g.Step(), "a finished game does not move")

	g.Restart()
	assert.Equal(t, Playing, g.State())
	assert.Zero(t, g.Score())
}

func TestSelfCollision(t *testing.T) {
	g := newGame(20, 10)
	g.body = []Point{{5, 5}, {4, 5}, {4, 6}, {5, 6}, {6, 6}}
	g.dir, g.pending = Up, Up
	g.food = Point{0, 0}
	g.Turn(Down)
	g.Turn(Left)
	g.Step()
	assert.Equal(t, GameOver, g.State())
}

func TestTickHonoursInterval(t *testing.T) {
	g := newGame(20, 10)
	g.food = Point{0, 0}
	start := time.Unix(1000, 0)
	assert.True(t, g.Tick(start))
	assert.False(t, g.Tick(start.Add(10*time.Millisecond)))
	assert.True(t, g.Tick(start.Add(initialInterval)))
}
