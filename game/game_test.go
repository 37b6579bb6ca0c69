package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilerun/core"
	"github.com/lixenwraith/tilerun/engine"
	"github.com/lixenwraith/tilerun/input"
	"github.com/lixenwraith/tilerun/level"
)

type soundLog struct {
	core.NopAudio
	played []string
}

func (a *soundLog) PlaySound(s core.Sound, _ bool, _ float64) {
	a.played = append(a.played, s.Name())
}

type harness struct {
	t     *testing.T
	w     *engine.World
	g     *Game
	cs    *engine.ClockScheduler
	clock *engine.MockTimeProvider
	rec   *engine.RecordingRenderer
	audio *soundLog
}

func newHarness(t *testing.T, rows string) *harness {
	t.Helper()
	w, clock, rec := engine.NewTestWorld()
	audio := &soundLog{}
	w.Audio = audio

	g := Register(w, DefaultSprites())
	require.NoError(t, g.Load(w, level.Parse(rows)))

	cs := engine.NewClockScheduler(w, clock, nil, nil)
	cs.Start()
	return &harness{t: t, w: w, g: g, cs: cs, clock: clock, rec: rec, audio: audio}
}

// step runs n ticks of 16ms
func (h *harness) step(n int) {
	h.t.Helper()
	for i := 0; i < n; i++ {
		h.clock.Advance(16 * time.Millisecond)
		require.NoError(h.t, h.cs.Tick())
	}
}

func (h *harness) all(tag core.TypeTag) []*core.Entity {
	var out []*core.Entity
	for e := range h.w.Store.All() {
		if e.Type == tag {
			out = append(out, e)
		}
	}
	return out
}

func (h *harness) player() *core.Entity {
	h.t.Helper()
	players := h.all(TagPlayer)
	require.Len(h.t, players, 1)
	return players[0]
}

func TestPlayerRestsOnFloor(t *testing.T) {
	h := newHarness(t, `
   
 @ 
###
`)
	h.step(30)

	p := h.player()
	assert.InDelta(t, 1.0, p.Y, 1e-9)
	assert.Zero(t, p.SpeedY)
	assert.True(t, core.AttrsOf[PlayerAttrs](p).Grounded)
}

func TestPlayerFallsOntoFloor(t *testing.T) {
	h := newHarness(t, `
 @ 
   
   
###
`)
	h.step(60)
	assert.InDelta(t, 2.0, h.player().Y, 1e-9)
}

func TestPlayerJumpsOnlyWhenGrounded(t *testing.T) {
	h := newHarness(t, `
   
   
   
 @ 
###
`)
	h.step(3)
	p := h.player()
	require.True(t, core.AttrsOf[PlayerAttrs](p).Grounded)

	h.w.Keys.Press(input.KeySpace)
	h.step(1)
	assert.Less(t, p.Y, 3.0)
	assert.Less(t, p.SpeedY, 0.0)
	assert.Equal(t, []string{"jump"}, h.audio.played)

	// holding the key does not jump again, and mid-air presses are ignored
	h.w.Keys.Release(input.KeySpace)
	h.w.Keys.Press(input.KeyUp)
	h.step(5)
	assert.Equal(t, []string{"jump"}, h.audio.played)

	h.w.Keys.Release(input.KeyUp)
	h.step(120)
	assert.InDelta(t, 3.0, p.Y, 1e-9)
}

func TestPlayerStopsAtWall(t *testing.T) {
	h := newHarness(t, `
@   #
#####
`)
	h.w.Keys.Press(input.KeyRight)
	h.step(60)

	p := h.player()
	// flush with the wall at x=4 given the inset bounding box
	assert.InDelta(t, 4-0.1-0.8, p.X, 1e-9)
	assert.Equal(t, 1.0, core.AttrsOf[PlayerAttrs](p).Facing)

	h.w.Keys.Release(input.KeyRight)
	h.w.Keys.Press(input.KeyLeft)
	h.step(1)
	assert.Equal(t, -1.0, core.AttrsOf[PlayerAttrs](p).Facing)
}

func TestPlayerCollectsCoins(t *testing.T) {
	h := newHarness(t, `
@ $ $ #$
########
`)
	h.w.Keys.Press(input.KeyRight)
	h.step(60)

	// the coin behind the wall stays out of reach
	assert.Len(t, h.all(TagCoin), 1)
	assert.Zero(t, h.w.Status.Int("cleared").Load())
	assert.Equal(t, int64(2*CoinScore), h.g.Score())
	assert.Equal(t, int64(2), h.w.Status.Int("coins").Load())
	assert.Equal(t, []string{"coin", "coin"}, h.audio.played)
}

func TestLastCoinRestartsLevel(t *testing.T) {
	h := newHarness(t, `
@ $ #
#####
`)
	first := h.player()
	h.w.Keys.Press(input.KeyRight)
	h.step(20)

	assert.Equal(t, int64(1), h.w.Status.Int("cleared").Load())
	assert.Equal(t, int64(CoinScore), h.g.Score())
	assert.Len(t, h.all(TagCoin), 1)
	assert.Len(t, h.all(TagWall), 6)

	p := h.player()
	assert.NotEqual(t, first.Ref, p.Ref)
	assert.Less(t, p.X, 1.0)
	var stale *core.StaleReferenceError
	assert.ErrorAs(t, h.w.RemoveEntity(first), &stale)
}

func TestPlayerStompsEnemy(t *testing.T) {
	h := newHarness(t, `
 @ 
   
#E#
###
`)
	h.step(120)

	assert.Empty(t, h.all(TagEnemy))
	assert.Equal(t, int64(StompScore), h.g.Score())
	assert.Zero(t, h.w.Status.Int("deaths").Load())
	assert.Contains(t, h.audio.played, "stomp")
	// bounced, then dropped into the gap
	assert.InDelta(t, 2.0, h.player().Y, 1e-9)
}

func TestEnemyContactRespawnsPlayer(t *testing.T) {
	h := newHarness(t, `
       
@   E  
#######
`)
	h.step(120)

	assert.Positive(t, h.w.Status.Int("deaths").Load())
	assert.Contains(t, h.audio.played, "hurt")
	assert.Len(t, h.all(TagEnemy), 1)
}

func TestEnemyTurnsAtWalls(t *testing.T) {
	h := newHarness(t, `
#  E #
######
`)
	enemy := h.all(TagEnemy)[0]
	h.step(2)
	assert.Equal(t, -1.0, core.AttrsOf[EnemyAttrs](enemy).Dir)

	h.step(80)
	// reached the left wall at x=1 and turned around
	assert.Equal(t, 1.0, core.AttrsOf[EnemyAttrs](enemy).Dir)
	assert.GreaterOrEqual(t, enemy.X, 1.0)
	assert.LessOrEqual(t, enemy.X, 4.0)
}

func TestCameraFollowsPlayer(t *testing.T) {
	h := newHarness(t, `
  @  
#####
`)
	h.step(2)
	p := h.player()
	assert.Equal(t, core.Camera{X: p.X + 0.5, Y: p.Y}, h.w.Camera)
}

func TestDefaultLevelRuns(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.g.Load(h.w, DefaultLevel.Rows))

	h.player()
	assert.NotEmpty(t, h.all(TagCoin))
	assert.NotEmpty(t, h.all(TagEnemy))

	h.w.Keys.Press(input.KeyRight)
	h.step(120)

	assert.Equal(t, 120, h.rec.Frames)
	assert.Positive(t, h.rec.Rects)

	assets := map[string]bool{}
	for _, d := range h.rec.Draws {
		assets[d.Asset] = true
	}
	assert.True(t, assets["player"])
	assert.True(t, assets["coin"])
	assert.True(t, assets["enemy"])
}

func TestAttributesAreCopiedPerEntity(t *testing.T) {
	h := newHarness(t, `
E  E
####
`)
	enemies := h.all(TagEnemy)
	require.Len(t, enemies, 2)
	core.AttrsOf[EnemyAttrs](enemies[0]).Dir = 1
	assert.Equal(t, -1.0, core.AttrsOf[EnemyAttrs](enemies[1]).Dir)
}
