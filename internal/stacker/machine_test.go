package stacker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func TestNewStartsInInit(t *testing.T) {
	h := newHarness(testConfig())

	assert.Equal(t, StateInit, h.m.State())
	h.m.Tick(frame)
	h.m.OnActivate()
	assert.Empty(t, h.physics.steps)
	assert.Empty(t, h.m.Context().Stack)
}

func TestStartPromptsAndRunsAttractMode(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Start()

	assert.Equal(t, "alice", h.ui.username)
	assert.Equal(t, StatePlaying, h.m.State())
	assert.True(t, h.m.Context().Autopilot)
	assert.True(t, h.ui.instructions)
}

func TestResetInvariants(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)
	for i := 0; i < 3; i++ {
		_, ok := h.place(0.4)
		require.True(t, ok)
	}
	h.m.Tick(frame)
	require.NotEmpty(t, h.m.Context().Overhangs)

	h.m.Reset(false)
	ctx := h.m.Context()

	require.Len(t, ctx.Stack, 2)
	assert.Empty(t, ctx.Overhangs)
	assert.Empty(t, ctx.Markers)
	assert.False(t, ctx.GameEnded)
	assert.False(t, ctx.Autopilot)
	assert.Equal(t, cfg.Speed.Initial, ctx.Speed)
	assert.Equal(t, 0, ctx.Score)
	assert.Equal(t, 1, ctx.Level)
	assert.Equal(t, 0, h.ui.score)
	assert.Equal(t, 1, h.ui.level)
	assert.False(t, h.ui.results)

	assert.Equal(t, AxisNone, ctx.Stack[0].Axis)
	assert.Equal(t, AxisX, ctx.Stack[1].Axis)
	assert.Equal(t, cfg.World.OriginalSize, ctx.Stack[0].Width)
	assert.Equal(t, cfg.World.StartOffset, ctx.Stack[1].Position.X())
	assert.Equal(t, cfg.World.BlockHeight, ctx.Stack[1].Position.Y())

	assert.Equal(t, 2, h.renderer.inScene(), "old meshes must leave the scene")
	assert.Equal(t, cfg.Camera.Position[1], h.m.Camera().Position.Y())
}

func TestCutConservesExtent(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)

	for _, offset := range []float64{0.7, -0.3, 0.25, -0.1} {
		top := h.m.Context().Top()
		before := Extent(top, top.Axis)

		cut, ok := h.place(offset)
		require.True(t, ok)
		assert.InDelta(t, before, cut.Overlap+cut.OverhangSize, 1e-9)
		assert.InDelta(t, cut.Overlap, Extent(top, cut.Axis), 1e-9)
	}
}

func TestAxisAlternates(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)

	want := AxisX
	for i := 0; i < 6; i++ {
		assert.Equal(t, want, h.m.Context().Top().Axis)
		_, ok := h.place(0)
		require.True(t, ok)
		want = want.Other()
	}
}

func TestNextLayerStartsOffStageOnNewAxis(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)

	_, ok := h.place(0.5)
	require.True(t, ok)
	placed := h.m.Context().Previous()
	next := h.m.Context().Top()

	assert.Equal(t, AxisZ, next.Axis)
	assert.InDelta(t, placed.Position.X(), next.Position.X(), 1e-9)
	assert.Equal(t, cfg.World.StartOffset, next.Position.Z())
	assert.Equal(t, placed.Width, next.Width)
	assert.Equal(t, placed.Depth, next.Depth)
	assert.InDelta(t, 2*cfg.World.BlockHeight, next.Position.Y(), 1e-9)
}

func TestLevelUpEveryTenPoints(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)

	for i := 1; i <= 21; i++ {
		_, ok := h.place(0)
		require.True(t, ok)

		ctx := h.m.Context()
		assert.Equal(t, i, ctx.Score)
		assert.Equal(t, 1+i/10, ctx.Level, "score %d", i)
		assert.InDelta(t, cfg.Speed.Initial+float64(i/10)*cfg.Speed.Increment, ctx.Speed, 1e-9)
	}
	assert.Equal(t, 21, h.ui.score)
	assert.Equal(t, 3, h.ui.level)
}

func TestPerfectCutLeavesNoOverhang(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)

	cut, ok := h.place(0)
	require.True(t, ok)
	assert.Zero(t, cut.Shift())
	assert.Empty(t, h.m.Context().Overhangs)
	assert.Equal(t, 3.0, h.m.Context().Previous().Width)
}

func TestManualCutScenario(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)
	ctx := h.m.Context()
	ctx.Previous().Width = 2
	ctx.Top().Width = 2

	cut, ok := h.place(1)
	require.True(t, ok)

	assert.Equal(t, 1.0, cut.Overlap)
	assert.Equal(t, 1.0, cut.Shift())

	placed := ctx.Previous()
	assert.Equal(t, 1.0, placed.Width)
	assert.Equal(t, 0.5, placed.Position.X())

	require.Len(t, ctx.Overhangs, 1)
	over := ctx.Overhangs[0]
	assert.Equal(t, 1.0, over.Width)
	assert.Equal(t, 3.0, over.Depth)
	assert.Equal(t, 1.5, over.Position.X())
	assert.Equal(t, placed.Position.Y(), over.Position.Y())
	assert.Equal(t, PhysicsDriven, over.Mode)
	assert.Greater(t, over.Mass, 0.0)

	mesh := h.renderer.meshes[placed.Mesh]
	assert.Equal(t, 0.5, mesh.scale.X())
	assert.Equal(t, 0.5, mesh.position.X())
	body := h.physics.bodies[placed.Body]
	assert.Equal(t, 1, body.replaced)
	assert.Equal(t, 0.5, body.shape.HalfExtents.X())
	assert.Zero(t, body.mass)
}

func TestNegativeDeltaShiftsOverhangBack(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)

	cut, ok := h.place(-1)
	require.True(t, ok)
	assert.Equal(t, -1.5, cut.Shift())

	over := h.m.Context().Overhangs[0]
	assert.Equal(t, -2.0, over.Position.X())
	assert.Equal(t, -0.5, h.m.Context().Previous().Position.X())
}

func TestFullOffsetIsAMiss(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)

	cut, ok := h.place(3)
	assert.False(t, ok)
	assert.Equal(t, 0.0, cut.Overlap)

	ctx := h.m.Context()
	assert.True(t, ctx.GameEnded)
	assert.Equal(t, StateEnded, h.m.State())
	assert.Len(t, ctx.Stack, 1)
	require.Len(t, ctx.Overhangs, 1)
	assert.Equal(t, 3.0, ctx.Overhangs[0].Position.X())
	assert.Equal(t, 1, h.ui.resultsShown)
}

func TestMovingPastBoundEndsGame(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)

	for i := 0; i < 1000 && !h.m.Context().GameEnded; i++ {
		h.m.Tick(frame)
	}

	ctx := h.m.Context()
	require.True(t, ctx.GameEnded)
	assert.Len(t, ctx.Stack, 1)
	require.Len(t, ctx.Overhangs, 1)
	assert.Greater(t, ctx.Overhangs[0].Position.X(), cfg.World.PlayBound-1)
	assert.True(t, h.ui.results)
}

func TestInputAfterGameOverIsIgnored(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)
	h.place(3)
	require.True(t, h.m.Context().GameEnded)

	overhangs := len(h.m.Context().Overhangs)
	h.m.OnActivate()
	h.m.Tick(time.Second)

	assert.Len(t, h.m.Context().Overhangs, overhangs)
	assert.True(t, h.m.Context().GameEnded)
	assert.Len(t, h.m.Context().Stack, 1)

	h.m.OnRestart()
	assert.Equal(t, StatePlaying, h.m.State())
	assert.Len(t, h.m.Context().Stack, 2)
}

func TestAutopilotNearPerfect(t *testing.T) {
	cfg := testConfig()
	cfg.Autopilot.PrecisionMin = 0
	cfg.Autopilot.PrecisionMax = 0
	h := newHarness(cfg)
	h.m.Start()

	first := h.m.Context().Top()
	for i := 0; i < 500 && h.m.Context().Score == 0; i++ {
		h.m.Tick(frame)
	}

	require.Equal(t, 1, h.m.Context().Score)
	assert.GreaterOrEqual(t, first.Width, 2.5)
	assert.False(t, h.m.Context().GameEnded)
	assert.Zero(t, h.ui.resultsShown)
}

func TestAutopilotPrecisionRange(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Start()

	for i := 0; i < 100; i++ {
		h.m.drawPrecision()
		p := h.m.Context().RobotPrecision
		assert.GreaterOrEqual(t, p, cfg.Autopilot.PrecisionMin)
		assert.Less(t, p, cfg.Autopilot.PrecisionMax)
	}
}

func TestActivateLeavesAttractMode(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Start()
	require.True(t, h.m.Context().Autopilot)

	h.m.OnActivate()
	assert.False(t, h.m.Context().Autopilot)
	assert.Len(t, h.m.Context().Stack, 2)
	assert.False(t, h.ui.instructions)
}

func TestAutopilotRestartsAfterDelay(t *testing.T) {
	cfg := testConfig()
	cfg.Autopilot.RestartDelayMs = 100
	h := newHarness(cfg)
	h.m.Start()
	h.place(3)
	require.True(t, h.m.Context().GameEnded)
	assert.Zero(t, h.ui.resultsShown)

	h.m.Tick(50 * time.Millisecond)
	assert.True(t, h.m.Context().GameEnded)
	h.m.Tick(60 * time.Millisecond)
	assert.False(t, h.m.Context().GameEnded)
	assert.True(t, h.m.Context().Autopilot)
}

func TestManualGameDoesNotRestartByItself(t *testing.T) {
	cfg := testConfig()
	cfg.Autopilot.RestartDelayMs = 10
	h := newHarness(cfg)
	h.m.Reset(false)
	h.place(3)

	h.m.Tick(time.Second)
	assert.True(t, h.m.Context().GameEnded)
}

func TestFirstAdvanceOnlyRecordsBaseline(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)
	top := h.m.Context().Top()
	start := top.Position.X()

	t0 := time.Unix(1000, 0)
	h.m.Advance(t0)
	assert.Empty(t, h.physics.steps)
	assert.Equal(t, start, top.Position.X())

	h.m.Advance(t0.Add(100 * time.Millisecond))
	require.Len(t, h.physics.steps, 1)
	assert.InDelta(t, 0.1, h.physics.steps[0], 1e-9)
	assert.InDelta(t, start+cfg.Speed.Initial*0.1, top.Position.X(), 1e-9)

	body := h.physics.bodies[top.Body]
	mesh := h.renderer.meshes[top.Mesh]
	assert.Equal(t, top.Position, body.position)
	assert.Equal(t, top.Position, mesh.position)
}

func TestResetClearsBaseline(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)
	t0 := time.Unix(1000, 0)
	h.m.Advance(t0)
	h.m.Advance(t0.Add(frame))
	require.Len(t, h.physics.steps, 1)

	h.m.Reset(false)
	h.m.Advance(t0.Add(time.Hour))
	assert.Len(t, h.physics.steps, 1)
}

func TestPhysicsDrivesOverhangs(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)
	_, ok := h.place(1)
	require.True(t, ok)

	over := h.m.Context().Overhangs[0]
	y := over.Position.Y()
	h.m.Tick(frame)

	body := h.physics.bodies[over.Body]
	mesh := h.renderer.meshes[over.Mesh]
	assert.Equal(t, y-h.physics.fall, over.Position.Y())
	assert.Equal(t, body.position, mesh.position)
	assert.Equal(t, h.physics.Orientation(over.Body), mesh.orient)

	marker := h.m.Context().Markers[0]
	assert.Equal(t, h.physics.bodies[marker.Body].position, h.renderer.meshes[marker.Mesh].position)
}

func TestBonusMarkerCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Bonus.Enabled = false
	h := newHarness(cfg)
	h.m.Reset(false)
	h.place(1)

	assert.Len(t, h.m.Context().Overhangs, 1)
	assert.Empty(t, h.m.Context().Markers)
}

func TestMarkerSitsAboveOverhang(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)
	h.place(1)

	over := h.m.Context().Overhangs[0]
	marker := h.m.Context().Markers[0]
	assert.Equal(t, 0.25, marker.Radius)

	pos := h.renderer.meshes[marker.Mesh].position
	assert.Equal(t, over.Position.X(), pos.X())
	assert.Equal(t, over.Position.Y()+cfg.World.BlockHeight+marker.Radius, pos.Y())
}

func TestCameraFollowsStack(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)
	for i := 0; i < 5; i++ {
		h.place(0)
	}

	y := h.m.Camera().Position.Y()
	h.m.Tick(100 * time.Millisecond)
	assert.InDelta(t, y+cfg.Speed.Initial*0.1, h.m.Camera().Position.Y(), 1e-9)

	h.m.camera.Position[1] = 100
	h.m.Tick(frame)
	assert.Equal(t, 100.0, h.m.Camera().Position.Y())
}

func TestResizeOnlyReframesCamera(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)
	top := *h.m.Context().Top()

	h.m.OnResize(4)
	assert.InDelta(t, cfg.Camera.ViewWidth/4, h.m.Camera().ViewHeight, 1e-9)
	assert.Equal(t, top, *h.m.Context().Top())

	h.m.OnResize(0)
	assert.InDelta(t, cfg.Camera.ViewWidth/4, h.m.Camera().ViewHeight, 1e-9)

	h.m.Reset(false)
	assert.InDelta(t, cfg.Camera.ViewWidth/4, h.m.Camera().ViewHeight, 1e-9)
}

func TestDrawRendersCurrentCamera(t *testing.T) {
	h := newHarness(testConfig())
	h.m.Reset(false)
	h.m.Draw()

	assert.Equal(t, 1, h.renderer.renders)
	assert.Equal(t, h.m.Camera(), h.renderer.lastCam)
}

func TestLayerColorsFollowHeight(t *testing.T) {
	cfg := testConfig()
	h := newHarness(cfg)
	h.m.Reset(false)
	h.place(0)

	for i, b := range h.m.Context().Stack {
		c := h.renderer.meshes[b.Mesh].color
		assert.Equal(t, cfg.Blocks.HueStart+cfg.Blocks.HueStep*float64(i), c.Hue)
	}
}
