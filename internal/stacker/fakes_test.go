package stacker

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/engine"
)

type fakeMesh struct {
	geometry engine.Geometry
	color    engine.Color
	position mgl64.Vec3
	orient   mgl64.Quat
	scale    mgl64.Vec3
	inScene  bool
}

type fakeRenderer struct {
	meshes  map[engine.MeshID]*fakeMesh
	next    engine.MeshID
	renders int
	lastCam engine.Camera
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{meshes: make(map[engine.MeshID]*fakeMesh)}
}

func (r *fakeRenderer) CreateMesh(g engine.Geometry, c engine.Color) engine.MeshID {
	r.next++
	r.meshes[r.next] = &fakeMesh{geometry: g, color: c, scale: mgl64.Vec3{1, 1, 1}, orient: mgl64.QuatIdent()}
	return r.next
}

func (r *fakeRenderer) AddToScene(id engine.MeshID)      { r.meshes[id].inScene = true }
func (r *fakeRenderer) RemoveFromScene(id engine.MeshID) { r.meshes[id].inScene = false }

func (r *fakeRenderer) SetPosition(id engine.MeshID, pos mgl64.Vec3) { r.meshes[id].position = pos }

func (r *fakeRenderer) SetOrientation(id engine.MeshID, q mgl64.Quat) { r.meshes[id].orient = q }

func (r *fakeRenderer) SetScale(id engine.MeshID, axis engine.Axis, factor float64) {
	r.meshes[id].scale[axis] = factor
}

func (r *fakeRenderer) Render(cam engine.Camera) {
	r.renders++
	r.lastCam = cam
}

func (r *fakeRenderer) inScene() int {
	n := 0
	for _, m := range r.meshes {
		if m.inScene {
			n++
		}
	}
	return n
}

type fakeBody struct {
	shape    engine.Shape
	mass     float64
	position mgl64.Vec3
	inWorld  bool
	replaced int
}

// fakePhysics drops every dynamic body by a fixed amount per step.
type fakePhysics struct {
	bodies map[engine.BodyID]*fakeBody
	next   engine.BodyID
	steps  []float64
	fall   float64
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{bodies: make(map[engine.BodyID]*fakeBody), fall: 0.5}
}

func (p *fakePhysics) CreateBody(s engine.Shape, mass float64, pos mgl64.Vec3) engine.BodyID {
	p.next++
	p.bodies[p.next] = &fakeBody{shape: s, mass: mass, position: pos}
	return p.next
}

func (p *fakePhysics) AddToWorld(id engine.BodyID)      { p.bodies[id].inWorld = true }
func (p *fakePhysics) RemoveFromWorld(id engine.BodyID) { p.bodies[id].inWorld = false }

func (p *fakePhysics) ReplaceShape(id engine.BodyID, s engine.Shape) {
	p.bodies[id].shape = s
	p.bodies[id].replaced++
}

func (p *fakePhysics) SetPosition(id engine.BodyID, pos mgl64.Vec3) { p.bodies[id].position = pos }

func (p *fakePhysics) Step(seconds float64) {
	p.steps = append(p.steps, seconds)
	for _, b := range p.bodies {
		if b.inWorld && b.mass > 0 {
			b.position[1] -= p.fall
		}
	}
}

func (p *fakePhysics) Position(id engine.BodyID) mgl64.Vec3 { return p.bodies[id].position }

func (p *fakePhysics) Orientation(engine.BodyID) mgl64.Quat {
	return mgl64.QuatRotate(0.1, mgl64.Vec3{0, 0, 1})
}

type fakeUI struct {
	score        int
	level        int
	instructions bool
	results      bool
	resultsShown int
	username     string
	prompt       string
}

func (u *fakeUI) SetScoreText(score int)  { u.score = score }
func (u *fakeUI) SetLevelText(level int)  { u.level = level }
func (u *fakeUI) ShowInstructions(s bool) { u.instructions = s }
func (u *fakeUI) SetUsername(name string) { u.username = name }
func (u *fakeUI) PromptUsername() string  { return u.prompt }
func (u *fakeUI) ShowResults(show bool) {
	u.results = show
	if show {
		u.resultsShown++
	}
}

type harness struct {
	m        *Machine
	renderer *fakeRenderer
	physics  *fakePhysics
	ui       *fakeUI
}

func testConfig() config.TowerConfig {
	return config.DefaultTowerConfig()
}

func newHarness(cfg config.TowerConfig) *harness {
	h := &harness{
		renderer: newFakeRenderer(),
		physics:  newFakePhysics(),
		ui:       &fakeUI{prompt: "alice"},
	}
	h.m = New(Options{
		Config:   cfg,
		Renderer: h.renderer,
		Physics:  h.physics,
		UI:       h.ui,
		Seed:     1,
		Aspect:   2,
	})
	return h
}

// place positions the active layer at offset from the layer below along
// its axis and cuts it.
func (h *harness) place(offset float64) (Cut, bool) {
	top := h.m.ctx.Top()
	prev := h.m.ctx.Previous()
	SetPositionAlong(top, top.Axis, PositionAlong(prev, top.Axis)+offset)
	h.m.bridge.Drive(top)
	return h.m.split()
}
