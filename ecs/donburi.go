package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/bramble"
)

// UpdateEvent is published once per simulation step.
type UpdateEvent struct {
	Step float64 // seconds
}

// RenderEvent is published once per processed display frame.
type RenderEvent struct {
	Alpha      float64
	CurrentFPS int
	ScreenFPS  int
}

// StateEvent is published when the loop starts, stops, pauses, or resumes.
type StateEvent struct {
	Event bramble.LoopEvent
}

var (
	// UpdateEventType carries loop update ticks.
	UpdateEventType = events.NewEventType[UpdateEvent]()
	// RenderEventType carries loop render ticks.
	RenderEventType = events.NewEventType[RenderEvent]()
	// StateEventType carries loop lifecycle changes.
	StateEventType = events.NewEventType[StateEvent]()
)

// Transform mirrors a node's local transform inside the ECS.
type Transform struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

var (
	// NodeComponent links an entity to its scene node.
	NodeComponent = donburi.NewComponentType[*bramble.Node]()
	// TransformComponent holds the transform SyncTransforms writes to the node.
	TransformComponent = donburi.NewComponentType[Transform]()
)

var syncQuery = donburi.NewQuery(filter.Contains(NodeComponent, TransformComponent))

// Bridge forwards GameLoop events into a donburi world.
type Bridge struct {
	world   donburi.World
	handles []bramble.CallbackHandle
}

// NewDonburiBridge subscribes to loop and publishes its events into world.
// Events are queued; consume them with events.Subscribe and ProcessEvents.
func NewDonburiBridge(world donburi.World, loop *bramble.GameLoop) *Bridge {
	b := &Bridge{world: world}
	b.handles = append(b.handles,
		loop.OnUpdate(func(dt float64) {
			UpdateEventType.Publish(world, UpdateEvent{Step: dt})
		}),
		loop.OnRender(func(alpha float64, currentFPS, screenFPS int) {
			RenderEventType.Publish(world, RenderEvent{Alpha: alpha, CurrentFPS: currentFPS, ScreenFPS: screenFPS})
		}),
		loop.OnStart(b.state(bramble.EventStart)),
		loop.OnStop(b.state(bramble.EventStop)),
		loop.OnPause(b.state(bramble.EventPause)),
		loop.OnResume(b.state(bramble.EventResume)),
	)
	return b
}

func (b *Bridge) state(ev bramble.LoopEvent) func() {
	return func() {
		StateEventType.Publish(b.world, StateEvent{Event: ev})
	}
}

// World returns the bridged world.
func (b *Bridge) World() donburi.World {
	return b.world
}

// Close unsubscribes from the loop. Already queued events stay queued.
func (b *Bridge) Close() {
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
}

// NewNodeEntity creates an entity bound to node, seeded with the node's
// current transform.
func NewNodeEntity(world donburi.World, node *bramble.Node) donburi.Entity {
	e := world.Create(NodeComponent, TransformComponent)
	entry := world.Entry(e)
	NodeComponent.SetValue(entry, node)
	p, s := node.Position(), node.Scale()
	TransformComponent.SetValue(entry, Transform{
		X: p.X, Y: p.Y,
		Rotation: node.Rotation(),
		ScaleX:   s.X, ScaleY: s.Y,
	})
	return e
}

// SyncTransforms writes every entity's Transform into its node through the
// node setters, skipping disposed nodes. It returns the number of nodes
// written.
func SyncTransforms(world donburi.World) int {
	n := 0
	syncQuery.Each(world, func(entry *donburi.Entry) {
		node := *NodeComponent.Get(entry)
		if node == nil || node.IsDisposed() {
			return
		}
		t := TransformComponent.Get(entry)
		node.SetPosition(t.X, t.Y).SetRotation(t.Rotation).SetScale(t.ScaleX, t.ScaleY)
		n++
	})
	return n
}
