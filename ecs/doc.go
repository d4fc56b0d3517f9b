// Package ecs bridges bramble's GameLoop into a [Donburi] world.
//
// [NewDonburiBridge] republishes loop ticks as typed donburi events so ECS
// systems can run on the fixed simulation step. Subscribe to
// [UpdateEventType], [RenderEventType], or [StateEventType] and drain them
// with ProcessEvents in your systems.
//
// Entities that carry both [NodeComponent] and [TransformComponent] can be
// pushed into their scene nodes with [SyncTransforms], typically from an
// update subscriber.
//
// Usage:
//
//	bridge := ecs.NewDonburiBridge(world, loop)
//	defer bridge.Close()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
