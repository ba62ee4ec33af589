// Package modui is a server-driven retained-mode UI core for [Ebitengine].
//
// The server owns the interface: it sends an ordered array of node
// definitions to build a tree, then incremental command batches to mutate
// it. The client resolves layout, runs animations, routes pointer input,
// and reports interactions back as events. Nothing here decides what the
// UI contains; it only makes the server's description real on screen.
//
// # Surfaces
//
// A [Surface] is one independent UI layer (a persistent HUD overlay, a
// modal screen). Feed it the initialization payload and command batches as
// they arrive; command batches that beat the initialization are buffered
// and replayed in order:
//
//	surface := modui.NewSurface("stack", 640, 360, sink)
//	surface.HandleInitJSON(initPayload, time.Now())
//	surface.HandleCommands(batch, time.Now())
//
// Each frame, tick and paint:
//
//	input.Process(now)       // pointer + wheel routing
//	surface.Update(now)      // animations, then layout
//	renderer.Draw(dst, surface, now)
//
// # Nodes and layout
//
// Every element is a [Node]: panels, stack panels, images, text, buttons,
// scroll viewports, draggable containers, and paper dolls. Sizes and
// positions are [Expression] values ("100%", "50% + 10", "100%cm") resolved
// in two passes, sizes top-down with re-resolution for content-following
// stacks, then positions via anchor pairs. See [ParseExpression].
//
// # Animations and events
//
// The server attaches per-node animator lists (position, size, alpha,
// rotation) with easing curves, including arbitrary Bezier curves; the
// [AnimationScheduler] advances them and re-resolves layout only when a
// layout input actually changed. Outbound interactions (button clicks,
// scroll changes, drag moves, close requests) arrive at your [EventSink].
//
// Rendering is split out: [Renderer] paints a surface with ebiten, looking
// textures up in a [TextureRegistry]. The core tree, layout, command, and
// animation code never touches the GPU, so it tests headlessly.
//
// [Ebitengine]: https://ebitengine.org
package modui
