// Package physics holds the velocity transforms applied on every integration
// step of a scroll axis.
//
// While the finger is down the tracked velocity passes through
//
//	PostScale(Overscroll(Accelerate(PreScale(v))))
//
// and after release the velocity is driven by
//
//   - [FlingBoost]: one-shot gain on the step containing the release
//   - [BounceState.Step]: damped spring pulling content back inside its bounds
//   - [Decay]: power-law friction toward zero
//
// Every function takes the physics snapshot it should read. None of them keep
// global state.
package physics
