// Package interact implements the gesture state machine of an
// interactive view.
//
// A Controller receives pointer and wheel events and edits the
// view.State of the View it drives. While a drag is in progress every
// motion event rebuilds a cheap Skeleton scene; releasing the pointer
// rebuilds the FullArt scene once. Wheel zooming redraws the skeleton
// per notch and defers the full rebuild until the wheel has been quiet
// for a few ticks of a Scheduler, so a burst of notches costs one
// expensive rebuild.
//
// Everything runs on a single UI thread. Loop is a Scheduler whose
// timers only post to a queue that the UI drains once per frame.
package interact
