// Package control provides force controllers for the motion loop.
//
// Controllers implement the [motion.Controller] interface, turning the
// command/measurement error into an applied force:
//
//   - [PID]: dual-loop velocity + position PID servo
//   - [Step]: constant force after a delay (open-loop characterization)
//   - [Impulse]: force pulse of a fixed tick count after a delay
//   - [None]: zero force passthrough
//
// # Usage
//
//	pid := control.NewPID(control.Gains{Kvp: 50})
//	flow := motion.NewFlow(clock, prof, pid, plant)
//
// PID keeps integral and previous-error state between ticks; Reset returns
// it to the state of a freshly constructed controller.
package control
