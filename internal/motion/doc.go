// Package motion defines the core types of the simulation loop and the
// orchestrator that drives them.
//
// A run wires four components together:
//
//   - a [Clock] yielding discrete time steps
//   - a [Profile] mapping elapsed time to a motion command
//   - a [Controller] turning command/measurement error into a force
//   - a [Plant] integrating that force into motion
//
// [Flow.Execute] runs the closed loop and collects one [Record] per tick.
// [Metric] and [Observer] hook into the loop for aggregate values and live
// output.
//
// # Errors
//
// All validation happens at construction time; the package-level sentinels
// wrapped in [ParamError] identify the offending parameter. A built run only
// fails on [ErrInvalidStep], which signals a sequencer defect rather than a
// user mistake.
package motion
