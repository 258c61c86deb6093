package motion

// TimeStep is one instant of the discrete simulation clock.
// Elapsed is always Index times the clock's dt.
type TimeStep struct {
	Index   int
	Elapsed float64
}

// Record is one row of the simulation time series. State fields hold the
// plant state after the force for this tick has been applied.
type Record struct {
	Time   float64
	CmdVel float64
	CmdPos float64
	Force  float64
	ObjAcc float64
	ObjVel float64
	ObjPos float64
}

type Result struct {
	Records    []Record
	Metrics    map[string]float64
	StepsTaken int
}

// Profile maps elapsed time to a command velocity and position. Implementations
// must be pure with respect to t so they can be queried out of order.
type Profile interface {
	Command(t float64) (vel, pos float64)
}

// Controller converts the command/measurement error into a force.
// Implementations may keep integral or previous-error state across calls;
// Reset returns them to the freshly constructed state.
type Controller interface {
	CalculateForce(t, cmdVel, cmdPos, measVel, measPos, dt float64) (float64, error)
	Reset()
}

// Plant integrates an applied force into motion. Vel and Pos report the
// current kinematic state without advancing it.
type Plant interface {
	ApplyForce(force, dt float64) (acc, vel, pos float64)
	Vel() float64
	Pos() float64
	Reset()
}

type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(r Record)
}
