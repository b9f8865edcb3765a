// Package guidance implements the predictive-correction landing loop: it
// repeatedly measures the vehicle's trajectory, extrapolates the landing
// point ballistically, and applies gain-scheduled corrective impulses until
// the predicted impact falls within tolerance of the target, then sequences
// the terminal descent.
package guidance

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

// Phase is the controller's top-level state.
type Phase int

const (
	PhaseAwaitingApproach Phase = iota
	PhaseCorrecting
	PhaseRecoveryBurn
	PhaseEntryLock
	PhaseDescentMonitor
	PhaseLanded
	PhaseAborted
)

var phaseNames = map[Phase]string{
	PhaseAwaitingApproach: "awaiting-approach",
	PhaseCorrecting:       "correcting",
	PhaseRecoveryBurn:     "recovery-burn",
	PhaseEntryLock:        "entry-lock",
	PhaseDescentMonitor:   "descent-monitor",
	PhaseLanded:           "landed",
	PhaseAborted:          "aborted",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Config holds all guidance tunables. Zero values are filled in by
// DefaultConfig; Validate rejects configurations the loop cannot run with.
type Config struct {
	// Target surface coordinate, degrees.
	TargetLatitude  float64
	TargetLongitude float64

	// Bias offsets added to the target to compensate atmospheric and
	// gravitational drift.
	BiasLatitude  float64
	BiasLongitude float64

	// BodyRadius is the surface radius of the body, meters.
	BodyRadius float64

	// TargetAltitude is the altitude at which correction ends and the
	// terminal phase takes over, meters.
	TargetAltitude float64

	// MissTolerance is the per-axis convergence tolerance, degrees.
	MissTolerance float64

	// DeadZone is the error magnitude below which a component is treated as
	// exactly zero, degrees.
	DeadZone float64

	// ApproachWindow is the per-axis angular distance to the target within
	// which the correction loop engages, degrees.
	ApproachWindow float64

	MaxAttempts      int
	MaxRecoveryBurns int

	// SampleInterval is the finite-difference baseline for rate estimation.
	SampleInterval time.Duration

	// ApproachPoll is the idle polling cadence outside the approach window.
	ApproachPoll time.Duration

	// AlignTolerance is the attitude error below which the vehicle counts as
	// aligned, degrees.
	AlignTolerance float64

	// AlignPoll is the cadence of attitude error polling.
	AlignPoll time.Duration

	// AlignWatchdog re-issues the unchanged attitude command after this long
	// without convergence.
	AlignWatchdog time.Duration

	// AttemptTimeout bounds a single correction attempt end to end.
	AttemptTimeout time.Duration

	// BurnFloor and BurnCap clamp computed impulse durations, seconds.
	BurnFloor float64
	BurnCap   float64

	// RecoveryThrottle and RecoveryBurn size the fixed burn used to force a
	// non-descending vehicle downward.
	RecoveryThrottle float64
	RecoveryBurn     time.Duration

	// StagingAltitude triggers the next staging event during descent, meters.
	StagingAltitude float64

	// DescentPoll is the altitude polling cadence in the terminal phase.
	DescentPoll time.Duration

	// TouchdownDelta declares touchdown when altitude changes by less than
	// this between consecutive polls, meters.
	TouchdownDelta float64
}

// DefaultConfig returns the controller defaults, tuned for a Kerbin-scale
// body (surface radius 600 km).
func DefaultConfig() Config {
	return Config{
		BodyRadius:       600000,
		TargetAltitude:   1000,
		MissTolerance:    0.2,
		DeadZone:         0.01,
		ApproachWindow:   45,
		MaxAttempts:      20,
		MaxRecoveryBurns: 5,
		SampleInterval:   time.Second,
		ApproachPoll:     100 * time.Millisecond,
		AlignTolerance:   5,
		AlignPoll:        500 * time.Millisecond,
		AlignWatchdog:    20 * time.Second,
		AttemptTimeout:   2 * time.Minute,
		BurnFloor:        0.1,
		BurnCap:          5,
		RecoveryThrottle: 0.5,
		RecoveryBurn:     time.Second,
		StagingAltitude:  1500,
		DescentPoll:      time.Second,
		TouchdownDelta:   1,
	}
}

// Validate checks the configuration for values the loop cannot run with.
func (c Config) Validate() error {
	switch {
	case c.BodyRadius <= 0:
		return fmt.Errorf("body radius must be positive, got %f", c.BodyRadius)
	case c.SampleInterval <= 0:
		return fmt.Errorf("sample interval must be positive, got %s", c.SampleInterval)
	case c.MissTolerance <= 0:
		return fmt.Errorf("miss tolerance must be positive, got %f", c.MissTolerance)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts)
	case c.MaxRecoveryBurns <= 0:
		return fmt.Errorf("max recovery burns must be positive, got %d", c.MaxRecoveryBurns)
	case c.BurnFloor <= 0 || c.BurnCap < c.BurnFloor:
		return fmt.Errorf("burn clamp [%f, %f] is invalid", c.BurnFloor, c.BurnCap)
	case c.RecoveryThrottle <= 0 || c.RecoveryThrottle > 1:
		return fmt.Errorf("recovery throttle must be in (0, 1], got %f", c.RecoveryThrottle)
	}
	return nil
}

// targetLat and targetLon fold the bias offsets into the target coordinate.
func (c Config) targetLat() float64 { return c.TargetLatitude + c.BiasLatitude }
func (c Config) targetLon() float64 { return c.TargetLongitude + c.BiasLongitude }

// AttemptOutcome classifies how a correction attempt ended.
type AttemptOutcome string

const (
	OutcomeCorrected AttemptOutcome = "corrected"
	OutcomeConverged AttemptOutcome = "converged"
	OutcomeRecovery  AttemptOutcome = "recovery"
)

// AttemptRecord is the observable summary of one correction attempt.
type AttemptRecord struct {
	Timestamp    time.Time
	Index        int
	PredictedLat float64
	PredictedLon float64
	ErrLat       float64
	ErrLon       float64
	DeltaV       float64
	Tier         float64
	BurnSeconds  float64
	Outcome      AttemptOutcome
}

// Observer receives the controller's flight data as it runs: single
// telemetry snapshots from the approach and descent polls, finite-difference
// sample pairs from the correction loop, and per-attempt records.
// Implementations must not block; the loop is synchronous.
type Observer interface {
	OnState(st vehicle.State)
	OnSample(s Sample)
	OnAttempt(r AttemptRecord)
}

type nopObserver struct{}

func (nopObserver) OnState(vehicle.State)   {}
func (nopObserver) OnSample(Sample)         {}
func (nopObserver) OnAttempt(AttemptRecord) {}

// Result is the outcome of a guidance run. A run that simply fails to
// converge within the attempt budget is reported here, not as an error.
type Result struct {
	Converged bool
	Attempts  int
	ErrLat    float64
	ErrLon    float64
	Phase     Phase

	// terminal marks the already-below-target handoff: correction became
	// impossible and the run went straight to the descent sequencer.
	terminal bool
}

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) func(*Controller) {
	return func(c *Controller) {
		c.logger = logger.With(slog.String("component", "guidance"))
	}
}

// WithClock sets the clock used for all blocking waits.
func WithClock(clock Clock) func(*Controller) {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithObserver sets the observer notified of samples and attempts.
func WithObserver(obs Observer) func(*Controller) {
	return func(c *Controller) {
		c.observer = obs
	}
}

// Controller runs the convergence loop and terminal descent for a single
// vehicle. It is not safe for concurrent use; the loop is strictly
// sequential because each decision depends on real elapsed vehicle motion.
type Controller struct {
	vehicle vehicle.Vehicle
	cfg     Config

	clock    Clock
	logger   *slog.Logger
	observer Observer

	sampler  *Sampler
	orienter *Orienter
	actuator *Actuator

	phase Phase
}

// New creates a Controller with a discard logger and wall clock unless
// overridden by options.
func New(v vehicle.Vehicle, cfg Config, options ...func(*Controller)) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating guidance config: %w", err)
	}

	c := Controller{
		vehicle:  v,
		cfg:      cfg,
		clock:    wallClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}

	for _, option := range options {
		option(&c)
	}

	c.sampler = NewSampler(v, c.clock)
	c.orienter = NewOrienter(v, c.clock, OrienterConfig{
		Tolerance: cfg.AlignTolerance,
		Poll:      cfg.AlignPoll,
		Watchdog:  cfg.AlignWatchdog,
	}, WithOrienterLogger(c.logger))
	c.actuator = NewActuator(v, c.clock, ActuatorConfig{
		Floor: cfg.BurnFloor,
		Cap:   cfg.BurnCap,
	}, WithActuatorLogger(c.logger))

	return &c, nil
}

// Phase returns the controller's current top-level state.
func (c *Controller) Phase() Phase {
	return c.phase
}
