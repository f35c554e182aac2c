package ds

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Station is the public facade over the connection engine: every mutating
// call writes through shared state or posts a signal; every read copies a
// snapshot out from behind a read lock.
type Station struct {
	engine *engine

	mu   sync.Mutex
	team uint32
}

// Option configures a Station at construction time.
type Option func(*engine)

// WithLogger installs a Logger the engine's tasks log through. Defaults to
// a no-op logger.
func WithLogger(logger Logger) Option {
	return func(e *engine) { e.logger = logger }
}

// WithLogrus installs a logrus-backed Logger, the default wiring used by
// the CLI.
func WithLogrus(base *logrus.Logger) Option {
	return WithLogger(NewLogrusLogger(base))
}

// New constructs a Station targeting ip, spawns its tasks, and returns
// immediately; the connection comes up asynchronously as packets exchange.
// team is retained so SetUseUSB(false) can revert to team-derived addressing.
func New(ip string, alliance Alliance, team uint32, opts ...Option) *Station {
	e := newEngine(ip, alliance, DsModeNormal, nil)
	for _, opt := range opts {
		opt(e)
	}
	e.start()
	return &Station{engine: e, team: team}
}

// NewTeam constructs a Station targeting the IP derived from a team number.
func NewTeam(team uint32, alliance Alliance, opts ...Option) (*Station, error) {
	ip, err := TeamNumberToIP(team)
	if err != nil {
		return nil, err
	}
	return New(ip, alliance, team, opts...), nil
}

// --- mutators -------------------------------------------------------------

// Enable requests the robot move to the enabled state. Ignored while
// emergency-stopped.
func (s *Station) Enable() { s.engine.send.Enable() }

// Disable requests the robot move to the disabled state.
func (s *Station) Disable() { s.engine.send.Disable() }

// Estop latches the emergency stop; only a facade rebuild clears it.
func (s *Station) Estop() { s.engine.send.Estop() }

// SetMode changes the operating mode advertised on the next outbound tick.
func (s *Station) SetMode(mode Mode) { s.engine.send.SetMode(mode) }

// SetAlliance changes the alliance/position byte.
func (s *Station) SetAlliance(alliance Alliance) { s.engine.send.SetAlliance(alliance) }

// SetJoystickSupplier installs the closure polled once per outbound tick to
// obtain the current joystick readings, one slice of values per joystick.
func (s *Station) SetJoystickSupplier(supplier func() [][]JoystickValue) {
	s.engine.send.SetJoystickSupplier(supplier)
}

// SetTCPConsumer installs the closure invoked for every decoded inbound TCP frame.
func (s *Station) SetTCPConsumer(consumer func(TCPPacket)) {
	s.engine.tcp.SetConsumer(consumer)
}

// QueueUDP appends a one-shot tag to the next outbound control packet.
func (s *Station) QueueUDP(tag UDPTag) { s.engine.send.QueueUDP(tag) }

// QueueTCP delivers a tag through the current TCP session, if one is up.
func (s *Station) QueueTCP(tag TCPTag) { s.engine.tcp.QueueTCP(tag) }

// RestartCode requests the RIO restart the robot program.
func (s *Station) RestartCode() { s.engine.send.Request(RequestRestartCode) }

// RestartRoboRIO requests the RIO reboot entirely.
func (s *Station) RestartRoboRIO() { s.engine.send.Request(RequestRebootRoboRIO) }

// SetTeamNumber re-points the connection at the IP derived from team,
// resetting the connection state along the way.
func (s *Station) SetTeamNumber(team uint32) error {
	ip, err := TeamNumberToIP(team)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.team = team
	s.mu.Unlock()
	s.engine.signal(NewTargetSignal(ip))
	return nil
}

// SetUseUSB switches between the RIO's USB gadget-mode address (useUSB) and
// the team-derived IP (!useUSB).
func (s *Station) SetUseUSB(useUSB bool) error {
	if useUSB {
		s.engine.signal(NewTargetSignal(usbTargetIP))
		return nil
	}

	s.mu.Lock()
	team := s.team
	s.mu.Unlock()

	ip, err := TeamNumberToIP(team)
	if err != nil {
		return err
	}
	s.engine.signal(NewTargetSignal(ip))
	return nil
}

// SetGameSpecificMessage enqueues the 3-character game-specific message for
// delivery over the TCP session. The RIO only accepts exactly 3 characters.
func (s *Station) SetGameSpecificMessage(message string) error {
	if len(message) != 3 {
		return fmt.Errorf("ds: game-specific message must be 3 characters long, got %d", len(message))
	}
	s.engine.tcp.QueueTCP(GameData{Message: message})
	return nil
}

// SetDSMode switches between targeting the real RIO and the loopback simulator.
func (s *Station) SetDSMode(mode DsMode) {
	s.engine.signal(NewModeSignal(mode))
}

// Close tears down the connection engine. The Station must not be used afterward.
func (s *Station) Close() {
	s.engine.signal(DisconnectSignal())
}

// --- accessors --------------------------------------------------------------

// Mode returns the operating mode currently advertised outbound.
func (s *Station) Mode() Mode { return s.engine.send.Mode() }

// Enabled reports whether the robot is currently requested enabled.
func (s *Station) Enabled() bool { return s.engine.send.Enabled() }

// Estopped reports whether the emergency stop is latched.
func (s *Station) Estopped() bool { return s.engine.send.Estopped() }

// Alliance returns the currently advertised alliance/position.
func (s *Station) Alliance() Alliance { return s.engine.send.Alliance() }

// DSMode reports whether the engine currently targets the real RIO or the simulator.
func (s *Station) DSMode() DsMode { return s.engine.send.DSMode() }

// Trace returns the last trace byte reported by the RIO.
func (s *Station) Trace() Trace { return s.engine.recv.Trace() }

// BatteryVoltage returns the last battery reading reported by the RIO.
func (s *Station) BatteryVoltage() float32 { return s.engine.recv.BatteryVoltage() }

// PendingUDPTags returns a snapshot of tags queued for the next outbound tick.
func (s *Station) PendingUDPTags() []UDPTag { return s.engine.send.PendingUDPTags() }

// Team returns the team number this Station was constructed or last
// re-pointed with via SetTeamNumber.
func (s *Station) Team() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.team
}
