package ds

import "sync"

// sendState holds everything the UDP send task needs to build one outbound
// control packet per tick. It is shared between the facade and the send
// task behind a single RWMutex; critical sections are kept to "encode one
// packet" per §5's shared-resource policy.
type sendState struct {
	mu sync.RWMutex

	alliance Alliance
	mode     Mode
	enabled  bool
	estopped bool
	fms      bool

	request Request

	joystickSupplier func() [][]JoystickValue
	pendingUDP       []UDPTag

	dsMode DsMode
	seq    uint16
}

func newSendState(alliance Alliance) *sendState {
	return &sendState{alliance: alliance, dsMode: DsModeNormal}
}

func (s *sendState) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.estopped {
		s.enabled = true
	}
}

func (s *sendState) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
}

func (s *sendState) Estop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.estopped = true
	s.enabled = false
}

func (s *sendState) Estopped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.estopped
}

func (s *sendState) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

func (s *sendState) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

func (s *sendState) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *sendState) SetAlliance(alliance Alliance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alliance = alliance
}

func (s *sendState) Alliance() Alliance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alliance
}

func (s *sendState) SetDSMode(mode DsMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dsMode = mode
}

func (s *sendState) DSMode() DsMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dsMode
}

func (s *sendState) SetJoystickSupplier(supplier func() [][]JoystickValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joystickSupplier = supplier
}

// QueueUDP appends a UDP tag to the per-tick queue; it is drained on the
// next Build call.
func (s *sendState) QueueUDP(tag UDPTag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingUDP = append(s.pendingUDP, tag)
}

// PendingUDPTags returns a snapshot copy of the currently queued UDP tags.
func (s *sendState) PendingUDPTags() []UDPTag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UDPTag, len(s.pendingUDP))
	copy(out, s.pendingUDP)
	return out
}

// Request sets one-shot request flags to be attached to the next built packet.
func (s *sendState) Request(flags Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.request |= flags
}

// Build snapshots current state into an encoded control packet for this
// tick. It consults the joystick supplier, appends one Joysticks tag per
// supplied joystick, drains the queued tag list, and clears the pending
// request flags in the same critical section so a request bit appears on
// at most one emitted packet.
func (s *sendState) Build() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make([]UDPTag, 0, len(s.pendingUDP)+1)

	if s.joystickSupplier != nil {
		for _, joystick := range s.joystickSupplier() {
			tags = append(tags, NewJoysticksTag(joystick))
		}
	}

	tags = append(tags, s.pendingUDP...)
	s.pendingUDP = nil

	control := buildControl(s.mode, s.enabled, s.estopped, s.fms)
	request := s.request
	s.request = 0

	return BuildControlPacket(s.seq, control, request, s.alliance, tags)
}

// IncrementSeqnum wraps the sequence number modulo 2^16.
func (s *sendState) IncrementSeqnum() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
}

func (s *sendState) ResetSeqnum() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
}

// Reset zeroes the sequence number, clears the enable bit, and drains the
// pending tag queue — applied on every new-target or mode transition.
func (s *sendState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
	s.enabled = false
	s.pendingUDP = nil
}

// recvState holds the last telemetry decoded from the RIO's UDP status packets.
type recvState struct {
	mu      sync.RWMutex
	trace   Trace
	battery float32
}

func (r *recvState) SetTrace(trace Trace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = trace
}

func (r *recvState) Trace() Trace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trace
}

func (r *recvState) SetBattery(v float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.battery = v
}

func (r *recvState) BatteryVoltage() float32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.battery
}

// Reset zeroes both trace and battery, as happens on disconnect.
func (r *recvState) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = 0
	r.battery = 0
}

// tcpState holds the TCP supervisor's outbound tag sender (nil when no
// supervisor is attached) and the user-installed inbound consumer.
type tcpState struct {
	mu       sync.RWMutex
	tagTx    chan<- TCPTag
	consumer func(TCPPacket)
}

func (t *tcpState) SetTagTx(ch chan<- TCPTag) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tagTx = ch
}

func (t *tcpState) SetConsumer(consumer func(TCPPacket)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consumer = consumer
}

func (t *tcpState) Consumer() func(TCPPacket) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.consumer
}

// QueueTCP delivers a tag to the current TCP supervisor, if one is attached.
// It is a no-op (silently dropped) when no supervisor is up, matching the
// "best-effort, recreated on next UDP round-trip" retry policy of §7.
func (t *tcpState) QueueTCP(tag TCPTag) {
	t.mu.RLock()
	ch := t.tagTx
	t.mu.RUnlock()
	if ch == nil {
		return
	}
	select {
	case ch <- tag:
	default:
	}
}
