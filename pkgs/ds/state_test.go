package ds

import "testing"

// Property 1: enabled can only be true when estopped is false: Estop
// clears it, and a later Enable is refused.
func TestSendState_EnableEstopInvariant(t *testing.T) {
	s := newSendState(Alliance(0))

	s.Enable()
	if !s.Enabled() {
		t.Fatalf("expected Enable to set enabled")
	}

	s.Estop()
	if s.Enabled() {
		t.Errorf("expected Estop to clear enabled")
	}
	if !s.Estopped() {
		t.Errorf("expected Estopped() true after Estop")
	}

	s.Enable()
	if s.Enabled() {
		t.Errorf("expected Enable to be refused once estopped")
	}
}

func TestSendState_ModeSurvivesEnableDisable(t *testing.T) {
	s := newSendState(Alliance(0))
	s.SetMode(ModeAuto)
	s.Enable()
	s.Disable()
	if s.Mode() != ModeAuto {
		t.Errorf("Mode() = %v; want %v", s.Mode(), ModeAuto)
	}
}

// Property 3: a requested flag appears on at most one built packet.
func TestSendState_RequestFlagClearedOnce(t *testing.T) {
	s := newSendState(Alliance(0))
	s.Request(RequestRestartCode)

	buf1, err := s.Build()
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if buf1[4] != RequestRestartCode.Byte() {
		t.Fatalf("first built packet missing request flag: % X", buf1)
	}

	buf2, err := s.Build()
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if buf2[4] != 0 {
		t.Errorf("request flag leaked into second packet: % X", buf2)
	}
}

// Property 4: sequence numbers emitted between two reconfigurations form
// s, s+1, ..., s+k mod 2^16 with no gaps.
func TestSendState_SeqnumMonotonic(t *testing.T) {
	s := newSendState(Alliance(0))

	var seqs []uint16
	for i := 0; i < 5; i++ {
		buf, err := s.Build()
		if err != nil {
			t.Fatalf("Build: unexpected error: %v", err)
		}
		seqs = append(seqs, uint16(buf[0])<<8|uint16(buf[1]))
		s.IncrementSeqnum()
	}

	for i := 1; i < len(seqs); i++ {
		if seqs[i] != seqs[i-1]+1 {
			t.Errorf("seq[%d] = %d; want %d", i, seqs[i], seqs[i-1]+1)
		}
	}
}

func TestSendState_SeqnumWrapsAndResets(t *testing.T) {
	s := newSendState(Alliance(0))
	s.seq = 0xFFFF
	s.IncrementSeqnum()
	if s.seq != 0 {
		t.Errorf("seq after wrap = %d; want 0", s.seq)
	}

	s.IncrementSeqnum()
	s.Enable()
	s.Reset()
	if s.seq != 0 {
		t.Errorf("seq after Reset = %d; want 0", s.seq)
	}
	if s.Enabled() {
		t.Errorf("expected Reset to clear enabled")
	}
}

func TestSendState_PendingUDPDrainedOnBuild(t *testing.T) {
	s := newSendState(Alliance(0))
	s.QueueUDP(Timezone{Zone: "UTC"})

	if len(s.PendingUDPTags()) != 1 {
		t.Fatalf("expected one pending tag before Build")
	}
	if _, err := s.Build(); err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if len(s.PendingUDPTags()) != 0 {
		t.Errorf("expected pending tags drained after Build")
	}
}

func TestTcpState_QueueTCPWithoutSupervisorIsNoop(t *testing.T) {
	tcp := &tcpState{}
	tcp.QueueTCP(GameData{Message: "abc"})
}

func TestRecvState_Reset(t *testing.T) {
	r := &recvState{}
	r.SetTrace(TraceRobotCode)
	r.SetBattery(12.3)
	r.Reset()
	if r.Trace() != 0 {
		t.Errorf("Trace() after Reset = %v; want 0", r.Trace())
	}
	if r.BatteryVoltage() != 0 {
		t.Errorf("BatteryVoltage() after Reset = %v; want 0", r.BatteryVoltage())
	}
}
