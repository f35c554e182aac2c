package ds

import "testing"

func newTestStation(team uint32) *Station {
	e := newEngine("10.0.1.2", Alliance(0), DsModeNormal, nil)
	return &Station{engine: e, team: team}
}

func TestStation_SetUseUSB_TogglesBetweenUSBAndTeamIP(t *testing.T) {
	s := newTestStation(254)

	if err := s.SetUseUSB(true); err != nil {
		t.Fatalf("SetUseUSB(true): unexpected error: %v", err)
	}
	sig := <-s.engine.facadeSignals
	if !sig.IsNewTarget() || sig.Target() != usbTargetIP {
		t.Fatalf("SetUseUSB(true) signaled %+v; want NewTarget(%s)", sig, usbTargetIP)
	}

	if err := s.SetUseUSB(false); err != nil {
		t.Fatalf("SetUseUSB(false): unexpected error: %v", err)
	}
	sig = <-s.engine.facadeSignals
	wantIP, _ := TeamNumberToIP(254)
	if !sig.IsNewTarget() || sig.Target() != wantIP {
		t.Fatalf("SetUseUSB(false) signaled %+v; want NewTarget(%s)", sig, wantIP)
	}
}

func TestStation_SetUseUSB_FalsePropagatesInvalidTeam(t *testing.T) {
	s := newTestStation(999999)

	if err := s.SetUseUSB(false); err == nil {
		t.Fatalf("expected error reverting to an out-of-range team number")
	}
}

func TestStation_SetTeamNumber_UpdatesTeamForLaterUSBToggle(t *testing.T) {
	s := newTestStation(1)

	if err := s.SetTeamNumber(42); err != nil {
		t.Fatalf("SetTeamNumber: unexpected error: %v", err)
	}
	<-s.engine.facadeSignals // drain the NewTarget signal SetTeamNumber posts

	if s.Team() != 42 {
		t.Fatalf("Team() = %d; want 42", s.Team())
	}

	if err := s.SetUseUSB(false); err != nil {
		t.Fatalf("SetUseUSB(false): unexpected error: %v", err)
	}
	sig := <-s.engine.facadeSignals
	wantIP, _ := TeamNumberToIP(42)
	if sig.Target() != wantIP {
		t.Errorf("SetUseUSB(false) after SetTeamNumber signaled %q; want %q", sig.Target(), wantIP)
	}
}

func TestStation_SetGameSpecificMessage_ValidatesLength(t *testing.T) {
	s := newTestStation(0)

	cases := []struct {
		message string
		wantErr bool
	}{
		{"", true},
		{"ab", true},
		{"abc", false},
		{"abcd", true},
	}

	for _, c := range cases {
		err := s.SetGameSpecificMessage(c.message)
		if c.wantErr && err == nil {
			t.Errorf("SetGameSpecificMessage(%q): expected error, got nil", c.message)
		}
		if !c.wantErr && err != nil {
			t.Errorf("SetGameSpecificMessage(%q): unexpected error: %v", c.message, err)
		}
	}
}
