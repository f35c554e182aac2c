package ds

import "testing"

func TestTeamNumberToIP(t *testing.T) {
	cases := []struct {
		team    uint32
		want    string
		wantErr bool
	}{
		{0, "10.0.0.2", false},
		{1, "10.0.1.2", false},
		{99, "10.0.99.2", false},
		{100, "10.1.0.2", false},
		{254, "10.2.54.2", false},
		{4512, "10.45.12.2", false},
		{99999, "10.999.99.2", false},
		{100000, "", true},
		{1000000, "", true},
	}

	for _, c := range cases {
		got, err := TeamNumberToIP(c.team)
		if c.wantErr {
			if err == nil {
				t.Errorf("TeamNumberToIP(%d): expected error, got nil", c.team)
			}
			continue
		}
		if err != nil {
			t.Fatalf("TeamNumberToIP(%d): unexpected error: %v", c.team, err)
		}
		if got != c.want {
			t.Errorf("TeamNumberToIP(%d) = %q; want %q", c.team, got, c.want)
		}
	}
}
