package ds

import "fmt"

// usbTargetIP is the roboRIO's USB gadget-mode address.
const usbTargetIP = "172.22.11.2"

// TeamNumberToIP derives the roboRIO's IP address from a team number,
// assuming it exists at 10.TE.AM.2. Team numbers 0..99999 are accepted.
func TeamNumberToIP(team uint32) (string, error) {
	if team >= 100000 {
		return "", fmt.Errorf("ds: team number %d out of range, must be 0..99999", team)
	}
	if team < 100 {
		return fmt.Sprintf("10.0.%d.2", team), nil
	}
	te := team / 100
	am := team % 100
	return fmt.Sprintf("10.%d.%d.2", te, am), nil
}
