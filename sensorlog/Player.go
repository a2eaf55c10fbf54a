package sensorlog

import (
	"fmt"

	"github.com/catbotrl/catbot/environment/catbot"
)

// Player replays Records into a catbot.Sensors. Each command sent to
// the Player advances the replay by one Record, and each reset skips
// to the first Record of the next episode. Player implements
// catbot.Actuator and catbot.Resetter.
//
// The joint targets commanded are kept so that replayed rollouts can
// be compared with the actions a policy would have taken.
type Player struct {
	records []Record
	next    int
	sensors *catbot.Sensors
	targets [][]float64
}

// NewPlayer returns a new Player replaying records into sensors
func NewPlayer(records []Record, sensors *catbot.Sensors) *Player {
	return &Player{records: records, sensors: sensors}
}

// Prime applies the next Record without a command, so that the
// sensors are ready before the environment is constructed
func (p *Player) Prime() error {
	return p.advance()
}

// Command records the joint targets and replays the next Record
func (p *Player) Command(targets []float64) error {
	if len(targets) != catbot.NumJoints {
		return fmt.Errorf("command: %w: have(%d) want(%d)",
			catbot.ErrJointCount, len(targets), catbot.NumJoints)
	}

	t := make([]float64, len(targets))
	copy(t, targets)
	p.targets = append(p.targets, t)

	if err := p.advance(); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	return nil
}

// Reset skips the remaining Records of the current episode and
// replays the first Record of the next one
func (p *Player) Reset() error {
	if p.next > 0 {
		episode := p.records[p.next-1].Episode
		for p.next < len(p.records) && p.records[p.next].Episode == episode {
			p.next++
		}
	}

	if err := p.advance(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// advance applies the next Record
func (p *Player) advance() error {
	if p.next >= len(p.records) {
		return ErrExhausted
	}

	if err := p.records[p.next].Apply(p.sensors); err != nil {
		return fmt.Errorf("record %d: %w", p.next, err)
	}
	p.next++
	return nil
}

// Remaining returns the number of Records not yet replayed
func (p *Player) Remaining() int {
	return len(p.records) - p.next
}

// Episode returns the episode of the most recently replayed Record
func (p *Player) Episode() int {
	if p.next == 0 {
		return 0
	}
	return p.records[p.next-1].Episode
}

// Targets returns the joint targets commanded so far
func (p *Player) Targets() [][]float64 {
	return p.targets
}
