package catbot

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"one bin", func(c *Config) { c.Bins = 1 }},
		{"inverted height", func(c *Config) { c.MinHeight = c.MaxHeight }},
		{"zero roll", func(c *Config) { c.AbsMaxRoll = 0 }},
		{"negative pitch", func(c *Config) { c.AbsMaxPitch = -1 }},
		{"zero force", func(c *Config) { c.DesiredForce = 0 }},
		{"NaN increment", func(c *Config) { c.JointIncrement = math.NaN() }},
		{"unknown joint", func(c *Config) {
			c.JointRanges = map[string]Range{"tail": {Min: 0, Max: 1}}
		}},
		{"empty joint range", func(c *Config) {
			c.JointRanges = map[string]Range{"knee_left": {Min: 1, Max: 1}}
		}},
	}

	for _, test := range tests {
		c := DefaultConfig()
		test.modify(&c)

		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("validate %v: have(%v) want(%v)", test.name, err,
				ErrInvalidConfig)
		}
		if _, err := NewObservationSpec(c); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("newObservationSpec %v: have(%v) want(%v)", test.name,
				err, ErrInvalidConfig)
		}
	}
}

func TestJointRangeOverride(t *testing.T) {
	c := DefaultConfig()
	c.JointRanges = map[string]Range{"knee_left": {Min: -2, Max: 2}}

	o, err := NewObservationSpec(c)
	if err != nil {
		t.Fatal(err)
	}

	knee := o.At(int(JointChannel(KneeLeft))).Range
	if knee.Min != -2 || knee.Max != 2 {
		t.Errorf("range: have([%v, %v]) want([-2, 2])", knee.Min, knee.Max)
	}

	ankle := o.At(int(JointChannel(AnkleLJ))).Range
	if ankle != defaultJointRanges[AnkleLJ] {
		t.Errorf("range: have(%v) want(%v)", ankle,
			defaultJointRanges[AnkleLJ])
	}
}
