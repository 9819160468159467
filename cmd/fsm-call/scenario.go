package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration unmarshals YAML duration strings like "250ms" or "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Step is one scripted event, optionally delayed relative to the previous
// step.
type Step struct {
	Event CallEvent `yaml:"event"`
	Delay Duration  `yaml:"delay,omitempty"`
}

// Scenario is a scripted sequence of call events.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

var knownEvents = map[CallEvent]struct{}{
	EventDial:         {},
	EventIncomingCall: {},
	EventAnswer:       {},
	EventReject:       {},
	EventHangUp:       {},
	EventReset:        {},
}

// Validate checks that the scenario has at least one step and that every
// step names a known event.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if _, ok := knownEvents[step.Event]; !ok {
			return fmt.Errorf("step %d: unknown event %q", i, step.Event)
		}
		if step.Delay < 0 {
			return fmt.Errorf("step %d: negative delay", i)
		}
	}
	return nil
}

// loadScenario reads and validates a scenario file.
func loadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// defaultScenario is played when no scenario file is configured: a rejected
// first attempt followed by a completed call.
func defaultScenario() *Scenario {
	return &Scenario{
		Name: "second-attempt-connects",
		Steps: []Step{
			{Event: EventDial},
			{Event: EventReject, Delay: Duration(100 * time.Millisecond)},
			{Event: EventDial, Delay: Duration(100 * time.Millisecond)},
			{Event: EventAnswer, Delay: Duration(200 * time.Millisecond)},
			{Event: EventHangUp, Delay: Duration(300 * time.Millisecond)},
		},
	}
}
