package config

import (
	"strings"
	"testing"

	"github.com/lambdabear/pressure-monitor/src/sample"
)

func TestProfileByName(t *testing.T) {
	p, err := ProfileByName("int")
	if err != nil {
		t.Fatalf("int profile: %v", err)
	}
	if p.Format != sample.FormatInt32 || p.YMin != -100_000 || p.Discipline != DisciplinePoll {
		t.Fatalf("unexpected int profile: %+v", p)
	}

	p, err = ProfileByName("float")
	if err != nil {
		t.Fatalf("float profile: %v", err)
	}
	if p.Format != sample.FormatFloat32 || p.YMin != -50_000 || p.Discipline != DisciplineBlock {
		t.Fatalf("unexpected float profile: %+v", p)
	}
}

func TestProfileByNameUnknown(t *testing.T) {
	_, err := ProfileByName("bogus")
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	for _, name := range ProfileNames() {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not list profile %q", err, name)
		}
	}
}

func TestDefaults(t *testing.T) {
	c := Default()
	if c.Addr != "raspberrypi.local" || c.Port != 1883 {
		t.Fatalf("unexpected endpoint defaults: %s:%d", c.Addr, c.Port)
	}
	if got := c.BrokerAddr(); got != "raspberrypi.local:1883" {
		t.Fatalf("broker addr: got %q", got)
	}
	if c.WindowSize != 1000 {
		t.Fatalf("window size: got %d want 1000", c.WindowSize)
	}
	if c.Profile.Name != "int" {
		t.Fatalf("default profile: got %q want int", c.Profile.Name)
	}
	if c.Topic != "pressure/data" || c.ClientID != "pressure_data_receiver" {
		t.Fatalf("unexpected session defaults: topic=%q clientID=%q", c.Topic, c.ClientID)
	}
}
