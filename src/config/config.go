// Package config holds the explicit configuration object the viewer is built
// from. Everything that used to be an ambient constant lives here and is
// passed into components at construction time.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/lambdabear/pressure-monitor/src/sample"
)

// Discipline selects how the render loop drains the ingestion channel.
type Discipline int

const (
	// DisciplinePoll tries to receive one sample per iteration and sleeps a
	// fixed frame delay, decoupling frame rate from data rate.
	DisciplinePoll Discipline = iota
	// DisciplineBlock waits for the next sample, coupling frame rate to the
	// data arrival rate.
	DisciplineBlock
)

func (d Discipline) String() string {
	switch d {
	case DisciplineBlock:
		return "block"
	default:
		return "poll"
	}
}

// Profile names one of the deployed sensor setups. The two fielded firmwares
// disagree on payload encoding, y-axis floor and drain discipline, so both
// are kept as explicit profiles rather than guessing which is authoritative.
type Profile struct {
	Name       string
	Format     sample.Format
	YMin       float64
	YMax       float64
	Discipline Discipline
}

var profiles = []Profile{
	{Name: "int", Format: sample.FormatInt32, YMin: -100_000, YMax: 2500, Discipline: DisciplinePoll},
	{Name: "float", Format: sample.FormatFloat32, YMin: -50_000, YMax: 2500, Discipline: DisciplineBlock},
}

// DefaultProfile is the "int" profile, matching the reference deployment.
func DefaultProfile() Profile {
	return profiles[0]
}

// ProfileNames lists the selectable profile names in definition order.
func ProfileNames() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

// ProfileByName resolves a profile by its name.
func ProfileByName(name string) (Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown profile %q (valid: %s)", name, strings.Join(ProfileNames(), ", "))
}

// Config is built once in main and handed to each component.
type Config struct {
	// Broker endpoint.
	Addr string
	Port int

	// Fixed MQTT session parameters.
	ClientID  string
	Topic     string
	KeepAlive time.Duration

	// Ingestion channel capacity. The producer never blocks; readings that
	// arrive while the channel is full are dropped.
	QueueSize int

	// Display surface and chart geometry.
	Width       int
	Height      int
	WindowSize  int
	XMaxSeconds float64

	// Frame delay for the polling discipline.
	FrameDelay time.Duration

	// Export target, overwritten on every trigger.
	OutputPath string

	Profile Profile
}

// Default returns the configuration of the reference deployment.
func Default() Config {
	return Config{
		Addr:        "raspberrypi.local",
		Port:        1883,
		ClientID:    "pressure_data_receiver",
		Topic:       "pressure/data",
		KeepAlive:   5 * time.Second,
		QueueSize:   1024,
		Width:       1600,
		Height:      800,
		WindowSize:  1000,
		XMaxSeconds: 120,
		FrameDelay:  15 * time.Millisecond,
		OutputPath:  "pressure_data.csv",
		Profile:     DefaultProfile(),
	}
}

// BrokerAddr renders the broker endpoint as host:port.
func (c Config) BrokerAddr() string {
	return net.JoinHostPort(c.Addr, strconv.Itoa(c.Port))
}
