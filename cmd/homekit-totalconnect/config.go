package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brutella/hap/characteristic"
	client "github.com/caarlos0/homekit-totalconnect"
	"golang.org/x/exp/slices"
)

type Config struct {
	Username         string            `env:"USERNAME,notEmpty"`
	Password         string            `env:"PASSWORD,notEmpty"`
	Endpoint         string            `env:"ENDPOINT,notEmpty"`
	Location         int               `env:"LOCATION"`
	Usercodes        map[string]string `env:"USERCODES"`
	MotionZones      []int             `env:"MOTION"`
	ContactZones     []int             `env:"CONTACT"`
	BypassZones      []int             `env:"BYPASS"`
	ZoneNames        []string          `env:"ZONE_NAMES"`
	PollInterval     time.Duration     `env:"POLL_INTERVAL"      envDefault:"30s"`
	RetryDelay       time.Duration     `env:"RETRY_DELAY"        envDefault:"6s"`
	MaxRetryAttempts int               `env:"MAX_RETRY_ATTEMPTS" envDefault:"3"`
	RateLimit        float64           `env:"RATE_LIMIT"         envDefault:"2"`
	Debug            bool              `env:"DEBUG"`
	Address          string            `env:"LISTEN"             envDefault:":9009"`
}

type zoneKind uint8

const (
	kindMotion = iota + 1
	kindContact
)

func (z zoneKind) String() string {
	switch z {
	case kindMotion:
		return "motion"
	default:
		return "contact"
	}
}

type zoneConfig struct {
	number      int
	name        string
	kind        zoneKind
	allowBypass bool
}

func (c Config) zoneName(n int) string {
	if name, ok := c.configuredName(n); ok {
		return name
	}
	return fmt.Sprintf("Zone %d", n)
}

// configuredName returns the ZONE_NAMES entry for zone n. Zone numbers
// start at 1.
func (c Config) configuredName(n int) (string, bool) {
	if n < 1 || n > len(c.ZoneNames) || c.ZoneNames[n-1] == "" {
		return "", false
	}
	return c.ZoneNames[n-1], true
}

type allZoneConfigs []zoneConfig

func (a allZoneConfigs) String() string {
	var zones []string
	for _, zone := range a {
		zones = append(
			zones,
			fmt.Sprintf("zone %d: %q (%s)", zone.number, zone.name, zone.kind.String()),
		)
	}
	return strings.Join(zones, "\n")
}

func (c Config) allZones() []zoneConfig {
	var zones []zoneConfig
	for _, z := range c.MotionZones {
		zones = append(zones, zoneConfig{
			number:      z,
			name:        c.zoneName(z),
			kind:        kindMotion,
			allowBypass: slices.Contains(c.BypassZones, z),
		})
	}
	for _, z := range c.ContactZones {
		zones = append(zones, zoneConfig{
			number:      z,
			name:        c.zoneName(z),
			kind:        kindContact,
			allowBypass: slices.Contains(c.BypassZones, z),
		})
	}
	slices.SortFunc(zones, func(a, b zoneConfig) int {
		if a.number > b.number {
			return 1
		}
		return -1
	})
	return zones
}

// describedZones names zones after the panel's own descriptions, unless a
// name was configured.
func (c Config) describedZones(loc *client.Location) []zoneConfig {
	zones := c.allZones()
	for i, zone := range zones {
		if _, ok := c.configuredName(zone.number); ok {
			continue
		}
		if z, err := loc.Zone(zone.number); err == nil && z.Description != "" {
			zones[i].name = z.Description
		}
	}
	return zones
}

func (c Config) usercodes() (map[int]string, error) {
	codes := map[int]string{}
	for k, v := range c.Usercodes {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid usercode location %q: %w", k, err)
		}
		codes[id] = v
	}
	return codes, nil
}

// getAlarmState maps the arming state into a HomeKit current state, or -1
// while the panel is transitioning or in an unknown state.
func getAlarmState(state client.ArmingState) int {
	switch {
	case state.IsTriggered():
		return characteristic.SecuritySystemCurrentStateAlarmTriggered
	case state.IsArmedAway():
		return characteristic.SecuritySystemCurrentStateAwayArm
	case state.IsArmedNight():
		return characteristic.SecuritySystemCurrentStateNightArm
	case state.IsArmedStay(), state.IsArmedCustom():
		return characteristic.SecuritySystemCurrentStateStayArm
	case state.IsDisarmed():
		return characteristic.SecuritySystemCurrentStateDisarmed
	default:
		return -1
	}
}
