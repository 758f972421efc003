package main

import (
	"testing"

	"github.com/brutella/hap/characteristic"
	client "github.com/caarlos0/homekit-totalconnect"
	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
)

func TestAllZones(t *testing.T) {
	cfg := Config{
		ContactZones: []int{1, 3, 5, 6, 7},
		MotionZones:  []int{2, 4, 8, 9, 10},
		BypassZones:  []int{3, 8},
		ZoneNames:    []string{"A", "B", "", "C", "D"},
	}

	zones := cfg.allZones()

	require.Equal(t, []zoneConfig{
		{1, "A", kindContact, false},
		{2, "B", kindMotion, false},
		{3, "Zone 3", kindContact, true},
		{4, "C", kindMotion, false},
		{5, "D", kindContact, false},
		{6, "Zone 6", kindContact, false},
		{7, "Zone 7", kindContact, false},
		{8, "Zone 8", kindMotion, true},
		{9, "Zone 9", kindMotion, false},
		{10, "Zone 10", kindMotion, false},
	}, zones)
}

func TestDescribedZones(t *testing.T) {
	cfg := Config{
		ContactZones: []int{1, 2},
		MotionZones:  []int{3},
		ZoneNames:    []string{"Door"},
	}
	loc := &client.Location{
		Zones: map[int]*client.Zone{
			1: {ID: 1, Description: "Front Door"},
			2: {ID: 2, Description: "Back Door"},
		},
	}

	zones := cfg.describedZones(loc)
	require.Equal(t, "Door", zones[0].name)
	require.Equal(t, "Back Door", zones[1].name)
	require.Equal(t, "Zone 3", zones[2].name)
}

func TestZoneNumbersBelowOne(t *testing.T) {
	cfg := Config{
		MotionZones:  []int{0},
		ContactZones: []int{-1},
		ZoneNames:    []string{"A"},
	}
	loc := &client.Location{Zones: map[int]*client.Zone{}}

	require.NotPanics(t, func() {
		zones := cfg.describedZones(loc)
		require.Equal(t, []zoneConfig{
			{-1, "Zone -1", kindContact, false},
			{0, "Zone 0", kindMotion, false},
		}, zones)
	})
}

func TestGetAlarmState(t *testing.T) {
	for state, expected := range map[client.ArmingState]int{
		client.ArmingStateAlarming:               characteristic.SecuritySystemCurrentStateAlarmTriggered,
		client.ArmingStateAlarmingFireSmoke:      characteristic.SecuritySystemCurrentStateAlarmTriggered,
		client.ArmingStateArmedAway:              characteristic.SecuritySystemCurrentStateAwayArm,
		client.ArmingStateArmedAwayInstantBypass: characteristic.SecuritySystemCurrentStateAwayArm,
		client.ArmingStateArmedStay:              characteristic.SecuritySystemCurrentStateStayArm,
		client.ArmingStateArmedCustomBypass:      characteristic.SecuritySystemCurrentStateStayArm,
		client.ArmingStateArmedStayNight:         characteristic.SecuritySystemCurrentStateNightArm,
		client.ArmingStateDisarmed:               characteristic.SecuritySystemCurrentStateDisarmed,
		client.ArmingStateDisarmedBypass:         characteristic.SecuritySystemCurrentStateDisarmed,
		client.ArmingStateArming:                 -1,
		client.ArmingStateUnknown:                -1,
	} {
		t.Run(state.String(), func(t *testing.T) {
			require.Equal(t, expected, getAlarmState(state))
		})
	}
}

func TestParseConfig(t *testing.T) {
	t.Setenv("USERNAME", "user")
	t.Setenv("PASSWORD", "pass")
	t.Setenv("ENDPOINT", "https://example.com/gateway")
	t.Setenv("USERCODES", "123456:1234,42:0000")
	t.Setenv("MOTION", "2,4")

	var cfg Config
	require.NoError(t, env.Parse(&cfg))
	require.Equal(t, 3, cfg.MaxRetryAttempts)
	require.Equal(t, ":9009", cfg.Address)
	require.Equal(t, []int{2, 4}, cfg.MotionZones)

	codes, err := cfg.usercodes()
	require.NoError(t, err)
	require.Equal(t, map[int]string{123456: "1234", 42: "0000"}, codes)

	cfg.Usercodes = map[string]string{"home": "1234"}
	_, err = cfg.usercodes()
	require.Error(t, err)
}

func TestParseConfigMissing(t *testing.T) {
	t.Setenv("USERNAME", "")
	var cfg Config
	require.Error(t, env.Parse(&cfg))
}
