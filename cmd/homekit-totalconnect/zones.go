package main

import (
	"context"
	"net/http"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	client "github.com/caarlos0/homekit-totalconnect"
)

func setupZones(
	execute Executor,
	cfg Config,
	loc *client.Location,
) AlarmSensors {
	var sensors AlarmSensors
	for _, zone := range cfg.describedZones(loc) {
		a := newAlarmSensor(accessory.Info{
			Name:         zone.name,
			Manufacturer: manufacturer,
		}, zone.number, zone.kind)

		if z, err := loc.Zone(zone.number); err == nil {
			a.Update(*z)
		} else {
			log.Warn("configured zone not found", "zone", zone.number, "location", loc.ID)
		}

		if zone.allowBypass {
			a.Bypass.On.SetValueRequestFunc = bypassHandler(execute, loc.ID, zone)
		} else {
			a.Bypass.On.SetValueRequestFunc = func(interface{}, *http.Request) (interface{}, int) {
				log.Warn("bypass not allowed", "zone", zone.number)
				return nil, hap.JsonStatusInsufficientPrivileges
			}
		}
		sensors = append(sensors, a)
	}
	return sensors
}

func bypassHandler(execute Executor, locationID int, zone zoneConfig) func(interface{}, *http.Request) (interface{}, int) {
	return func(value interface{}, _ *http.Request) (response interface{}, code int) {
		active := value.(bool)
		if active {
			// the service restores bypassed zones on disarm only.
			log.Warn("zones are restored when the system is disarmed", "zone", zone.number)
			return nil, hap.JsonStatusInvalidValueInRequest
		}
		log.Info("bypass zone", "zone", zone.number, "name", zone.name)
		if err := execute(func(ctx context.Context, cli *client.Client) error {
			return cli.BypassZone(ctx, locationID, zone.number)
		}); err != nil {
			log.Error("failed to bypass zone", "zone", zone.number, "err", err)
			return nil, hap.JsonStatusResourceBusy
		}
		return nil, hap.JsonStatusSuccess
	}
}
