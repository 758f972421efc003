package main

import (
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"
	client "github.com/caarlos0/homekit-totalconnect"
)

type AlarmSensors []*AlarmSensor

func (sensors AlarmSensors) Update(loc *client.Location) {
	for _, sensor := range sensors {
		zone, err := loc.Zone(sensor.Number)
		if err != nil {
			log.Warn("zone missing from status", "zone", sensor.Number)
			continue
		}
		sensor.Update(*zone)
	}
}

type AlarmSensor struct {
	*accessory.A
	Number     int
	Kind       zoneKind
	Motion     *service.MotionSensor
	Contact    *service.ContactSensor
	Bypass     *service.Switch
	LowBattery *characteristic.StatusLowBattery
	Tamper     *characteristic.StatusTampered
}

func (sensor *AlarmSensor) Update(zone client.Zone) {
	name := sensor.Name()
	tamperGauge.WithLabelValues(name).Set(boolAs[float64](zone.Status.IsTampered()))
	faultGauge.WithLabelValues(name).Set(boolAs[float64](zone.Status.IsFaulted()))
	lowBatteryGauge.WithLabelValues(name).Set(boolAs[float64](zone.Status.IsLowBattery()))
	bypassedGauge.WithLabelValues(name).Set(boolAs[float64](zone.Status.IsBypassed()))

	batlvl := boolAs[int](zone.Status.IsLowBattery())
	if sensor.LowBattery.Value() != batlvl {
		log.Info("low battery", "zone", zone.ID, "status", zone.Status)
		_ = sensor.LowBattery.SetValue(batlvl)
	}

	tamper := boolAs[int](zone.Status.IsTampered())
	if sensor.Tamper.Value() != tamper {
		log.Info("tamper", "zone", zone.ID, "status", zone.Status)
		_ = sensor.Tamper.SetValue(tamper)
	}

	// the switch is on while the zone is active.
	bypassing := zone.Status.IsBypassed()
	if sensor.Bypass.On.Value() == bypassing {
		log.Info("bypass", "zone", zone.ID, "status", bypassing)
		sensor.Bypass.On.SetValue(!bypassing)
	}

	open := zone.Status.IsFaulted() || zone.Status.IsTriggered()
	switch sensor.Kind {
	case kindContact:
		current := boolAs[int](open)
		if v := sensor.Contact.ContactSensorState.Value(); v == current {
			return
		}
		_ = sensor.Contact.ContactSensorState.SetValue(current)
		log.Info("contact", "zone", zone.ID, "open", open, "status", zone.Status)
	case kindMotion:
		if v := sensor.Motion.MotionDetected.Value(); v == open {
			return
		}
		sensor.Motion.MotionDetected.SetValue(open)
		log.Info("motion", "zone", zone.ID, "detected", open, "status", zone.Status)
	}
}

func newAlarmSensor(info accessory.Info, number int, kind zoneKind) *AlarmSensor {
	a := AlarmSensor{
		Number: number,
		Kind:   kind,
	}
	a.A = accessory.New(info, accessory.TypeSensor)

	a.LowBattery = characteristic.NewStatusLowBattery()
	a.Tamper = characteristic.NewStatusTampered()

	switch kind {
	case kindContact:
		a.Contact = service.NewContactSensor()
		a.Contact.AddC(a.Tamper.C)
		a.Contact.AddC(a.LowBattery.C)
		a.AddS(a.Contact.S)
	case kindMotion:
		a.Motion = service.NewMotionSensor()
		a.Motion.AddC(a.LowBattery.C)
		a.Motion.AddC(a.Tamper.C)
		a.AddS(a.Motion.S)
	}

	a.Bypass = service.NewSwitch()
	a.Bypass.On.SetValue(true)
	a.AddS(a.Bypass.S)

	return &a
}
