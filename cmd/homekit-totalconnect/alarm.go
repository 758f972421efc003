package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/brutella/hap/characteristic"
	"github.com/brutella/hap/service"
	client "github.com/caarlos0/homekit-totalconnect"
)

type SecuritySystem struct {
	*accessory.A
	SecuritySystem *service.SecuritySystem
	LowBattery     *characteristic.StatusLowBattery
	Tampered       *characteristic.StatusTampered
	Fault          *characteristic.StatusFault

	locationID int
	execute    Executor
}

func NewSecuritySystem(info accessory.Info, locationID int, execute Executor) *SecuritySystem {
	a := &SecuritySystem{
		locationID: locationID,
		execute:    execute,
	}
	a.A = accessory.New(info, accessory.TypeSecuritySystem)

	a.SecuritySystem = service.NewSecuritySystem()
	a.AddS(a.SecuritySystem.S)

	a.Tampered = characteristic.NewStatusTampered()
	a.SecuritySystem.AddC(a.Tampered.C)

	a.LowBattery = characteristic.NewStatusLowBattery()
	a.SecuritySystem.AddC(a.LowBattery.C)

	a.Fault = characteristic.NewStatusFault()
	a.SecuritySystem.AddC(a.Fault.C)

	a.SecuritySystem.SecuritySystemTargetState.SetValueRequestFunc = a.updateHandler

	return a
}

func (a *SecuritySystem) Update(loc *client.Location) {
	state := getAlarmState(loc.ArmingState)
	armStateGauge.WithLabelValues(strconv.Itoa(loc.ID)).Set(float64(state))
	tamperGauge.WithLabelValues("system").Set(boolAs[float64](loc.CoverTampered))
	lowBatteryGauge.WithLabelValues("system").Set(boolAs[float64](loc.LowBattery))
	faultGauge.WithLabelValues("system").Set(boolAs[float64](loc.ACLoss))

	// pending states keep whatever was shown before.
	if state >= 0 && a.SecuritySystem.SecuritySystemCurrentState.Value() != state {
		err := a.SecuritySystem.SecuritySystemCurrentState.SetValue(state)
		log.Info("set current state", "state", loc.ArmingState, "err", err)
		if state != characteristic.SecuritySystemCurrentStateAlarmTriggered {
			_ = a.SecuritySystem.SecuritySystemTargetState.SetValue(state)
		}
	}

	if v := boolAs[int](loc.CoverTampered); a.Tampered.Value() != v {
		_ = a.Tampered.SetValue(v)
		log.Info("alarm status", "tamper", loc.CoverTampered)
	}

	if v := boolAs[int](loc.LowBattery); a.LowBattery.Value() != v {
		_ = a.LowBattery.SetValue(v)
		log.Info("alarm status", "low-battery", loc.LowBattery)
	}

	if v := boolAs[int](loc.ACLoss); a.Fault.Value() != v {
		_ = a.Fault.SetValue(v)
		log.Info("alarm status", "ac-loss", loc.ACLoss)
	}
}

func (a *SecuritySystem) updateHandler(
	v interface{},
	_ *http.Request,
) (response interface{}, code int) {
	target := v.(int)

	var arm func(ctx context.Context, cli *client.Client) error
	switch target {
	case characteristic.SecuritySystemTargetStateStayArm:
		log.Info("arm stay", "location", a.locationID)
		arm = func(ctx context.Context, cli *client.Client) error {
			return cli.ArmStay(ctx, a.locationID)
		}
	case characteristic.SecuritySystemTargetStateAwayArm:
		log.Info("arm away", "location", a.locationID)
		arm = func(ctx context.Context, cli *client.Client) error {
			return cli.ArmAway(ctx, a.locationID)
		}
	case characteristic.SecuritySystemTargetStateNightArm:
		log.Info("arm night", "location", a.locationID)
		arm = func(ctx context.Context, cli *client.Client) error {
			return cli.ArmStayNight(ctx, a.locationID)
		}
	case characteristic.SecuritySystemTargetStateDisarm:
		log.Info("disarm", "location", a.locationID)
	default:
		return nil, hap.JsonStatusResourceDoesNotExist
	}

	if err := a.execute(func(ctx context.Context, cli *client.Client) error {
		loc, err := cli.Location(ctx, a.locationID)
		if err != nil {
			return err
		}

		// the panel only changes between armed modes through a disarm.
		if arm == nil || loc.ArmingState.IsArmed() || loc.ArmingState.IsTriggered() {
			if err := cli.Disarm(ctx, a.locationID); err != nil {
				return err
			}
		}
		if arm != nil {
			if err := arm(ctx, cli); err != nil {
				return err
			}
		}
		a.Update(loc)
		return nil
	}); err != nil {
		log.Error("could not change alarm state", "target", target, "err", err)
		return nil, hap.JsonStatusResourceBusy
	}
	return nil, hap.JsonStatusSuccess
}
