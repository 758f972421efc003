package main

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/brutella/hap"
	"github.com/brutella/hap/accessory"
	"github.com/caarlos0/env/v11"
	client "github.com/caarlos0/homekit-totalconnect"
	"github.com/caarlos0/homekit-totalconnect/httptransport"
	"github.com/cenkalti/backoff/v4"
	logp "github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

//go:embed index.html
var index []byte

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "homekit",
})

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type Executor = func(func(ctx context.Context, cli *client.Client) error) error

const manufacturer = "Resideo"

func main() {
	log.Info(
		"homekit-totalconnect",
		"version", version,
		"commit", commit,
		"date", date,
		"info", strings.Join([]string{
			"Homekit bridge for Total Connect security panels",
			"© Carlos Alexandro Becker",
			"https://becker.software",
		}, "\n"),
	)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(
			"could not parse env",
			"err",
			strings.TrimPrefix(strings.ReplaceAll(err.Error(), "; ", "\n"), "env: ")+"\n",
		)
	}
	if cfg.Debug {
		log.SetLevel(logp.DebugLevel)
		client.SetLogLevel(logp.DebugLevel)
	}

	usercodes, err := cfg.usercodes()
	if err != nil {
		log.Fatal("invalid usercodes", "err", err)
	}

	transport, err := httptransport.New(
		cfg.Endpoint,
		httptransport.WithRateLimit(rate.Limit(cfg.RateLimit), 1),
	)
	if err != nil {
		log.Fatal("invalid endpoint", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cli *client.Client
	if err := backoff.RetryNotify(func() error {
		var err error
		cli, err = client.New(
			ctx,
			instrument(transport),
			cfg.Username,
			cfg.Password,
			client.WithUsercodes(usercodes),
			client.WithRetryDelay(cfg.RetryDelay),
			client.WithMaxRetryAttempts(cfg.MaxRetryAttempts),
		)
		if err != nil && !client.IsRetriable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.NewExponentialBackOff(), ctx), func(err error, d time.Duration) {
		log.Warn("could not connect, will retry", "in", d, "err", err)
	}); err != nil {
		log.Fatal("could not init client", "err", err)
	}

	var clientLock sync.Mutex
	execute := func(fn func(ctx context.Context, cli *client.Client) error) error {
		t := time.Now()
		clientLock.Lock()
		defer clientLock.Unlock()
		log.Debugf("got client lock after %s", time.Since(t))

		bo := backoff.NewExponentialBackOff()
		bo.MaxInterval = time.Second * 30
		bo.MaxElapsedTime = time.Minute * 2

		return backoff.RetryNotify(func() error {
			if err := fn(ctx, cli); err != nil {
				requestErrorCounter.Inc()
				if !client.IsRetriable(err) {
					return backoff.Permanent(err)
				}
				return err
			}
			return nil
		}, backoff.WithContext(bo, ctx), func(err error, _ time.Duration) {
			log.Error("command to service failed", "err", err)
		})
	}

	var loc *client.Location
	if err := execute(func(ctx context.Context, cli *client.Client) error {
		id := cfg.Location
		if id == 0 {
			locations, err := cli.Locations(ctx)
			if err != nil {
				return err
			}
			if len(locations) > 1 {
				log.Warn("account has more than one location, set LOCATION to pick one")
			}
			for k := range locations {
				if id == 0 || k < id {
					id = k
				}
			}
		}
		l, err := cli.Location(ctx, id)
		if err != nil {
			return err
		}
		// zone details are optional, panels without them still report status.
		if err := cli.GetZoneDetails(ctx, id); err != nil {
			if client.IsRetriable(err) {
				return err
			}
			log.Warn("could not get zone details", "err", err)
		}
		loc = l
		return nil
	}); err != nil {
		log.Fatal("could not init accessories", "err", err)
	}

	log.Info(
		"got location information",
		"id", loc.ID,
		"name", loc.Name,
		"device", loc.SecurityDeviceID,
		"state", loc.ArmingState,
		"zones", allZoneConfigs(cfg.describedZones(loc)).String(),
	)

	bridge := accessory.NewBridge(accessory.Info{
		Name:         "Alarm Bridge",
		Manufacturer: manufacturer,
		Firmware:     version,
	})

	alarm := NewSecuritySystem(accessory.Info{
		Name:         loc.Name,
		Manufacturer: manufacturer,
		Firmware:     version,
	}, loc.ID, execute)
	alarm.Id = 2
	alarm.Update(loc)

	sensors := setupZones(execute, cfg, loc)

	go func() {
		tick := time.NewTicker(cfg.PollInterval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}
			if err := execute(func(ctx context.Context, cli *client.Client) error {
				if err := cli.RefreshStatus(ctx, loc.ID); err != nil {
					return err
				}
				alarm.Update(loc)
				sensors.Update(loc)
				return nil
			}); err != nil {
				log.Error("could not get status", "err", err)
			}
		}
	}()

	fs := hap.NewFsStore("./db")

	server, err := hap.NewServer(fs, bridge.A, securityAccessories(sensors, alarm)...)
	if err != nil {
		log.Fatal("fail to create server", "error", err)
	}
	server.Addr = cfg.Address
	server.ServeMux().Handle("/metrics", promhttp.Handler())
	server.ServeMux().Handle("/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		state := [5]string{
			"Armed: Stay",
			"Armed: Away",
			"Armed: Night",
			"Disarmed",
			"Alarm Triggered",
		}[alarm.SecuritySystem.SecuritySystemCurrentState.Value()]

		var zones []PageItem
		for _, zone := range sensors {
			z := PageItem{
				Number:     zone.Number,
				Name:       zone.Name(),
				Tamper:     zone.Tamper.Value() == 1,
				LowBattery: zone.LowBattery.Value() == 1,
				Bypassed:   !zone.Bypass.On.Value(),
			}
			if zone.Motion != nil {
				z.Open = zone.Motion.MotionDetected.Value()
			} else if zone.Contact != nil {
				z.Open = zone.Contact.ContactSensorState.Value() == 1
			}
			zones = append(zones, z)
		}

		tpl := template.Must(template.New("index").Parse(string(index)))
		_ = tpl.Execute(w, struct {
			Name       string
			State      string
			Tamper     bool
			LowBattery bool
			ACLoss     bool
			Zones      []PageItem
		}{
			Name:       alarm.Name(),
			State:      state,
			Tamper:     alarm.Tampered.Value() == 1,
			LowBattery: alarm.LowBattery.Value() == 1,
			ACLoss:     alarm.Fault.Value() == 1,
			Zones:      zones,
		})
	}))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("stopping server")
		signal.Stop(c)
		cancel()
	}()

	log.Info("starting server", "addr", server.Addr)
	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to close server", "err", err)
	}

	clientLock.Lock()
	defer clientLock.Unlock()
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	if err := cli.Close(closeCtx); err != nil {
		log.Error("could not log out", "err", err)
	}
}

// instrument counts every request by operation and outcome.
func instrument(transport client.Transport) client.Transport {
	return client.TransportFunc(func(ctx context.Context, operation string, params ...any) (client.RawResult, error) {
		res, err := transport.Call(ctx, operation, params...)
		outcome := "error"
		if err == nil {
			outcome = res.Outcome().String()
		}
		requestCounter.WithLabelValues(operation, outcome).Inc()
		return res, err
	})
}

func securityAccessories(sensors AlarmSensors, alarm *SecuritySystem) []*accessory.A {
	result := []*accessory.A{alarm.A}
	for _, c := range sensors {
		result = append(result, c.A)
	}
	return result
}

func boolAs[T int | float64](b bool) T {
	if b {
		return 1
	}
	return 0
}

type PageItem struct {
	Number     int
	Name       string
	Open       bool
	Tamper     bool
	Bypassed   bool
	LowBattery bool
}
