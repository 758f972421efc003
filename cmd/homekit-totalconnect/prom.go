package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var armStateGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace:   "homekit_totalconnect",
	Subsystem:   "alarm",
	Name:        "state",
	Help:        "",
	ConstLabels: map[string]string{},
}, []string{"location"})

var tamperGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace:   "homekit_totalconnect",
	Subsystem:   "alarm",
	Name:        "tamper",
	Help:        "",
	ConstLabels: map[string]string{},
}, []string{"name"})

var faultGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace:   "homekit_totalconnect",
	Subsystem:   "alarm",
	Name:        "fault",
	Help:        "",
	ConstLabels: map[string]string{},
}, []string{"name"})

var lowBatteryGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace:   "homekit_totalconnect",
	Subsystem:   "alarm",
	Name:        "low_battery",
	Help:        "",
	ConstLabels: map[string]string{},
}, []string{"name"})

var bypassedGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace:   "homekit_totalconnect",
	Subsystem:   "alarm",
	Name:        "bypassed",
	Help:        "",
	ConstLabels: map[string]string{},
}, []string{"name"})

var requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace:   "homekit_totalconnect",
	Subsystem:   "client",
	Name:        "requests_total",
	Help:        "",
	ConstLabels: map[string]string{},
}, []string{"operation", "outcome"})

var requestErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace:   "homekit_totalconnect",
	Subsystem:   "client",
	Name:        "request_errors_total",
	Help:        "",
	ConstLabels: map[string]string{},
})
