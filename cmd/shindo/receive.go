package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/subcommands"
	"github.com/yofu/shindo"
)

type receiveCmd struct {
	server    string
	stride    float64
	recdir    string
	threshold float64
}

func (*receiveCmd) Name() string {
	return "receive"
}

func (*receiveCmd) Synopsis() string {
	return "receive acceleration data and publish JMA seismic intensity"
}

func (*receiveCmd) Usage() string {
	return "receive [-server] [-stride] [-record] [-threshold]\n"
}

func (r *receiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.server, "server", "", "server url:port")
	f.Float64Var(&r.stride, "stride", 1.0, "seconds between evaluations")
	f.StringVar(&r.recdir, "record", "", "directory to record published intensities")
	f.Float64Var(&r.threshold, "threshold", 0.5, "intensity logged at info level")
}

func intensityTopic(macaddress string) string {
	return fmt.Sprintf("%s/shindo/jma", macaddress)
}

type receiver struct {
	sync.Mutex
	station *station
	metrics *Metrics
	lang    shindo.Language
	dest    *os.File
	thresh  float64
}

func (rc *receiver) handle(client mqtt.Client, msg mqtt.Message) {
	rc.Lock()
	defer rc.Unlock()
	t0 := time.Now()
	sensor, r, err := rc.station.feed(msg.Topic(), msg.Payload())
	if err != nil {
		unit, _, _ := splitTopic(msg.Topic())
		reason := "decode"
		if errors.Is(err, shindo.ErrNonConvergence) {
			reason = "nonconvergence"
		} else if sensor != nil {
			reason = "compute"
		}
		rc.metrics.Failures.WithLabelValues(unit, reason).Inc()
		log.Warnw("evaluating", "topic", msg.Topic(), "error", err)
		return
	}
	if r == nil {
		return
	}
	rc.metrics.Duration.Observe(time.Since(t0).Seconds())
	rc.metrics.Evaluations.WithLabelValues(sensor.Name()).Inc()
	rc.metrics.Intensity.WithLabelValues(sensor.Name()).Set(r.Intensity)
	rc.metrics.AValue.WithLabelValues(sensor.Name()).Set(r.AValue)
	if r.Intensity >= rc.thresh {
		log.Infow("intensity", "unit", sensor.Name(), "intensity", r.Intensity, "label", r.Label(rc.lang), "aval", r.AValue)
	} else {
		log.Debugw("intensity", "unit", sensor.Name(), "intensity", r.Intensity, "label", r.Label(rc.lang), "aval", r.AValue)
	}

	payload, err := shindo.EncodeIntensity(r)
	if err != nil {
		log.Errorw("encoding intensity", "unit", sensor.Name(), "error", err)
		return
	}
	topic := intensityTopic(sensor.MacAddress())
	client.Publish(topic, 0, false, payload)
	if rc.dest != nil {
		rec := shindo.ServerRecord{
			ServerTime: time.Now().UnixMilli(),
			Topic:      topic,
			Content:    payload,
		}
		if err := shindo.WriteServerRecord(rc.dest, rec); err != nil {
			log.Errorw("recording intensity", "error", err)
		}
	}
}

func (r *receiveCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	config := args[0].(*shindo.Config)
	if r.server != "" {
		config.Server = r.server
	}
	st, err := newStation(config, int(r.stride/config.Samplingperiod+0.5))
	if err != nil {
		log.Errorw("[receive]", "error", err)
		return subcommands.ExitFailure
	}
	rc := &receiver{
		station: st,
		metrics: NewMetrics(),
		lang:    config.Lang(),
		thresh:  r.threshold,
	}
	if r.recdir != "" {
		if err := os.MkdirAll(r.recdir, 0755); err != nil {
			log.Errorw("[receive]", "error", err)
			return subcommands.ExitFailure
		}
		w, err := os.Create(filepath.Join(r.recdir, fmt.Sprintf("%s.dat", time.Now().Format("2006-01-02-15-04-05"))))
		if err != nil {
			log.Errorw("[receive]", "error", err)
			return subcommands.ExitFailure
		}
		defer w.Close()
		rc.dest = w
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Metrics != "" {
		srv := &http.Server{Addr: config.Metrics, Handler: rc.metrics.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("metrics server", "error", err)
			}
		}()
		defer srv.Close()
	}

	client, err := startClient(config, "shindo_receive", config.List, rc.handle)
	if err != nil {
		log.Errorw("[receive] not connected", "error", err)
		if client == nil {
			return subcommands.ExitFailure
		}
	}
	defer client.Disconnect(250)
	keepConnected(ctx.Done(), client, config.List)
	return subcommands.ExitSuccess
}
