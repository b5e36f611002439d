package main

import (
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/yofu/shindo"
)

func startClient(config *shindo.Config, prefix string, topics []string, fn mqtt.MessageHandler) (mqtt.Client, error) {
	server, err := config.Broker()
	if err != nil {
		return nil, err
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(server)
	opts.SetAutoReconnect(false)
	opts.SetClientID(fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()))
	if strings.HasPrefix(server, "ssl") {
		tlsconfig, err := config.TLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsconfig)
	}
	if fn != nil {
		opts.SetDefaultPublishHandler(fn)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.WaitTimeout(time.Second * 5)
	if token.Error() != nil {
		return client, token.Error()
	}
	log.Infow("connected", "server", server)
	subscribe(client, topics)
	return client, nil
}

func subscribe(client mqtt.Client, topics []string) {
	for _, t := range topics {
		client.Subscribe(t, 0, nil)
	}
}

// keepConnected checks client every second and reconnects it until done is closed.
func keepConnected(done <-chan struct{}, client mqtt.Client, topics []string) {
	conticker := time.NewTicker(time.Second)
	defer conticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-conticker.C:
			if client.IsConnected() {
				continue
			}
			log.Warn("not connected")
			token := client.Connect()
			token.WaitTimeout(time.Second * 5)
			if token.Error() != nil {
				log.Warnw("reconnect failed", "error", token.Error())
				continue
			}
			log.Info("reconnected")
			subscribe(client, topics)
		}
	}
}
