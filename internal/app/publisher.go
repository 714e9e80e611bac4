package app

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/headpose_relay/internal/headpose"
)

const publishTimeout = 250 * time.Millisecond

// posePublisher republishes every valid head pose to MQTT, retained, so
// a late subscriber sees the current pose at once.
type posePublisher struct {
	client mqtt.Client
	topic  string
}

func connectMQTT(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

// Handle is a headpose.Handler. It runs on the receive loop, so the
// publish wait is bounded.
func (p *posePublisher) Handle(r headpose.Reading) {
	payload, err := json.Marshal(r.Pose)
	if err != nil {
		log.Printf("listener: json marshal error (pose): %v", err)
		return
	}

	token := p.client.Publish(p.topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		log.Printf("listener: MQTT publish to %s timed out", p.topic)
		return
	}
	if token.Error() != nil {
		log.Printf("listener: MQTT publish error (%s): %v", p.topic, token.Error())
	}
}

func (p *posePublisher) Close() {
	p.client.Disconnect(250)
}
