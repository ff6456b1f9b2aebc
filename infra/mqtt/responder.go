package mqtt

import (
	"encoding/json"
	"errors"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/evsizer/core/events"
	"github.com/kilianp07/evsizer/core/model"
	coremon "github.com/kilianp07/evsizer/core/monitoring"
	"github.com/kilianp07/evsizer/infra/logger"
	"github.com/kilianp07/evsizer/internal/sizer"
)

// Sizer resolves requests on behalf of a transport.
type Sizer interface {
	Size(id, transport string, req model.StationRequest) (model.SizingResult, error)
	Reject(id, transport, reason string, err error)
}

type brokerClient interface {
	Subscribe(topic string, qos byte, handler paho.MessageHandler) error
	Publish(topic string, qos byte, payload []byte) error
	QoSFor(role string) byte
}

// Response is published to <response_prefix>/<request id>.
type Response struct {
	RequestID string              `json:"request_id"`
	Result    *model.SizingResult `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// Responder answers sizing requests received over MQTT.
type Responder struct {
	client         brokerClient
	sizer          Sizer
	requestTopic   string
	responsePrefix string
	log            logger.Logger
}

// NewResponder builds a Responder using the topics from cfg.
func NewResponder(client *PahoClient, s Sizer, cfg Config) *Responder {
	return newResponder(client, s, cfg)
}

func newResponder(client brokerClient, s Sizer, cfg Config) *Responder {
	cfg.SetDefaults()
	return &Responder{
		client:         client,
		sizer:          s,
		requestTopic:   cfg.RequestTopic,
		responsePrefix: strings.TrimSuffix(cfg.ResponsePrefix, "/"),
		log:            logger.New("mqtt_responder"),
	}
}

// Start subscribes to the request topic.
func (r *Responder) Start() error {
	return r.client.Subscribe(r.requestTopic, r.client.QoSFor("request"), r.onRequest)
}

// onRequest runs on the paho router goroutine, where a panic would stop the
// process.
func (r *Responder) onRequest(_ paho.Client, msg paho.Message) {
	defer func() {
		if v := recover(); v != nil {
			coremon.CapturePanic(v)
			r.log.Errorf("request on %s panicked: %v", msg.Topic(), v)
		}
	}()
	resp := r.Handle(msg.Topic(), msg.Payload())
	payload, err := json.Marshal(resp)
	if err != nil {
		r.log.Errorf("encode response %s: %v", resp.RequestID, err)
		return
	}
	topic := r.responsePrefix + "/" + resp.RequestID
	if err := r.client.Publish(topic, r.client.QoSFor("response"), payload); err != nil {
		r.log.Errorf("publish response %s: %v", resp.RequestID, err)
	}
}

// Handle resolves one request message. The request id is the last topic
// segment, or a fresh uuid when that segment is empty.
func (r *Responder) Handle(topic string, payload []byte) Response {
	id := requestID(topic)
	var req model.StationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		r.sizer.Reject(id, events.TransportMQTT, sizer.ReasonDecode, err)
		r.log.Warnf("request %s: decode: %v", id, err)
		return Response{RequestID: id, Error: "decode request: " + err.Error()}
	}
	res, err := r.sizer.Size(id, events.TransportMQTT, req)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidRequest) {
			r.log.Errorf("request %s: %v", id, err)
		}
		return Response{RequestID: id, Error: err.Error()}
	}
	return Response{RequestID: id, Result: &res}
}

func requestID(topic string) string {
	if i := strings.LastIndexByte(topic, '/'); i >= 0 {
		topic = topic[i+1:]
	}
	if topic == "" || topic == "+" || topic == "#" {
		return sizer.NewRequestID()
	}
	return topic
}
