package mqtt

import (
	"context"
	"encoding/json"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/compass.go/pkg/l1/msgs"
)

// Topics under <type>/<id>/.
const (
	TopicMeta    = "meta"
	TopicReading = "reading"
	TopicSet     = "set"
	TopicGet     = "get"
	TopicResult  = "result"
	TopicStatus  = "status"
)

// Retained values of the status topic.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Meta is published retained so subscribers can discover compasses.
type Meta struct {
	Description string            `json:"description,omitempty"`
	Port        string            `json:"port,omitempty"`
	Quantities  []string          `json:"quantities,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// CommandHandler runs a named command and returns the text reply.
// For set commands arg is the payload, for get commands it's empty.
type CommandHandler func(kind, name, arg string) (string, error)

// Publisher publishes one compass under <Type>/<ID>/.
type Publisher struct {
	Queue *Queue
	Type  string
	ID    string

	dropped int
}

// NewPublisher creates a Publisher.
func NewPublisher(q *Queue, typ, id string) *Publisher {
	return &Publisher{Queue: q, Type: typ, ID: id}
}

// Topic returns the full topic (without prefix) of a sub topic.
func (p *Publisher) Topic(sub ...string) string {
	return p.Type + "/" + p.ID + "/" + strings.Join(sub, "/")
}

// SetWill makes the broker mark the compass offline when the
// link drops. It must be applied before the Queue is created.
func (p *Publisher) SetWill(opts *paho.ClientOptions, topicPrefix string) {
	opts.SetWill(topicPrefix+p.Topic(TopicStatus), StatusOffline, 1, true)
}

// Announce marks the compass online and publishes meta, both retained.
// Call it on every connect since the will may have fired meanwhile.
func (p *Publisher) Announce(meta Meta) error {
	token := p.Queue.PubWith(p.Topic(TopicStatus), []byte(StatusOnline), 1, true)
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	return p.PublishMeta(meta)
}

// PublishMeta publishes retained metadata.
func (p *Publisher) PublishMeta(meta Meta) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	token := p.Queue.PubWith(p.Topic(TopicMeta), payload, 1, true)
	token.Wait()
	return token.Error()
}

// PublishReading publishes one encoded reading.
// Delivery is at-most-once, the next reading supersedes a lost one.
func (p *Publisher) PublishReading(r msgs.Reading) error {
	payload, err := r.Encode()
	if err != nil {
		return err
	}
	p.Queue.Pub(p.Topic(TopicReading), payload)
	return nil
}

// Run publishes readings from in until ctx is done.
// Readings taken while the broker is unreachable are dropped.
func (p *Publisher) Run(ctx context.Context, in <-chan msgs.Reading) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-in:
			if r.Err != nil {
				glog.Warningf("sample failed: %v", r.Err)
			}
			if !p.Queue.Online() {
				p.dropped++
				continue
			}
			if p.dropped > 0 {
				glog.Infof("publishing resumed, %d readings dropped while offline", p.dropped)
				p.dropped = 0
			}
			if err := p.PublishReading(r); err != nil {
				glog.Errorf("publish reading: %v", err)
			}
		}
	}
}

// ServeCommands subscribes <type>/<id>/set/+ and <type>/<id>/get/+.
// Replies go to <type>/<id>/result/<kind>/<name>.
func (p *Publisher) ServeCommands(h CommandHandler) []*Subscription {
	serve := func(kind string) *Subscription {
		prefix := p.Topic(kind) + "/"
		return p.Queue.Sub(prefix+"+", Handler(func(topic string, payload []byte) {
			name := strings.TrimPrefix(topic, prefix)
			reply, err := h(kind, name, string(payload))
			if err != nil {
				glog.Warningf("%s %s: %v", kind, name, err)
				reply = "ERROR: " + err.Error()
			}
			p.Queue.PubWith(p.Topic(TopicResult, kind, name), []byte(reply), 1, false)
		}))
	}
	return []*Subscription{serve(TopicSet), serve(TopicGet)}
}
