package config

import (
	"strconv"
	"time"
)

// BrokerConfig describes the AMQP 0-9-1 broker connection and the topology
// declared on it (spec §6): a topic exchange plus a durable per-robot
// command queue.
type BrokerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	User              string        `yaml:"user"`
	Password          string        `yaml:"password"`
	VHost             string        `yaml:"vhost"`
	Exchange          string        `yaml:"exchange"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
	Heartbeat         time.Duration `yaml:"heartbeat"`
	Prefetch          int           `yaml:"prefetch"`
}

// DefaultBrokerConfig returns the built-in broker defaults.
func DefaultBrokerConfig() *BrokerConfig {
	return &BrokerConfig{
		Host:              "localhost",
		Port:              5672,
		User:              "guest",
		Password:          "guest",
		VHost:             "/",
		Exchange:          "robot.exchange",
		ConnectionTimeout: 10 * time.Second,
		Heartbeat:         10 * time.Second,
		Prefetch:          5,
	}
}

// URL builds the amqp091-go connection URL from its fields.
func (b *BrokerConfig) URL() string {
	vhost := b.VHost
	if vhost == "/" {
		vhost = ""
	}
	return "amqp://" + b.User + ":" + b.Password + "@" + b.Host + ":" + strconv.Itoa(b.Port) + "/" + vhost
}
