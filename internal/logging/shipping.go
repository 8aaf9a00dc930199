package logging

import (
	"fmt"
	"net"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

// NewLogstashHook ships JSON formatted entries to logstash over UDP,
// tagged with the service name.
func NewLogstashHook(addr, serviceName string) (logrus.Hook, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial logstash: %w", err)
	}

	return logrustash.New(
		conn,
		logrustash.DefaultFormatter(logrus.Fields{"type": serviceName}),
	), nil
}

// NewElasticHook indexes entries at level and above into the given elasticsearch index.
// Entries are sent asynchronously.
func NewElasticHook(addr, serviceName, index string, level logrus.Level) (logrus.Hook, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("new elastic client: %w", err)
	}

	hook, err := elogrus.NewAsyncElasticHook(client, serviceName, level, index)
	if err != nil {
		return nil, fmt.Errorf("new elastic hook: %w", err)
	}

	return hook, nil
}
