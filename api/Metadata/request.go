// Package Metadata implements the v5 Metadata request/response; the
// client reads only topic partition/leader information from it. Like FindCoordinator,
// this is not consumed by the offset manager itself — it is used by the
// demo CLI to locate a partition leader for the earliest-offset fallback's
// leader connection.
package Metadata

import (
	"github.com/kafkaclient/gokafka/api"
)

func NewRequest(topics []string) *api.Request {
	return &api.Request{
		ApiKey:     api.Metadata,
		ApiVersion: 5,
		Body: Request{
			Topics:                 topics,
			AllowAutoTopicCreation: false,
		},
	}
}

type Request struct {
	Topics                 []string
	AllowAutoTopicCreation bool
}
