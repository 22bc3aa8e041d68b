package importer

import (
	"fmt"
	"io"

	"github.com/zinminlatt/ispbill/internal/importer/subscribercsv"
)

type Service struct {
	subscriberParser Parser
}

func NewService() *Service {
	return &Service{
		subscriberParser: subscribercsv.New(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]Row, error) {
	var parser Parser

	switch source {
	case SourceSubscriberSheet:
		parser = s.subscriberParser
	default:
		return nil, fmt.Errorf("unknown import source: %s", source)
	}

	return parser.Parse(r)
}
