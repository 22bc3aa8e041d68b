package importer

import (
	"io"

	"github.com/zinminlatt/ispbill/internal/importer/subscribercsv"
)

// Source identifies the spreadsheet layout an upload uses.
type Source string

const (
	SourceSubscriberSheet Source = "subscribers"
)

// Row is one parsed subscriber from an uploaded sheet.
type Row = subscribercsv.Row

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}
