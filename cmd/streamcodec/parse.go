package main

import (
	"fmt"
	"io"

	"github.com/mcvoid/streamcodec/event"
	"github.com/mcvoid/streamcodec/jsonreader"
	"github.com/mcvoid/streamcodec/source"
)

// parseAll reads all of r as one JSON document and drains the
// reader's full event sequence. The CLI reads its whole input up
// front (WithFinal), so HasNext never returns false without either an
// event pending or the document being finished.
func parseAll(r io.Reader, opts []jsonreader.Option) ([]event.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("streamcodec: reading input: %w", err)
	}
	src := source.NewStringSource(string(data))
	rd := jsonreader.New(src, opts...)

	var events []event.Event
	for {
		ok, err := rd.HasNext()
		if err != nil {
			return nil, fmt.Errorf("streamcodec: %w", err)
		}
		if !ok {
			return events, nil
		}
		ev, err := rd.Next()
		if err != nil {
			return nil, fmt.Errorf("streamcodec: %w", err)
		}
		events = append(events, ev)
	}
}
