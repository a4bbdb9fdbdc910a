package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcvoid/streamcodec/internal/codeclog"
	"github.com/mcvoid/streamcodec/internal/eventbuf"
	"github.com/mcvoid/streamcodec/msgpack"
)

func newEncodeCmd() *cobra.Command {
	rf := &readerFlags{}
	var sortedKeys bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Re-emit a JSON document on stdin as MessagePack on stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := codeclog.New()
			if err != nil {
				return err
			}
			defer log.Sync()

			events, err := parseAll(cmd.InOrStdin(), rf.options())
			if err != nil {
				log.Errorw("parse failed", "error", err)
				return err
			}
			log.Debugw("parsed document", "events", len(events))

			determined, err := eventbuf.Determinize(events)
			if err != nil {
				log.Errorw("determinize failed", "error", err)
				return err
			}

			var wopts []msgpack.Option
			if sortedKeys {
				wopts = append(wopts, msgpack.WithSortedKeys())
			}
			w := msgpack.New(cmd.OutOrStdout(), wopts...)
			for _, ev := range determined {
				done, err := w.Write(ev)
				if err != nil {
					log.Errorw("encode failed", "error", err)
					return fmt.Errorf("streamcodec: %w", err)
				}
				if done {
					break
				}
			}
			log.Infow("encode complete")
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&sortedKeys, "sorted-keys", false, "emit map keys in sorted byte order")
	return cmd
}
