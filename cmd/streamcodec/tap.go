package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcvoid/streamcodec/internal/codeclog"
)

func newTapCmd() *cobra.Command {
	rf := &readerFlags{}

	cmd := &cobra.Command{
		Use:   "tap",
		Short: "Print the parsed event sequence for a JSON document on stdin",
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
			out := cmd.OutOrStdout()
			for _, ev := range events {
				fmt.Fprintln(out, ev.String())
			}
			return nil
		},
	}
	rf.register(cmd)
	return cmd
}
