// Command streamcodec exercises the jsonreader/msgpack core from the
// shell: encode re-emits a JSON document as MessagePack, tap prints
// its parsed event sequence for inspection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "streamcodec",
		Short: "Stream JSON (with optional CBOR-diagnostic extensions) into MessagePack",
	}
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newTapCmd())
	return root
}
