package cmd

import (
	"bytes"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"io"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [HC1-STRING]",
		Short: "Decode HC1 text given as argument or on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := configureHolder(cmd)
			if err != nil {
				return err
			}

			var qr []byte
			if len(args) == 1 {
				qr = []byte(args[0])
			} else {
				qr, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.WrapPrefix(err, "Could not read stdin", 0)
				}
				qr = bytes.TrimSpace(qr)
			}

			return h.Dump(qr, cmd.OutOrStdout())
		},
	}
}
