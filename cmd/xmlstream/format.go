package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucarion/xmlstream"
)

var formatIndent string

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Re-serialize an XML document, optionally with indentation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().StringVar(&formatIndent, "indent", "", "indent string to insert before each tag (default: none)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	r := xmlstream.NewReader(in)

	var w *xmlstream.Writer
	if formatIndent != "" {
		w = xmlstream.NewIndentWriter(os.Stdout, formatIndent)
	} else {
		w = xmlstream.NewWriter(os.Stdout)
	}

	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return fmt.Errorf("xmlstream: %w", err)
		}
		if _, ok := ev.(xmlstream.EOF); ok {
			break
		}
		if err := w.WriteEvent(ev); err != nil {
			return fmt.Errorf("xmlstream: %w", err)
		}
	}
	return w.Flush()
}

func openInput(args []string) (*os.File, error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, nil
	}
	return os.Open(args[0])
}
