package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucarion/xmlstream"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that a document reads without errors: markup is closed and end tags match (attributes are not checked)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	r := xmlstream.NewReader(in)
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return fmt.Errorf("not well-formed: %w", err)
		}
		if _, ok := ev.(xmlstream.EOF); ok {
			break
		}
	}

	fmt.Println("ok")
	return nil
}
