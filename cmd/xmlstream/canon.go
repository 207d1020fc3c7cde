package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucarion/xmlstream"
)

var canonCmd = &cobra.Command{
	Use:   "canon [file]",
	Short: "Re-serialize a document with attributes in canonical (c14n-style) order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCanon,
}

func runCanon(cmd *cobra.Command, args []string) error {
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	r := xmlstream.NewReader(in)
	ns := xmlstream.NewNSReader(r)
	w := xmlstream.NewWriter(os.Stdout)

	for {
		_, ev, err := ns.ReadEvent()
		if err != nil {
			return fmt.Errorf("xmlstream: %w", err)
		}

		switch v := ev.(type) {
		case xmlstream.EOF:
			return w.Flush()
		case xmlstream.StartElement, xmlstream.EmptyElement:
			if err := writeCanonicalTag(w, ns, v); err != nil {
				return err
			}
		default:
			if err := w.WriteEvent(ev); err != nil {
				return fmt.Errorf("xmlstream: %w", err)
			}
		}
	}
}

func writeCanonicalTag(w *xmlstream.Writer, ns *xmlstream.NSReader, ev xmlstream.Event) error {
	var name xmlstream.QName
	var attrs []xmlstream.Attribute
	empty := false

	switch v := ev.(type) {
	case xmlstream.StartElement:
		name = v.Name()
		all, err := v.Attributes(xmlstream.AttrOptions{Checks: true}).All()
		if err != nil {
			return fmt.Errorf("xmlstream: %w", err)
		}
		attrs = all
	case xmlstream.EmptyElement:
		name = v.Name()
		all, err := v.Attributes(xmlstream.AttrOptions{Checks: true}).All()
		if err != nil {
			return fmt.Errorf("xmlstream: %w", err)
		}
		attrs = all
		empty = true
	}

	content := xmlstream.Canonicalize(ns, name, attrs)
	if empty {
		return w.WriteEvent(xmlstream.EmptyElement{Content: content, NameLen: len(name)})
	}
	return w.WriteEvent(xmlstream.StartElement{Content: content, NameLen: len(name)})
}
