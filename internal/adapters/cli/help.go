package cli

import (
	"fmt"
	"io"
)

type helpEntry struct {
	name    string
	summary string
	usage   []string
}

var helpEntries = []helpEntry{
	{"init", "initializes a new deposito folder", []string{
		"deposito init",
	}},
	{"view", "lists available deposito warehouses in the current directory", []string{
		"deposito view",
	}},
	{"create", "creates a new warehouse", []string{
		"deposito create <warehouse>",
	}},
	{"list", "lists items in the specified warehouse", []string{
		"deposito list [warehouse]",
	}},
	{"add", "adds stock of an item, creating it when needed", []string{
		"deposito add <warehouse> <item> [quantity=1] [-d description]",
	}},
	{"edit", "edits the name, description or quantity of an item", []string{
		"deposito edit <warehouse> <item> [-n name] [-d description] [-q quantity]",
	}},
	{"remove", "removes warehouses or items together with their rules", []string{
		"deposito remove -w <warehouse>...",
		"deposito remove -i <warehouse> <item>...",
		"deposito remove -a <warehouse>",
	}},
	{"rules", "manages low-stock rules", []string{
		"deposito rules -l [warehouse]",
		"deposito rules -c <warehouse> <item> <threshold>",
		"deposito rules -e <warehouse> <threshold> <item>...",
		"deposito rules -r <warehouse> <item>...",
	}},
	{"raport", "reports ruled items and flags the critical ones", []string{
		"deposito raport [warehouse]",
		"deposito raport -a",
	}},
	{"shell", "starts an interactive session", []string{
		"deposito shell",
	}},
}

func findHelp(name string) (helpEntry, bool) {
	for _, h := range helpEntries {
		if h.name == name {
			return h, true
		}
	}
	return helpEntry{}, false
}

func (c *CLI) printHelp(w io.Writer) {
	fmt.Fprintln(w, c.style.bold("deposito - warehouse inventory management tool."))
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.style.bold("Usage:"))
	fmt.Fprintln(w, "\tdeposito [command] [options] [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.style.bold("Commands:"))
	fmt.Fprintf(w, "\tFor more information about a command run the command with `%s`\n", c.style.bold("-h"))
	fmt.Fprintln(w)
	for _, h := range helpEntries {
		fmt.Fprintf(w, "\t%s - %s\n", h.name, h.summary)
	}
}

func (c *CLI) printCommandHelp(w io.Writer, name string) {
	h, ok := findHelp(name)
	if !ok {
		c.printHelp(w)
		return
	}
	fmt.Fprintf(w, "%s - %s\n", c.style.bold(h.name), h.summary)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.style.bold("Usage:"))
	for _, u := range h.usage {
		fmt.Fprintf(w, "\t%s\n", u)
	}
}
