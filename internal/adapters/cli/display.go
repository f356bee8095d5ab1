package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"deposito/internal/app"
	"deposito/internal/core"

	"github.com/mattn/go-isatty"
)

type style struct {
	enabled bool
}

// newStyle enables bold output only when out is a terminal.
func newStyle(out io.Writer, noColor bool) style {
	if noColor {
		return style{}
	}
	f, ok := out.(*os.File)
	if !ok {
		return style{}
	}
	return style{enabled: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

func (s style) bold(text string) string {
	if !s.enabled {
		return text
	}
	return "\x1b[1m" + text + "\x1b[0m"
}

func (c *CLI) printWarehouseCreated(result *app.WarehouseResult) {
	fmt.Fprintf(c.out, "Warehouse `%s` created.\n", result.Warehouse.Name)
}

func (c *CLI) printWarehouses(result *app.WarehouseListResult) {
	if len(result.Warehouses) == 0 {
		fmt.Fprintf(c.out, "No warehouses. You can create a warehouse using %s\n", c.style.bold("`deposito create <name>`"))
		return
	}
	fmt.Fprintln(c.out, c.style.bold("Available warehouses:"))
	for _, w := range result.Warehouses {
		fmt.Fprintf(c.out, "\t- %s\n", w.Name)
	}
}

func (c *CLI) printItems(result *app.ItemListResult) {
	if len(result.Items) == 0 {
		fmt.Fprintf(c.out, "No items in warehouse `%s`.\n", result.Warehouse)
		return
	}
	fmt.Fprintln(c.out, c.style.bold(fmt.Sprintf("Items in %s:", result.Warehouse)))
	fmt.Fprintf(c.out, "  %-24s %10s  %s\n", "NAME", "QUANTITY", "DESCRIPTION")
	fmt.Fprintln(c.out, "  "+strings.Repeat("-", 60))
	for _, it := range result.Items {
		desc := ""
		if it.Description != nil {
			desc = *it.Description
		}
		fmt.Fprintf(c.out, "  %-24s %10d  %s\n", it.Name, it.Quantity, desc)
	}
}

func (c *CLI) printItemAdded(result *app.ItemResult) {
	fmt.Fprintf(c.out, "Added %d of `%s` to `%s` (now %d).\n",
		result.Added, result.Item.Name, result.Warehouse, result.Item.Quantity)
}

func (c *CLI) printItemEdited(result *app.EditItemResult) {
	if !result.Matched {
		fmt.Fprintf(c.out, "No item `%s` in warehouse `%s`, nothing changed.\n", result.Item, result.Warehouse)
		return
	}
	fmt.Fprintf(c.out, "Item `%s` in `%s` updated.\n", result.Item, result.Warehouse)
}

func (c *CLI) printRemoved(result *app.RemoveResult) {
	d := result.Deleted
	switch result.Kind {
	case core.RemoveWarehouses:
		fmt.Fprintf(c.out, "Removed %d warehouse(s), %d item(s) and %d rule(s).\n",
			d[core.TableWarehouses], d[core.TableItems], d[core.TableRules])
	default:
		fmt.Fprintf(c.out, "Removed %d item(s) and %d rule(s) from `%s`.\n",
			d[core.TableItems], d[core.TableRules], result.Args[0])
	}
}

func (c *CLI) printRuleCreated(result *app.RuleResult) {
	fmt.Fprintf(c.out, "Rule created: `%s` in `%s` is critical below %d.\n",
		result.Rule.ItemName, result.Warehouse, result.Rule.GetsBelowQuantity)
}

func (c *CLI) printRules(result *app.RuleListResult) {
	if len(result.Rules) == 0 {
		fmt.Fprintf(c.out, "No rules for warehouse `%s`.\n", result.Warehouse)
		return
	}
	fmt.Fprintln(c.out, c.style.bold(fmt.Sprintf("Rules in %s:", result.Warehouse)))
	for _, r := range result.Rules {
		fmt.Fprintf(c.out, "\t- %s: below %d\n", r.ItemName, r.GetsBelowQuantity)
	}
}

func (c *CLI) printRulesEdited(result *app.RulesChangedResult, threshold int64) {
	fmt.Fprintf(c.out, "Set threshold %d on %d rule(s) in `%s`.\n", threshold, result.Changed, result.Warehouse)
}

func (c *CLI) printRulesRemoved(result *app.RulesChangedResult) {
	fmt.Fprintf(c.out, "Removed %d rule(s) from `%s`.\n", result.Changed, result.Warehouse)
}

func (c *CLI) printReport(result *app.ReportResult) {
	if result.Empty() {
		if result.Warehouse != "" {
			fmt.Fprintf(c.out, "No rules for warehouse `%s`, nothing to report.\n", result.Warehouse)
		} else {
			fmt.Fprintln(c.out, "No rules in any warehouse, nothing to report.")
		}
		return
	}

	for i, section := range result.Sections {
		if i > 0 {
			fmt.Fprintln(c.out)
		}
		fmt.Fprintln(c.out, c.style.bold(fmt.Sprintf("Raport for %s:", section.WarehouseName)))
		fmt.Fprintf(c.out, "  %-24s %10s %10s %10s  %s\n", "ITEM", "QUANTITY", "BELOW", "COVERAGE", "STATUS")
		fmt.Fprintln(c.out, "  "+strings.Repeat("-", 66))
		for _, l := range section.Lines {
			coverage := "-"
			if pct, ok := l.Coverage(); ok {
				coverage = pct.StringFixed(2) + "%"
			}
			status := "OK"
			if l.IsCritical {
				status = c.style.bold("CRITICAL")
			}
			fmt.Fprintf(c.out, "  %-24s %10d %10d %10s  %s\n",
				l.ItemName, l.Quantity, l.GetsBelowQuantity, coverage, status)
		}
	}
	if n := result.Critical(); n > 0 {
		fmt.Fprintf(c.out, "\n%d critical item(s).\n", n)
	}
}
